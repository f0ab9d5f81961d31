package combat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/creature"
)

// RequestKind identifies what the command layer is asking the loop to do.
type RequestKind int

const (
	RequestStart    RequestKind = iota // start the named player action
	RequestAdvance                     // trigger event; advances one step on the next tick
	RequestSnapshot                    // send a Snapshot on the request's channel
)

// Request is a message from the command layer to the loop goroutine.
type Request struct {
	Kind RequestKind
	// Name is the action name for RequestStart.
	Name string
	// Snapshot receives the state for RequestSnapshot. It should be buffered.
	Snapshot chan<- Snapshot
}

const replyBuffer = 64

// Loop owns a World in one goroutine and ticks it at a fixed interval.
// Requests and replies cross goroutines only through channels.
type Loop struct {
	world    *World
	interval time.Duration
	requests chan Request
	replies  chan string
	logger   *zap.Logger
}

// NewLoop wraps w and redirects its replies to Replies().
//
// Precondition: interval must be > 0; w and logger must be non-nil.
// Postcondition: w must not be touched outside the loop goroutine once Run starts.
func NewLoop(w *World, interval time.Duration, logger *zap.Logger) *Loop {
	if interval <= 0 {
		panic("combat.NewLoop: interval must be > 0")
	}
	l := &Loop{
		world:    w,
		interval: interval,
		requests: make(chan Request),
		replies:  make(chan string, replyBuffer),
		logger:   logger,
	}
	w.SetReplySink(l.send)
	return l
}

// Requests returns the channel the command layer sends on.
func (l *Loop) Requests() chan<- Request { return l.requests }

// Replies returns the channel reply text is delivered on.
func (l *Loop) Replies() <-chan string { return l.replies }

// Run ticks the world until ctx is cancelled. Any number of advance requests
// between two ticks count as a single trigger.
//
// Postcondition: Returns ctx.Err() when ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	triggered := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-l.requests:
			triggered = l.handle(req) || triggered
		case <-ticker.C:
			l.world.Tick(triggered)
			triggered = false
		}
	}
}

// handle applies req and reports whether it was a trigger event.
func (l *Loop) handle(req Request) bool {
	switch req.Kind {
	case RequestStart:
		name, ok := l.world.Registry.Resolve(req.Name)
		if !ok {
			l.world.Reply(fmt.Sprintf("unknown action: %s", req.Name))
			return false
		}
		l.world.StartAction(creature.SidePlayer, name)
	case RequestAdvance:
		return true
	case RequestSnapshot:
		if req.Snapshot != nil {
			select {
			case req.Snapshot <- l.world.Snapshot():
			default:
				l.logger.Warn("snapshot receiver not ready; dropped")
			}
		}
	default:
		l.logger.Warn("unknown request kind", zap.Int("kind", int(req.Kind)))
	}
	return false
}

func (l *Loop) send(msg string) {
	select {
	case l.replies <- msg:
	default:
		l.logger.Warn("reply buffer full; dropped", zap.String("msg", msg))
	}
}
