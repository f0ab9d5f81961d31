package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/creature"
)

// ReplyPending is sent when an action is started while another is current.
const ReplyPending = "cannot start a new action while one is pending"

// Gate holds at most one in-progress action and is the only path by which
// action steps run.
//
// Invariant: Current() is non-nil only between an accepted Start and the
// trigger that finishes the action.
type Gate struct {
	current *Action
}

// Current returns the in-progress action, or nil.
func (g *Gate) Current() *Action { return g.current }

// IsEmpty reports whether no action is in progress.
func (g *Gate) IsEmpty() bool { return g.current == nil }

// Start installs a as the current action performed by actor.
//
// Precondition: a must not be nil and must not be shared with a Registry.
// Postcondition: When an action is already current, replies ReplyPending,
// changes nothing, and returns false. Otherwise a is reset to index 0,
// actor is bound, and Start returns true.
func (g *Gate) Start(w *World, actor creature.Side, a *Action) bool {
	if g.current != nil {
		w.logger.Debug("action rejected while pending",
			zap.String("requested", a.Name()),
			zap.String("current", g.current.Name()),
		)
		w.Reply(ReplyPending)
		return false
	}
	a.Reset()
	w.bind(actor)
	g.current = a
	w.logger.Info("action started",
		zap.String("action", a.Name()),
		zap.Stringer("actor", actor),
	)
	return true
}

// AdvanceOnTrigger runs one step of the current action. When the action
// finishes it is reset, the bound state is cleared, and the slot is emptied.
//
// Postcondition: No-op when IsEmpty().
func (g *Gate) AdvanceOnTrigger(w *World) {
	if g.current == nil {
		return
	}
	g.current.Advance(w)
	if !g.current.IsFinished() {
		return
	}
	w.logger.Debug("action finished", zap.String("action", g.current.Name()))
	g.current.Reset()
	w.unbind()
	g.current = nil
}
