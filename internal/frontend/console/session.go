package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/combat"
	"github.com/cory-johannsen/foresight/internal/game/command"
)

// Engine is the request/reply surface of a running combat loop.
type Engine interface {
	Requests() chan<- combat.Request
	Replies() <-chan string
}

// Session reads commands from a Conn, forwards them to an Engine, and
// prints the engine's replies.
type Session struct {
	conn     *Conn
	engine   Engine
	registry *command.Registry
	style    Styler
	prompt   string
	logger   *zap.Logger
}

// NewSession builds a session for the player named playerName.
//
// Precondition: conn, engine, registry, and logger must be non-nil.
func NewSession(conn *Conn, engine Engine, registry *command.Registry, playerName string, style Styler, logger *zap.Logger) *Session {
	if conn == nil || engine == nil || registry == nil || logger == nil {
		panic("console.NewSession precondition violated: nil dependency")
	}
	return &Session{
		conn:     conn,
		engine:   engine,
		registry: registry,
		style:    style,
		prompt:   style.Paintf(BrightCyan, "[%s]> ", playerName),
		logger:   logger,
	}
}

// Run serves the session until the player quits, input ends, or ctx is done.
//
// Postcondition: Returns nil on quit or end of input, ctx.Err() on cancellation,
// or a wrapped error on a read failure.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_ = s.conn.WriteLine(s.style.Paint(BrightWhite, "Combat begins. Type 'help' for commands."))
	_ = s.conn.WritePrompt(s.prompt)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.forwardReplies(ctx)
	}()

	err := s.commandLoop(ctx)
	cancel()
	wg.Wait()
	return err
}

type readResult struct {
	line string
	err  error
}

// commandLoop reads lines on a helper goroutine so a blocked terminal read
// never holds up cancellation.
func (s *Session) commandLoop(ctx context.Context) error {
	lines := make(chan readResult)
	go func() {
		for {
			line, err := s.conn.ReadLine()
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		var res readResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-lines:
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				s.logger.Info("console input closed")
				return nil
			}
			return fmt.Errorf("reading input: %w", res.err)
		}

		quit, err := s.dispatch(ctx, strings.TrimSpace(res.line))
		if err != nil || quit {
			return err
		}
		_ = s.conn.WritePrompt(s.prompt)
	}
}

// dispatch executes one input line and reports whether the player quit.
func (s *Session) dispatch(ctx context.Context, line string) (bool, error) {
	if line == "" {
		return false, s.send(ctx, combat.Request{Kind: combat.RequestAdvance})
	}

	parsed := command.Parse(line)
	cmd, ok := s.registry.Resolve(parsed.Command)
	if !ok {
		// The loop resolves action names case-insensitively and replies to unknown ones.
		return false, s.send(ctx, combat.Request{Kind: combat.RequestStart, Name: parsed.Command})
	}

	switch cmd.Handler {
	case command.HandlerAction:
		return false, s.send(ctx, combat.Request{Kind: combat.RequestStart, Name: cmd.Action})

	case command.HandlerNext:
		return false, s.send(ctx, combat.Request{Kind: combat.RequestAdvance})

	case command.HandlerStatus, command.HandlerActions, command.HandlerRNG:
		snap, err := s.snapshot(ctx)
		if err != nil {
			return false, err
		}
		var text string
		switch cmd.Handler {
		case command.HandlerStatus:
			text = RenderStatus(s.style, snap)
		case command.HandlerActions:
			text = RenderActions(s.style, snap.Player)
		default:
			text = RenderRNG(s.style, snap)
		}
		_ = s.conn.WriteLine(text)

	case command.HandlerLog:
		msg, n, err := command.ParseLog(parsed.RawArgs)
		if err != nil {
			_ = s.conn.WriteLine(s.style.Paint(Red, err.Error()))
			return false, nil
		}
		for i := 0; i < n; i++ {
			_ = s.conn.WriteLine(msg)
		}

	case command.HandlerHelp:
		_ = s.conn.WriteLine(RenderHelp(s.style, s.registry))

	case command.HandlerQuit:
		_ = s.conn.WriteLine(s.style.Paint(Cyan, "You leave the fight. Goodbye."))
		return true, nil

	default:
		_ = s.conn.WriteLine(s.style.Paintf(Dim, "You don't know how to '%s'.", parsed.Command))
	}
	return false, nil
}

func (s *Session) send(ctx context.Context, req combat.Request) error {
	select {
	case s.engine.Requests() <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) snapshot(ctx context.Context) (combat.Snapshot, error) {
	ch := make(chan combat.Snapshot, 1)
	if err := s.send(ctx, combat.Request{Kind: combat.RequestSnapshot, Snapshot: ch}); err != nil {
		return combat.Snapshot{}, err
	}
	select {
	case snap := <-ch:
		return snap, nil
	case <-ctx.Done():
		return combat.Snapshot{}, ctx.Err()
	}
}

// forwardReplies prints engine replies until ctx is done, re-displaying the
// prompt after each one.
func (s *Session) forwardReplies(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.engine.Replies():
			if !ok {
				s.logger.Debug("reply channel closed")
				return
			}
			_ = s.conn.WriteLine(RenderReply(s.style, msg))
			_ = s.conn.WritePrompt(s.prompt)
		}
	}
}
