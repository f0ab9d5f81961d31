// Package combat resolves a two-combatant fight one action step at a time.
//
// All mutable combat state lives in a World owned by a single goroutine.
// Actions reference creatures by Side, never by pointer.
package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/creature"
	"github.com/cory-johannsen/foresight/internal/game/mechanics"
	"github.com/cory-johannsen/foresight/internal/game/rng"
	"github.com/cory-johannsen/foresight/internal/scripting"
)

// Bound is the per-action state shared between the steps of the current action.
// It is cleared whenever an action starts or finishes.
type Bound struct {
	Actor  creature.Side
	Target creature.Side
	// Missed is set by a dodge, a failed spell, or missing mana; later damage steps skip.
	Missed bool
}

// World is the explicit game context passed to every step and tick.
//
// World is not safe for concurrent use.
type World struct {
	RNG      rng.Source
	Registry *Registry
	Scripts  *scripting.Manager
	Gate     Gate
	Turn     TurnController

	creatures [2]*creature.Creature
	bound     Bound
	deferred  []func(*World)
	over      bool
	outcome   string
	reply     func(string)
	logger    *zap.Logger
}

// NewWorld creates a World with the player holding the first turn.
//
// Precondition: every argument must be non-nil; player.Side == SidePlayer and
// opponent.Side == SideOpponent.
// Postcondition: Turn.Active() == SidePlayer; the player is tagged Active and
// the opponent Inactive; replies are discarded until SetReplySink is called.
func NewWorld(src rng.Source, reg *Registry, player, opponent *creature.Creature, logger *zap.Logger) *World {
	if player.Side != creature.SidePlayer || opponent.Side != creature.SideOpponent {
		panic("combat: NewWorld precondition violated: creatures must be on the player and opponent sides")
	}
	w := &World{
		RNG:       src,
		Registry:  reg,
		creatures: [2]*creature.Creature{player, opponent},
		reply:     func(string) {},
		logger:    logger,
	}
	w.Turn.Reset(w, creature.SidePlayer)
	return w
}

// SetReplySink directs reply text to fn.
//
// Precondition: fn must not be nil.
func (w *World) SetReplySink(fn func(string)) { w.reply = fn }

// Reply sends msg to the command layer.
func (w *World) Reply(msg string) {
	w.logger.Debug("combat reply", zap.String("msg", msg))
	w.reply(msg)
}

// Creature returns the creature on side.
func (w *World) Creature(side creature.Side) *creature.Creature { return w.creatures[side] }

// Actor returns the creature performing the current action.
func (w *World) Actor() *creature.Creature { return w.creatures[w.bound.Actor] }

// Target returns the creature the current action is aimed at.
func (w *World) Target() *creature.Creature { return w.creatures[w.bound.Target] }

// Bound returns a copy of the current action's shared state.
func (w *World) Bound() Bound { return w.bound }

// Defer queues fn to run when the current step finishes.
func (w *World) Defer(fn func(*World)) {
	w.deferred = append(w.deferred, fn)
}

// flush runs deferred effects until none remain, including any they queue.
func (w *World) flush() {
	for len(w.deferred) > 0 {
		fn := w.deferred[0]
		w.deferred = w.deferred[1:]
		fn(w)
	}
	w.deferred = nil
}

// IsOver reports whether a creature was defeated or fled.
func (w *World) IsOver() bool { return w.over }

// Outcome returns the message that ended combat, or "" while it continues.
func (w *World) Outcome() string { return w.outcome }

// End marks combat as over and announces msg. Later calls are ignored.
func (w *World) End(msg string) {
	if w.over {
		return
	}
	w.over = true
	w.outcome = msg
	w.logger.Info("combat over", zap.String("outcome", msg))
	w.Reply(msg)
}

func (w *World) bind(actor creature.Side) {
	w.bound = Bound{Actor: actor, Target: actor.Other()}
}

func (w *World) unbind() {
	w.bound = Bound{}
}

// hit subtracts a rolled damage from side's life and reports it.
func (w *World) hit(side creature.Side, dmg mechanics.Damage, n byte) {
	c := w.Creature(side)
	c.Life.TakeDamage(dmg)
	w.Reply(fmt.Sprintf("%d damage was dealt!", n))
	if c.IsDefeated() {
		w.End(fmt.Sprintf("%s was defeated!", c.Name))
	}
}

// AttachScripts wires m's engine callbacks to w and enables script steps.
//
// Precondition: m must not be nil.
// Postcondition: engine.rng draws from w.RNG; engine.damage and engine.heal
// are deferred effects flushed with the calling step.
func (w *World) AttachScripts(m *scripting.Manager) {
	w.Scripts = m
	m.Rng = func() byte { return w.RNG.Generate() }
	m.Reply = w.Reply
	m.Damage = func(side string, amount int) {
		s, ok := creature.ParseSide(side)
		if !ok {
			w.logger.Warn("script damaged unknown side", zap.String("side", side))
			return
		}
		n := clampByte(amount)
		w.Defer(func(w *World) {
			d := mechanics.NewDamage(n, n)
			d.Roll(0)
			w.hit(s, d, n)
		})
	}
	m.Heal = func(side string, amount int) {
		s, ok := creature.ParseSide(side)
		if !ok {
			w.logger.Warn("script healed unknown side", zap.String("side", side))
			return
		}
		n := clampByte(amount)
		w.Defer(func(w *World) {
			w.Creature(s).Life.Add(n)
		})
	}
	m.GetCombatant = func(side string) *scripting.CombatantInfo {
		s, ok := creature.ParseSide(side)
		if !ok {
			return nil
		}
		return w.info(s)
	}
}

func (w *World) runScript(hook string) {
	if w.Scripts == nil {
		w.logger.Warn("script step without a scripting engine", zap.String("hook", hook))
		return
	}
	if !w.Scripts.HasHook(hook) {
		w.logger.Warn("script hook is not defined", zap.String("hook", hook))
		return
	}
	if _, err := w.Scripts.CallStep(hook, w.info(w.bound.Actor), w.info(w.bound.Target)); err != nil {
		w.logger.Warn("script step failed", zap.String("hook", hook), zap.Error(err))
	}
}

func (w *World) info(side creature.Side) *scripting.CombatantInfo {
	c := w.Creature(side)
	return &scripting.CombatantInfo{
		Side:    side.String(),
		Name:    c.Name,
		Life:    int(c.Life.Current()),
		MaxLife: int(c.Life.Max()),
		Mana:    int(c.Mana.Current()),
		MaxMana: int(c.Mana.Max()),
	}
}

func clampByte(n int) byte {
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	default:
		return byte(n)
	}
}
