package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/creature"
)

// TurnController tracks which side is active and swaps when the active side
// spends its last action point.
//
// Invariant: exactly one creature is tagged Active.
type TurnController struct {
	active   creature.Side
	lastSeen byte
}

// Reset gives first the turn, refills its action points, and re-tags markers.
//
// Postcondition: Active() == first.
func (t *TurnController) Reset(w *World, first creature.Side) {
	t.active = first
	t.activate(w)
}

// Active returns the side whose turn it is.
func (t *TurnController) Active() creature.Side { return t.active }

// Check swaps the turn when the active side's action points changed to 0
// since the previous check. A value that stays at 0 never swaps again.
//
// Postcondition: Returns true iff a swap happened.
func (t *TurnController) Check(w *World) bool {
	ap := w.Creature(t.active).ActionPoints.Current()
	changed := ap != t.lastSeen
	t.lastSeen = ap
	if !changed || ap != 0 {
		return false
	}
	from := t.active
	t.active = from.Other()
	t.activate(w)
	w.logger.Debug("turn swapped",
		zap.Stringer("from", from),
		zap.Stringer("to", t.active),
	)
	return true
}

func (t *TurnController) activate(w *World) {
	on, off := w.Creature(t.active), w.Creature(t.active.Other())
	on.Marker = creature.Active
	off.Marker = creature.Inactive
	on.ActionPoints.Fill()
	t.lastSeen = on.ActionPoints.Current()
}
