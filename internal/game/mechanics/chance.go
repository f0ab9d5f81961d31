package mechanics

import "math"

const (
	critBase     float32 = 0
	critScaling  float32 = 2.5 / 100
	dodgeBase    float32 = 10. / 100
	dodgeScaling float32 = 1. / 100
	fleeBase     float32 = 10. / 100
	fleeScaling  float32 = 1. / 100
	spellScaling float32 = 1. / 100
)

// threshold quantizes clamp(base + scaling*attr, 0, 1) into a byte.
//
// Postcondition: result is in [0, 255] for every input.
func threshold(base, scaling float32, attr byte) byte {
	f := base + scaling*float32(attr)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return byte(f * math.MaxUint8)
}

// CritChance is the threshold for landing a critical hit.
type CritChance byte

// NewCritChance derives crit chance from agility: 0% base, +2.5% per point.
func NewCritChance(a Agility) CritChance {
	return CritChance(threshold(critBase, critScaling, byte(a)))
}

// Roll reports a crit when the threshold is at least b.
func (c CritChance) Roll(b byte) bool { return byte(c) >= b }

// DodgeChance is the threshold for dodging an attack.
type DodgeChance byte

// NewDodgeChance derives dodge chance from agility: 10% base, +1% per point.
func NewDodgeChance(a Agility) DodgeChance {
	return DodgeChance(threshold(dodgeBase, dodgeScaling, byte(a)))
}

// Roll reports a dodge when the threshold is at least b.
func (c DodgeChance) Roll(b byte) bool { return byte(c) >= b }

// FleeChance is the threshold for escaping combat.
type FleeChance byte

// NewFleeChance derives flee chance from agility: 10% base, +1% per point.
func NewFleeChance(a Agility) FleeChance {
	return FleeChance(threshold(fleeBase, fleeScaling, byte(a)))
}

// Roll reports a successful escape when the threshold is at least b.
func (c FleeChance) Roll(b byte) bool { return byte(c) >= b }

// SpellSuccess is the threshold for a particular spell taking effect.
type SpellSuccess byte

// NewSpellSuccess derives the success chance of a spell with the given base
// fraction, adding 1% per point of intelligence.
func NewSpellSuccess(base float32, in Intelligence) SpellSuccess {
	return SpellSuccess(threshold(base, spellScaling, byte(in)))
}

// Roll reports success when the threshold is at least b.
func (c SpellSuccess) Roll(b byte) bool { return byte(c) >= b }
