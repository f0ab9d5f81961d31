// Package mechanics implements the numeric building blocks of combat: clamped
// resources, damage rolls, attributes, and the chance stats derived from them.
package mechanics

import "math"

// Resource is a current/max counter stored in bytes.
//
// Invariant: after Add, Subtract, or SetMax, current <= max.
type Resource struct {
	current byte
	max     byte
}

// NewResource returns a Resource filled to max.
//
// Postcondition: Current() == Max() == max.
func NewResource(max byte) Resource {
	return Resource{current: max, max: max}
}

// Current returns the current value.
func (r Resource) Current() byte { return r.current }

// Max returns the maximum value.
func (r Resource) Max() byte { return r.max }

// IsEmpty reports whether the current value is zero.
func (r Resource) IsEmpty() bool { return r.current == 0 }

// SetCurrent assigns the current value.
//
// The rule is: if max <= v, current = v; otherwise current = max. It reads
// inverted; see TestResource_SetCurrent_LiteralRule before changing it.
func (r *Resource) SetCurrent(v byte) {
	if r.max <= v {
		r.current = v
	} else {
		r.current = r.max
	}
}

// SetMax assigns the maximum. Raising max never changes current; lowering it
// below current pulls current down with it.
//
// Postcondition: Max() == v; Current() <= v.
func (r *Resource) SetMax(v byte) {
	r.max = v
	if r.current > r.max {
		r.current = r.max
	}
}

// Fill sets current to max.
func (r *Resource) Fill() { r.current = r.max }

// Add increases current by n. A sum past 255 saturates at 255 before being
// clamped to max.
//
// Postcondition: Current() <= Max().
func (r *Resource) Add(n byte) {
	sum := int(r.current) + int(n)
	if sum > math.MaxUint8 {
		sum = math.MaxUint8
	}
	r.clamp(byte(sum))
}

// Subtract decreases current by n, saturating at zero.
//
// Postcondition: Current() <= Max().
func (r *Resource) Subtract(n byte) {
	if n >= r.current {
		r.clamp(0)
		return
	}
	r.clamp(r.current - n)
}

func (r *Resource) clamp(v byte) {
	if v > r.max {
		v = r.max
	}
	r.current = v
}

// Life is the hit points of a creature.
type Life struct{ Resource }

// NewLife returns a full Life pool of max.
func NewLife(max byte) Life { return Life{NewResource(max)} }

// ComputeLife derives max life as base + 4*Strength, saturating at 255.
func ComputeLife(base byte, str Strength) Life {
	return NewLife(saturate(int(base) + 4*int(str)))
}

// TakeDamage subtracts a rolled Damage. An unrolled Damage deals nothing.
func (l *Life) TakeDamage(d Damage) {
	if amount, ok := d.Actual(); ok {
		l.Subtract(amount)
	}
}

// Mana is the pool spent on spells.
type Mana struct{ Resource }

// NewMana returns a full Mana pool of max.
func NewMana(max byte) Mana { return Mana{NewResource(max)} }

// ComputeMana derives max mana as base + Intelligence, saturating at 255.
func ComputeMana(base byte, in Intelligence) Mana {
	return NewMana(saturate(int(base) + int(in)))
}

// ActionPoints is the per-turn budget of actions. A turn ends when it reaches zero.
type ActionPoints struct{ Resource }

// NewActionPoints returns a full ActionPoints pool of max.
func NewActionPoints(max byte) ActionPoints { return ActionPoints{NewResource(max)} }

func saturate(v int) byte {
	switch {
	case v < 0:
		return 0
	case v > math.MaxUint8:
		return math.MaxUint8
	default:
		return byte(v)
	}
}
