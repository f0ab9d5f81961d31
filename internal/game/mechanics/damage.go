package mechanics

import "math"

// Damage is a potential hit in [min, max] that becomes an actual value once rolled.
//
// Invariant: max >= min. While no value is rolled, every arithmetic method is a no-op.
type Damage struct {
	min    byte
	max    byte
	actual byte
	rolled bool
}

// NewDamage creates an unrolled Damage.
//
// Precondition: max >= min. Violations are programmer errors and panic.
func NewDamage(min, max byte) Damage {
	if max < min {
		panic("mechanics: NewDamage precondition violated: max must be >= min")
	}
	return Damage{min: min, max: max}
}

// Min returns the lowest damage this can roll.
func (d Damage) Min() byte { return d.min }

// Max returns the highest damage this can roll.
func (d Damage) Max() byte { return d.max }

// Roll interpolates min + (b/255)*(max-min), truncates, stores, and returns it.
//
// Postcondition: Min() <= result <= Max(); Roll(0) == Min(); Roll(255) == Max().
func (d *Damage) Roll(b byte) byte {
	fraction := float32(b) / math.MaxUint8
	v := float32(d.min) + fraction*float32(d.max-d.min)
	d.actual = byte(v)
	d.rolled = true
	return d.actual
}

// Actual returns the rolled value and whether one is held.
func (d Damage) Actual() (byte, bool) { return d.actual, d.rolled }

// Rolled returns the rolled value.
//
// Precondition: Roll was called since construction or the last Reset; panics otherwise.
func (d Damage) Rolled() byte {
	if !d.rolled {
		panic("mechanics: Damage.Rolled precondition violated: damage was not rolled")
	}
	return d.actual
}

// Reset discards the rolled value.
func (d *Damage) Reset() {
	d.actual = 0
	d.rolled = false
}

// Add raises the rolled value by n, saturating at 255.
func (d *Damage) Add(n byte) {
	if !d.rolled {
		return
	}
	d.actual = saturate(int(d.actual) + int(n))
}

// Subtract lowers the rolled value by n, saturating at 0.
func (d *Damage) Subtract(n byte) {
	if !d.rolled {
		return
	}
	d.actual = saturate(int(d.actual) - int(n))
}

// Multiply scales the rolled value by n, saturating at 255.
func (d *Damage) Multiply(n byte) {
	if !d.rolled {
		return
	}
	d.actual = saturate(int(d.actual) * int(n))
}

// Divide divides the rolled value by n. Division by zero yields 0.
func (d *Damage) Divide(n byte) {
	if !d.rolled {
		return
	}
	if n == 0 {
		d.actual = 0
		return
	}
	d.actual /= n
}
