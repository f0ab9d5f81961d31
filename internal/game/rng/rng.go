// Package rng provides the deterministic byte stream that drives every combat
// decision in Foresight.
package rng

// DefaultS and DefaultT are the seed used when none is configured.
const (
	DefaultS byte = 42
	DefaultT byte = 69
)

// Source produces one pseudo-random byte per call.
//
// Implementations are NOT required to be safe for concurrent use; the combat
// loop owns its Source exclusively.
type Source interface {
	// Generate advances the stream and returns the next byte.
	Generate() byte
}

// Inspector exposes generator state for debugging displays.
type Inspector interface {
	State() (s, t byte)
	History() []Draw
}

// Draw records a single generation: the state after stepping and the byte produced.
type Draw struct {
	S      byte
	T      byte
	Output byte
}

// SimpleRNG is a two-byte generator modelled on the SM64 RNG. It is not random
// at all: the output is a pure function of the seed and the number of draws.
//
// Invariant: history holds at most cap(history) draws, oldest first.
type SimpleRNG struct {
	s, t       byte
	history    []Draw
	historyCap int
}

// New creates a SimpleRNG seeded with (s, t) that remembers no draws.
//
// Postcondition: State() == (s, t).
func New(s, t byte) *SimpleRNG {
	return &SimpleRNG{s: s, t: t}
}

// NewWithHistory creates a SimpleRNG that keeps the last n draws for inspection.
//
// Precondition: n >= 0.
// Postcondition: History() returns at most n draws.
func NewWithHistory(s, t byte, n int) *SimpleRNG {
	if n < 0 {
		panic("rng: NewWithHistory precondition violated: n must be >= 0")
	}
	return &SimpleRNG{s: s, t: t, history: make([]Draw, 0, n), historyCap: n}
}

// Default returns a SimpleRNG seeded with (DefaultS, DefaultT).
func Default() *SimpleRNG {
	return New(DefaultS, DefaultT)
}

// Generate steps the state once and returns s XOR t.
func (r *SimpleRNG) Generate() byte {
	r.step()
	out := r.s ^ r.t
	r.record(Draw{S: r.s, T: r.t, Output: out})
	return out
}

// State returns the current internal state.
func (r *SimpleRNG) State() (s, t byte) {
	return r.s, r.t
}

// History returns a copy of the remembered draws, oldest first.
func (r *SimpleRNG) History() []Draw {
	out := make([]Draw, len(r.history))
	copy(out, r.history)
	return out
}

// step applies s = 5s+1, t = 2t, and t++ when bits 4 and 7 of t agree.
// All arithmetic wraps modulo 256.
func (r *SimpleRNG) step() {
	r.s = r.s*5 + 1
	r.t = r.t * 2
	if bitAt(r.t, 4) == bitAt(r.t, 7) {
		r.t++
	}
}

func (r *SimpleRNG) record(d Draw) {
	if r.historyCap == 0 {
		return
	}
	if len(r.history) == r.historyCap {
		copy(r.history, r.history[1:])
		r.history = r.history[:len(r.history)-1]
	}
	r.history = append(r.history, d)
}

func bitAt(b byte, n uint) bool {
	if n >= 8 {
		return false
	}
	return b&(1<<n) != 0
}
