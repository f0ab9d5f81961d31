package combat

import (
	"fmt"

	"github.com/cory-johannsen/foresight/internal/game/creature"
)

// Action is a named, ordered list of steps executed one per trigger.
//
// Invariant: 0 <= Index() <= Len(). Index() == 0 is Idle, Index() == Len()
// is Finished, anything between is Running.
type Action struct {
	name  string
	steps []Step
	index int
}

// NewAction creates an Idle action.
//
// Precondition: name must be non-empty and steps must contain at least one step.
// Postcondition: Index() == 0.
func NewAction(name string, steps ...Step) *Action {
	if name == "" {
		panic("combat: NewAction precondition violated: name must not be empty")
	}
	if len(steps) == 0 {
		panic(fmt.Sprintf("combat: NewAction precondition violated: action %q has no steps", name))
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Action{name: name, steps: cp}
}

// Name returns the display name of the action.
func (a *Action) Name() string { return a.name }

// Index returns the position of the next step to run.
func (a *Action) Index() int { return a.index }

// Len returns the number of steps.
func (a *Action) Len() int { return len(a.steps) }

// Steps returns a copy of the action's steps.
func (a *Action) Steps() []Step {
	cp := make([]Step, len(a.steps))
	copy(cp, a.steps)
	return cp
}

// IsFinished reports whether every step has run.
func (a *Action) IsFinished() bool { return a.index == len(a.steps) }

// Reset returns the action to Idle. Step parameters are untouched.
func (a *Action) Reset() { a.index = 0 }

// Advance runs exactly one step against w, flushes the effects it deferred,
// and moves to the next step.
//
// Precondition: !IsFinished(); panics otherwise.
// Postcondition: Index() is incremented by one and w has no pending deferred effects.
func (a *Action) Advance(w *World) {
	if a.IsFinished() {
		panic(fmt.Sprintf("combat: Action.Advance precondition violated: action %q is finished", a.name))
	}
	a.steps[a.index].Run(w)
	w.flush()
	a.index++
}

// RunAll resolves the whole action for actor without trigger events. It binds
// actor against the other side for the duration and is never used by the Gate.
//
// Precondition: w.Gate.IsEmpty(); panics otherwise.
// Postcondition: Index() == 0 and no actor is bound.
func (a *Action) RunAll(w *World, actor creature.Side) {
	if !w.Gate.IsEmpty() {
		panic(fmt.Sprintf("combat: Action.RunAll precondition violated: %q cannot run while an action is current", a.name))
	}
	a.Reset()
	w.bind(actor)
	for !a.IsFinished() {
		a.Advance(w)
	}
	w.unbind()
	a.Reset()
}

// Clone returns an Idle copy of a that shares no mutable state with it.
func (a *Action) Clone() *Action {
	return NewAction(a.name, a.steps...)
}
