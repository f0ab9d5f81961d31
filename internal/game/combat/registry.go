package combat

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps action names to their prototype Actions. Lookups return
// clones, so prototypes are never advanced.
type Registry struct {
	actions map[string]*Action
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]*Action)}
}

// NewDefaultRegistry returns a Registry holding the built-in actions.
//
// Postcondition: Has(n) is true for Attack, Firebolt, Flee, and Pass.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.RegisterDefinitions(BuiltinDefinitions()); err != nil {
		panic(fmt.Sprintf("combat: built-in action definitions are invalid: %v", err))
	}
	return r
}

// Register adds a as a prototype under a.Name().
//
// Precondition: a must not be nil.
// Postcondition: Returns an error if the name is already registered
// (case-insensitively); the registry is unchanged in that case.
func (r *Registry) Register(a *Action) error {
	if _, ok := r.Resolve(a.Name()); ok {
		return fmt.Errorf("action %q already registered", a.Name())
	}
	r.actions[a.Name()] = a.Clone()
	return nil
}

// RegisterDefinitions compiles and registers every definition.
//
// Postcondition: Returns the first validation or duplicate error; definitions
// before the failing one remain registered.
func (r *Registry) RegisterDefinitions(defs []*ActionDef) error {
	for _, d := range defs {
		a, err := d.Compile()
		if err != nil {
			return err
		}
		if err := r.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether name is registered exactly.
func (r *Registry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Resolve finds the registered name matching input case-insensitively.
func (r *Registry) Resolve(input string) (string, bool) {
	for name := range r.actions {
		if strings.EqualFold(name, input) {
			return name, true
		}
	}
	return "", false
}

// Lookup returns an Idle clone of the action registered as name.
//
// Precondition: Has(name); looking up an unregistered name panics.
func (r *Registry) Lookup(name string) *Action {
	a, ok := r.actions[name]
	if !ok {
		panic(fmt.Sprintf("combat: Registry.Lookup precondition violated: action %q is not registered", name))
	}
	return a.Clone()
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.actions))
	for name := range r.actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
