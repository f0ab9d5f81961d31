package creature

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// MaxAvailableActions is the number of labels an AvailableActions can hold.
const MaxAvailableActions = math.MaxUint8

// AvailableActions is the set of action labels a creature may use.
//
// Invariant: labels are unique and Len() <= MaxAvailableActions.
type AvailableActions struct {
	set    map[string]struct{}
	logger *zap.Logger
}

// NewAvailableActions creates an empty set. Rejected insertions are logged to logger.
//
// Precondition: logger must be non-nil.
func NewAvailableActions(logger *zap.Logger) *AvailableActions {
	return &AvailableActions{set: make(map[string]struct{}), logger: logger}
}

// Insert adds label. When the set is already full the label is dropped and a
// warning is logged.
//
// Postcondition: returns true iff label is in the set afterwards.
func (a *AvailableActions) Insert(label string) bool {
	if len(a.set) >= MaxAvailableActions {
		a.logger.Warn("too many actions were inserted",
			zap.String("label", label),
			zap.Int("capacity", MaxAvailableActions),
		)
		_, ok := a.set[label]
		return ok
	}
	a.set[label] = struct{}{}
	return true
}

// Contains reports whether label is available.
func (a *AvailableActions) Contains(label string) bool {
	_, ok := a.set[label]
	return ok
}

// List returns every label in alphabetical order.
func (a *AvailableActions) List() []string {
	out := make([]string, 0, len(a.set))
	for label := range a.set {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of labels.
func (a *AvailableActions) Len() int { return len(a.set) }

// IsEmpty reports whether no labels are registered.
func (a *AvailableActions) IsEmpty() bool { return len(a.set) == 0 }

// Random picks List()[b % Len()]. The modulo makes the pick slightly biased
// whenever Len() does not divide 256.
//
// Precondition: the set is non-empty.
// Postcondition: the result is a member of the set.
func (a *AvailableActions) Random(b byte) string {
	if len(a.set) == 0 {
		panic("creature: AvailableActions.Random precondition violated: set is empty")
	}
	list := a.List()
	return list[int(b)%len(list)]
}
