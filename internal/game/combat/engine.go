package combat

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/foresight/internal/game/creature"
	"github.com/cory-johannsen/foresight/internal/game/rng"
)

const (
	// ReplyOver is sent when an action is started after combat ended.
	ReplyOver = "combat is over"
	// ReplyNotYourTurn is sent when the inactive side tries to act.
	ReplyNotYourTurn = "it is not your turn"
	// ReplyNoActionPoints is sent when the active side has spent its action
	// points and the turn has not swapped yet.
	ReplyNoActionPoints = "no action points left"
)

// StartAction asks for side to begin the action registered as name.
// Rejections are replies, never errors.
//
// Precondition: Registry.Has(name); unregistered names panic.
// Postcondition: Returns true iff the Gate accepted the action.
func (w *World) StartAction(side creature.Side, name string) bool {
	if w.over {
		w.Reply(ReplyOver)
		return false
	}
	if !w.Gate.IsEmpty() {
		return w.Gate.Start(w, side, w.Registry.Lookup(name))
	}
	if w.Turn.Active() != side {
		w.Reply(ReplyNotYourTurn)
		return false
	}
	a := w.Registry.Lookup(name)
	c := w.Creature(side)
	if c.ActionPoints.IsEmpty() {
		w.Reply(ReplyNoActionPoints)
		return false
	}
	if !c.Actions.Contains(name) {
		w.Reply(fmt.Sprintf("%s cannot use %s", c.Name, name))
		return false
	}
	if !w.Gate.Start(w, side, a) {
		return false
	}
	w.Reply(fmt.Sprintf("%s uses %s.", c.Name, name))
	return true
}

// Tick runs one frame: the turn check, then the opponent's action choice when
// it holds the turn with nothing in progress, then one step of the current
// action if triggered is true.
func (w *World) Tick(triggered bool) {
	w.Turn.Check(w)
	if !w.over && w.Turn.Active() == creature.SideOpponent && w.Gate.IsEmpty() {
		w.opponentTurn()
	}
	if triggered {
		w.Gate.AdvanceOnTrigger(w)
	}
}

// opponentTurn starts a uniformly indexed random choice from the opponent's
// available actions. This is the only decision making the opponent has.
func (w *World) opponentTurn() {
	c := w.Creature(creature.SideOpponent)
	if c.Actions.IsEmpty() {
		return
	}
	w.StartAction(creature.SideOpponent, c.Actions.Random(w.RNG.Generate()))
}

// MissingActions returns every label available to either creature that reg
// does not define, sorted.
func MissingActions(reg *Registry, creatures ...*creature.Creature) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range creatures {
		for _, label := range c.Actions.List() {
			if !reg.Has(label) && !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot is a read-only view of the World for display.
type Snapshot struct {
	Turn     creature.Side
	Over     bool
	Outcome  string
	Player   creature.Status
	Opponent creature.Status
	// Current is the in-progress action name, or "" when none.
	Current    string
	Step       int
	Steps      int
	RNGS       byte
	RNGT       byte
	RNGHistory []rng.Draw
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Turn:     w.Turn.Active(),
		Over:     w.over,
		Outcome:  w.outcome,
		Player:   w.Creature(creature.SidePlayer).Status(),
		Opponent: w.Creature(creature.SideOpponent).Status(),
	}
	if a := w.Gate.Current(); a != nil {
		s.Current, s.Step, s.Steps = a.Name(), a.Index(), a.Len()
	}
	if in, ok := w.RNG.(rng.Inspector); ok {
		s.RNGS, s.RNGT = in.State()
		s.RNGHistory = in.History()
	}
	return s
}
