package combat

import (
	"fmt"

	"github.com/cory-johannsen/foresight/internal/game/mechanics"
)

// StepKind enumerates every kind of action step. The set is closed; action
// definitions loaded from YAML must name one of these kinds.
type StepKind int

const (
	StepUnknown     StepKind = iota // zero value; intentionally invalid
	StepRollDodge                   // target may dodge; sets Missed
	StepRollDamage                  // actor rolls its damage range
	StepRollCrit                    // actor may double the rolled damage
	StepApplyDamage                 // deferred: target takes the rolled damage
	StepSpendMana                   // actor pays Amount mana or the action misses
	StepRollSpell                   // actor's spell succeeds with base Chance
	StepRollFlee                    // actor may flee, ending combat
	StepSpendAP                     // actor pays Amount action points
	StepPass                        // actor forfeits its remaining action points
	StepScript                      // calls the Lua global named Hook
)

var stepKindNames = map[StepKind]string{
	StepRollDodge:   "roll_dodge",
	StepRollDamage:  "roll_damage",
	StepRollCrit:    "roll_crit",
	StepApplyDamage: "apply_damage",
	StepSpendMana:   "spend_mana",
	StepRollSpell:   "roll_spell",
	StepRollFlee:    "roll_flee",
	StepSpendAP:     "spend_ap",
	StepPass:        "pass",
	StepScript:      "script",
}

// String returns the snake_case name used in action definition files.
func (k StepKind) String() string {
	if n, ok := stepKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseStepKind converts a definition-file name to a StepKind.
//
// Postcondition: Returns (StepUnknown, false) for unrecognized names.
func ParseStepKind(s string) (StepKind, bool) {
	for k, n := range stepKindNames {
		if n == s {
			return k, true
		}
	}
	return StepUnknown, false
}

// Step is one discrete unit of an action. Steps hold only their parameters;
// all mutable state lives in the World.
type Step struct {
	Kind StepKind
	// Amount is the mana cost for StepSpendMana and the AP cost for StepSpendAP.
	Amount byte
	// Chance is the base success fraction for StepRollSpell.
	Chance float32
	// Hook is the Lua global called by StepScript.
	Hook string
}

// Run executes the step against w. Effects that must be observed by later
// steps are queued with w.Defer and flushed by the caller.
//
// Precondition: w must have a bound actor (an action is current) and s.Kind
// must be a known kind; unknown kinds panic.
func (s Step) Run(w *World) {
	actor, target := w.Actor(), w.Target()
	switch s.Kind {
	case StepRollDodge:
		if w.bound.Missed {
			return
		}
		if target.Dodge.Roll(w.RNG.Generate()) {
			w.bound.Missed = true
			w.Reply(fmt.Sprintf("%s dodged the attack!", target.Name))
		}
	case StepRollDamage:
		if w.bound.Missed {
			return
		}
		actor.Damage.Roll(w.RNG.Generate())
	case StepRollCrit:
		if w.bound.Missed {
			return
		}
		if actor.Crit.Roll(w.RNG.Generate()) {
			actor.Damage.Multiply(2)
			w.Reply("a critical hit!")
		}
	case StepApplyDamage:
		if w.bound.Missed {
			actor.Damage.Reset()
			return
		}
		dmg := actor.Damage
		actor.Damage.Reset()
		n, ok := dmg.Actual()
		if !ok {
			return
		}
		side := w.bound.Target
		w.Defer(func(w *World) {
			w.hit(side, dmg, n)
		})
	case StepSpendMana:
		if actor.Mana.Current() < s.Amount {
			w.bound.Missed = true
			w.Reply("not enough mana")
			return
		}
		actor.Mana.Subtract(s.Amount)
	case StepRollSpell:
		if w.bound.Missed {
			return
		}
		chance := mechanics.NewSpellSuccess(s.Chance, actor.Attributes.Intelligence)
		if !chance.Roll(w.RNG.Generate()) {
			w.bound.Missed = true
			w.Reply("the spell fizzled!")
		}
	case StepRollFlee:
		if actor.Flee.Roll(w.RNG.Generate()) {
			w.End(fmt.Sprintf("%s fled from combat!", actor.Name))
			return
		}
		w.Reply(fmt.Sprintf("%s failed to flee!", actor.Name))
	case StepSpendAP:
		actor.ActionPoints.Subtract(s.Amount)
	case StepPass:
		actor.ActionPoints.Subtract(actor.ActionPoints.Current())
		w.Reply(fmt.Sprintf("%s passes.", actor.Name))
	case StepScript:
		if w.bound.Missed {
			return
		}
		w.runScript(s.Hook)
	default:
		panic(fmt.Sprintf("combat: Step.Run precondition violated: unknown step kind %d", s.Kind))
	}
}
