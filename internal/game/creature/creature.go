// Package creature defines the two combatants and the templates they are built from.
package creature

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/mechanics"
)

// Side identifies one of the two combatants.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// String returns "player" or "opponent".
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// ParseSide converts "player" or "opponent" to a Side.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "player":
		return SidePlayer, true
	case "opponent":
		return SideOpponent, true
	default:
		return 0, false
	}
}

// Marker tags whose turn it is. The zero value means the turn controller has
// not tagged the creature yet.
type Marker int

const (
	Untagged Marker = iota
	Active
	Inactive
)

// String returns a lowercase marker name.
func (m Marker) String() string {
	switch m {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "untagged"
	}
}

// Creature is one combatant and all of its combat state.
type Creature struct {
	ID         uuid.UUID
	TemplateID string
	Name       string
	Side       Side
	Attributes mechanics.Attributes

	Life         mechanics.Life
	Mana         mechanics.Mana
	ActionPoints mechanics.ActionPoints
	Damage       mechanics.Damage

	Crit  mechanics.CritChance
	Dodge mechanics.DodgeChance
	Flee  mechanics.FleeChance

	Actions *AvailableActions
	Marker  Marker
}

// IsDefeated reports whether the creature has no life left.
func (c *Creature) IsDefeated() bool { return c.Life.IsEmpty() }

// Spawn builds a Creature from tmpl for side with the given action point budget.
//
// Precondition: tmpl must have passed Validate; logger must be non-nil.
// Postcondition: Life, Mana, and ActionPoints are full; Damage is unrolled.
func Spawn(tmpl *Template, side Side, actionPoints byte, logger *zap.Logger) *Creature {
	attrs := mechanics.Attributes{
		Strength:     mechanics.Strength(tmpl.Strength),
		Agility:      mechanics.Agility(tmpl.Agility),
		Intelligence: mechanics.Intelligence(tmpl.Intelligence),
	}
	c := &Creature{
		ID:           uuid.New(),
		TemplateID:   tmpl.ID,
		Name:         tmpl.Name,
		Side:         side,
		Attributes:   attrs,
		Life:         mechanics.ComputeLife(byte(tmpl.BaseLife), attrs.Strength),
		Mana:         mechanics.ComputeMana(byte(tmpl.BaseMana), attrs.Intelligence),
		ActionPoints: mechanics.NewActionPoints(actionPoints),
		Damage:       mechanics.NewDamage(byte(tmpl.Damage.Min), byte(tmpl.Damage.Max)),
		Crit:         mechanics.NewCritChance(attrs.Agility),
		Dodge:        mechanics.NewDodgeChance(attrs.Agility),
		Flee:         mechanics.NewFleeChance(attrs.Agility),
		Actions:      NewAvailableActions(logger),
	}
	for _, a := range tmpl.Actions {
		c.Actions.Insert(a)
	}
	return c
}

// Pool is a current/max pair for display.
type Pool struct {
	Current byte
	Max     byte
}

// Status is a read-only snapshot of a creature for the display layer.
type Status struct {
	Name         string
	Side         Side
	Marker       Marker
	Life         Pool
	Mana         Pool
	ActionPoints Pool
	Actions      []string
}

// Status returns a snapshot of c.
func (c *Creature) Status() Status {
	return Status{
		Name:         c.Name,
		Side:         c.Side,
		Marker:       c.Marker,
		Life:         Pool{Current: c.Life.Current(), Max: c.Life.Max()},
		Mana:         Pool{Current: c.Mana.Current(), Max: c.Mana.Max()},
		ActionPoints: Pool{Current: c.ActionPoints.Current(), Max: c.ActionPoints.Max()},
		Actions:      c.Actions.List(),
	}
}
