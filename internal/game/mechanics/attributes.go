package mechanics

// Strength increases damage dealt with attacks and max life.
type Strength byte

// Agility increases dodge, crit, and flee chance.
type Agility byte

// Intelligence increases max mana and spell success.
type Intelligence byte

// Attributes groups a creature's base attributes.
type Attributes struct {
	Strength     Strength
	Agility      Agility
	Intelligence Intelligence
}
