package creature

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DamageRange is the [min, max] damage a template deals.
type DamageRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Template defines a reusable creature loaded from YAML.
type Template struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	BaseLife     int         `yaml:"base_life"`
	BaseMana     int         `yaml:"base_mana"`
	Strength     int         `yaml:"strength"`
	Agility      int         `yaml:"agility"`
	Intelligence int         `yaml:"intelligence"`
	Damage       DamageRange `yaml:"damage"`
	Actions      []string    `yaml:"actions"`
}

// Validate checks that every numeric field fits in a byte and the damage range is ordered.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff the template can be passed to Spawn.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("creature template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("creature template %q: name must not be empty", t.ID)
	}
	fields := []struct {
		name  string
		value int
	}{
		{"base_life", t.BaseLife},
		{"base_mana", t.BaseMana},
		{"strength", t.Strength},
		{"agility", t.Agility},
		{"intelligence", t.Intelligence},
		{"damage.min", t.Damage.Min},
		{"damage.max", t.Damage.Max},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 255 {
			return fmt.Errorf("creature template %q: %s must be 0-255, got %d", t.ID, f.name, f.value)
		}
	}
	if t.Damage.Max < t.Damage.Min {
		return fmt.Errorf("creature template %q: damage.max %d is below damage.min %d", t.ID, t.Damage.Max, t.Damage.Min)
	}
	if len(t.Actions) == 0 {
		return fmt.Errorf("creature template %q: at least one action is required", t.ID)
	}
	if len(t.Actions) > MaxAvailableActions {
		return fmt.Errorf("creature template %q: at most %d actions allowed, got %d", t.ID, MaxAvailableActions, len(t.Actions))
	}
	return nil
}

// LoadTemplateFromBytes parses and validates a single template from YAML.
//
// Postcondition: Returns a validated *Template or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing creature template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir keyed by template ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns every template or an error on the first failure or duplicate ID.
func LoadTemplates(dir string) (map[string]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading creature dir %q: %w", dir, err)
	}

	templates := make(map[string]*Template)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := templates[tmpl.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate template id %q", path, tmpl.ID)
		}
		templates[tmpl.ID] = tmpl
	}
	return templates, nil
}

// BuiltinTemplates returns the templates available without any content directory.
func BuiltinTemplates() map[string]*Template {
	return map[string]*Template{
		"hero": {
			ID:           "hero",
			Name:         "Hero",
			BaseLife:     40,
			BaseMana:     50,
			Strength:     5,
			Agility:      10,
			Intelligence: 5,
			Damage:       DamageRange{Min: 3, Max: 6},
			Actions:      []string{"Attack", "Firebolt", "Flee", "Pass"},
		},
		"goblin": {
			ID:           "goblin",
			Name:         "Goblin",
			BaseLife:     20,
			BaseMana:     0,
			Strength:     3,
			Agility:      15,
			Intelligence: 0,
			Damage:       DamageRange{Min: 2, Max: 4},
			Actions:      []string{"Attack", "Pass"},
		},
	}
}
