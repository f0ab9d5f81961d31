package combat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StepDef is one step as written in an action definition file.
type StepDef struct {
	Kind   string  `yaml:"kind"`
	Hook   string  `yaml:"hook"`
	Mana   int     `yaml:"mana"`
	Chance float64 `yaml:"chance"`
}

// ActionDef is an action loaded from YAML. A positive Cost appends a
// spend_ap step so the action ends the way the built-ins do.
type ActionDef struct {
	Name  string    `yaml:"name"`
	Cost  int       `yaml:"cost"`
	Steps []StepDef `yaml:"steps"`
}

// Validate checks every field against the closed step set.
//
// Postcondition: Returns nil iff Compile will succeed.
func (d *ActionDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("action definition: name must not be empty")
	}
	if d.Cost < 0 || d.Cost > 255 {
		return fmt.Errorf("action %q: cost must be 0-255, got %d", d.Name, d.Cost)
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("action %q: at least one step is required", d.Name)
	}
	for i, s := range d.Steps {
		kind, ok := ParseStepKind(s.Kind)
		if !ok {
			return fmt.Errorf("action %q step %d: unknown kind %q", d.Name, i, s.Kind)
		}
		if s.Mana < 0 || s.Mana > 255 {
			return fmt.Errorf("action %q step %d: mana must be 0-255, got %d", d.Name, i, s.Mana)
		}
		if s.Chance < 0 || s.Chance > 1 {
			return fmt.Errorf("action %q step %d: chance must be 0-1, got %g", d.Name, i, s.Chance)
		}
		if kind == StepScript && s.Hook == "" {
			return fmt.Errorf("action %q step %d: script steps require a hook", d.Name, i)
		}
	}
	return nil
}

// Compile validates d and builds its prototype Action.
func (d *ActionDef) Compile() (*Action, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	steps := make([]Step, 0, len(d.Steps)+1)
	for _, s := range d.Steps {
		kind, _ := ParseStepKind(s.Kind)
		steps = append(steps, Step{
			Kind:   kind,
			Amount: byte(s.Mana),
			Chance: float32(s.Chance),
			Hook:   s.Hook,
		})
	}
	if d.Cost > 0 {
		steps = append(steps, Step{Kind: StepSpendAP, Amount: byte(d.Cost)})
	}
	return NewAction(d.Name, steps...), nil
}

// LoadDefinitionFromBytes parses one action definition from YAML.
//
// Postcondition: Returns a validated definition or an error.
func LoadDefinitionFromBytes(data []byte) (*ActionDef, error) {
	var d ActionDef
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing action definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDefinitions reads every .yaml/.yml file in dir, sorted by file name.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the definitions in file-name order or the first error.
func LoadDefinitions(dir string) ([]*ActionDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading action dir %q: %w", dir, err)
	}
	var defs []*ActionDef
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		d, err := LoadDefinitionFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// BuiltinDefinitions returns the actions every game starts with.
func BuiltinDefinitions() []*ActionDef {
	return []*ActionDef{
		{
			Name: "Attack",
			Cost: 1,
			Steps: []StepDef{
				{Kind: "roll_dodge"},
				{Kind: "roll_damage"},
				{Kind: "roll_crit"},
				{Kind: "apply_damage"},
			},
		},
		{
			Name: "Firebolt",
			Cost: 1,
			Steps: []StepDef{
				{Kind: "spend_mana", Mana: 10},
				{Kind: "roll_spell", Chance: 0.5},
				{Kind: "roll_damage"},
				{Kind: "roll_crit"},
				{Kind: "apply_damage"},
			},
		},
		{
			Name:  "Flee",
			Cost:  1,
			Steps: []StepDef{{Kind: "roll_flee"}},
		},
		{
			Name:  "Pass",
			Steps: []StepDef{{Kind: "pass"}},
		},
	}
}
