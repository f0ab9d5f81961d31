package combat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/foresight/internal/game/combat"
)

const drainYAML = `
name: Drain
cost: 2
steps:
  - kind: spend_mana
    mana: 5
  - kind: script
    hook: drain
`

func TestLoadDefinitionFromBytes_Compiles(t *testing.T) {
	d, err := combat.LoadDefinitionFromBytes([]byte(drainYAML))
	require.NoError(t, err)

	a, err := d.Compile()
	require.NoError(t, err)
	assert.Equal(t, "Drain", a.Name())
	assert.Equal(t, []combat.Step{
		{Kind: combat.StepSpendMana, Amount: 5},
		{Kind: combat.StepScript, Hook: "drain"},
		{Kind: combat.StepSpendAP, Amount: 2},
	}, a.Steps())
}

func TestLoadDefinitionFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name":    "steps: [{kind: pass}]",
		"no steps":        "name: X",
		"unknown kind":    "name: X\nsteps: [{kind: teleport}]",
		"script no hook":  "name: X\nsteps: [{kind: script}]",
		"mana too large":  "name: X\nsteps: [{kind: spend_mana, mana: 300}]",
		"chance over one": "name: X\nsteps: [{kind: roll_spell, chance: 1.5}]",
		"negative cost":   "name: X\ncost: -1\nsteps: [{kind: pass}]",
		"malformed yaml":  "name: [",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := combat.LoadDefinitionFromBytes([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefinitions_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drain.yaml"), []byte(drainYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bash.yml"), []byte("name: Bash\ncost: 1\nsteps: [{kind: roll_damage}, {kind: apply_damage}]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	defs, err := combat.LoadDefinitions(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "Bash", defs[0].Name)
	assert.Equal(t, "Drain", defs[1].Name)
}

func TestLoadDefinitions_Errors(t *testing.T) {
	_, err := combat.LoadDefinitions("/nonexistent/actions")
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: X\nsteps: [{kind: teleport}]"), 0644))
	_, err = combat.LoadDefinitions(dir)
	assert.Error(t, err)
}

func TestDefaultRegistry_Builtins(t *testing.T) {
	reg := combat.NewDefaultRegistry()
	assert.Equal(t, []string{"Attack", "Firebolt", "Flee", "Pass"}, reg.Names())
	assert.Equal(t, 5, reg.Lookup("Attack").Len())
	assert.Equal(t, 6, reg.Lookup("Firebolt").Len())
	assert.Equal(t, 2, reg.Lookup("Flee").Len())
	assert.Equal(t, 1, reg.Lookup("Pass").Len())
}

func TestRegistry_Resolve(t *testing.T) {
	reg := combat.NewDefaultRegistry()
	name, ok := reg.Resolve("firebolt")
	require.True(t, ok)
	assert.Equal(t, "Firebolt", name)
	_, ok = reg.Resolve("dance")
	assert.False(t, ok)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	reg := combat.NewDefaultRegistry()
	err := reg.Register(combat.NewAction("attack", combat.Step{Kind: combat.StepPass}))
	assert.Error(t, err)
	assert.Equal(t, 5, reg.Lookup("Attack").Len(), "the first registration is kept")
}

func TestRegistry_LookupReturnsClone(t *testing.T) {
	reg := combat.NewDefaultRegistry()
	a := reg.Lookup("Pass")
	b := reg.Lookup("Pass")
	assert.NotSame(t, a, b)
}

func TestRegistry_LookupUnknownPanics(t *testing.T) {
	reg := combat.NewDefaultRegistry()
	assert.Panics(t, func() { reg.Lookup("Dance") })
	assert.False(t, reg.Has("Dance"))
}
