package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/foresight/internal/game/combat"
	"github.com/cory-johannsen/foresight/internal/game/creature"
	"github.com/cory-johannsen/foresight/internal/game/rng"
)

func noopSteps(n int) []combat.Step {
	steps := make([]combat.Step, n)
	for i := range steps {
		steps[i] = combat.Step{Kind: combat.StepSpendAP}
	}
	return steps
}

func TestNewAction_Preconditions(t *testing.T) {
	assert.Panics(t, func() { combat.NewAction("", noopSteps(1)...) })
	assert.Panics(t, func() { combat.NewAction("Empty") })
}

func TestAction_AdvancePastEndPanics(t *testing.T) {
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Pass"),
		makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
		1, 1)
	a := combat.NewAction("Wait", noopSteps(1)...)
	a.Advance(h.w)
	assert.True(t, a.IsFinished())
	assert.Panics(t, func() { a.Advance(h.w) })
}

func TestAction_RunAllLeavesIdle(t *testing.T) {
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Hit"),
		makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
		1, 1)
	a := h.w.Registry.Lookup("Hit")
	a.RunAll(h.w, creature.SidePlayer)

	assert.Equal(t, 0, a.Index())
	assert.Equal(t, byte(7), h.opponent().Life.Current())
	assert.Equal(t, byte(10), h.player().Life.Current(), "the actor never hits itself")
	assert.Equal(t, combat.Bound{}, h.w.Bound())
}

func TestAction_RunAllBindsOpponent(t *testing.T) {
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Pass"),
		makeTemplate("dummy", 10, 0, 0, 0, 3, 5, "Hit"),
		1, 1)
	h.w.Registry.Lookup("Hit").RunAll(h.w, creature.SideOpponent)

	assert.Equal(t, byte(7), h.player().Life.Current())
	assert.Equal(t, byte(10), h.opponent().Life.Current())
}

func TestAction_RunAllPanicsWhileGateOccupied(t *testing.T) {
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Hit"),
		makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
		1, 1)
	require.True(t, h.w.StartAction(creature.SidePlayer, "Hit"))
	assert.Panics(t, func() { h.w.Registry.Lookup("Hit").RunAll(h.w, creature.SidePlayer) })
}

func TestAction_CloneIsIndependent(t *testing.T) {
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Pass"),
		makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
		1, 1)
	a := combat.NewAction("Wait", noopSteps(3)...)
	a.Advance(h.w)
	c := a.Clone()

	assert.Equal(t, 1, a.Index())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, a.Steps(), c.Steps())
	assert.Equal(t, "Wait", c.Name())
}

func TestProperty_IndexTracksTriggers(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "steps")
		m := rapid.IntRange(0, n).Draw(rt, "advances")
		h := newHarness(rt, rng.Default(),
			makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Pass"),
			makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
			1, 1)
		a := combat.NewAction("Wait", noopSteps(n)...)
		for i := 0; i < m; i++ {
			a.Advance(h.w)
		}
		assert.Equal(rt, m, a.Index())
		assert.LessOrEqual(rt, a.Index(), a.Len())
		assert.Equal(rt, m == n, a.IsFinished())
		a.Reset()
		assert.Equal(rt, 0, a.Index())
	})
}

func TestStepKind_NamesRoundTrip(t *testing.T) {
	for k := combat.StepRollDodge; k <= combat.StepScript; k++ {
		got, ok := combat.ParseStepKind(k.String())
		require.True(t, ok, "kind %d", k)
		assert.Equal(t, k, got)
	}
	_, ok := combat.ParseStepKind("teleport")
	assert.False(t, ok)
	assert.Equal(t, "unknown", combat.StepUnknown.String())
}

func TestStep_UnknownKindPanics(t *testing.T) {
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Pass"),
		makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
		1, 1)
	assert.Panics(t, func() { combat.Step{}.Run(h.w) })
}
