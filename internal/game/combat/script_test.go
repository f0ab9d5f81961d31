package combat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/game/combat"
	"github.com/cory-johannsen/foresight/internal/game/creature"
	"github.com/cory-johannsen/foresight/internal/game/rng"
	"github.com/cory-johannsen/foresight/internal/scripting"
)

const drainLua = `
function drain(actor, target)
	engine.damage(target.side, 4)
	engine.heal(actor.side, 2)
	engine.reply(actor.name .. " drains " .. target.name)
end

function peek(actor, target)
	engine.reply("rolled " .. engine.rng())
end
`

func newScriptHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, rng.Default(),
		makeTemplate("hero", 10, 0, 0, 0, 3, 5, "Drain", "Peek"),
		makeTemplate("dummy", 10, 0, 0, 0, 1, 1, "Pass"),
		1, 1)
	require.NoError(t, h.w.Registry.RegisterDefinitions([]*combat.ActionDef{
		{Name: "Drain", Cost: 1, Steps: []combat.StepDef{{Kind: "script", Hook: "drain"}}},
		{Name: "Peek", Steps: []combat.StepDef{{Kind: "script", Hook: "peek"}}},
	}))
	return h
}

func TestScriptStep_EngineCallbacks(t *testing.T) {
	h := newScriptHarness(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drain.lua"), []byte(drainLua), 0644))
	mgr := scripting.NewManager(zap.NewNop(), 0)
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.Load(dir))
	h.w.AttachScripts(mgr)

	h.player().Life.Subtract(5)
	require.True(t, h.w.StartAction(creature.SidePlayer, "Drain"))
	h.trigger(1)

	assert.Equal(t, byte(6), h.opponent().Life.Current())
	assert.Equal(t, byte(7), h.player().Life.Current())
	assert.Equal(t, []string{"hero uses Drain.", "hero drains dummy", "4 damage was dealt!"}, h.replies)

	h.trigger(1)
	assert.True(t, h.w.Gate.IsEmpty())
	assert.Equal(t, byte(0), h.player().ActionPoints.Current())
}

func TestScriptStep_DrawsFromWorldRNG(t *testing.T) {
	h := newScriptHarness(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drain.lua"), []byte(drainLua), 0644))
	mgr := scripting.NewManager(zap.NewNop(), 0)
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.Load(dir))
	h.w.AttachScripts(mgr)

	require.True(t, h.w.StartAction(creature.SidePlayer, "Peek"))
	h.trigger(1)
	assert.Contains(t, h.replies, "rolled 89")
}

func TestScriptStep_WithoutEngineWarns(t *testing.T) {
	h := newScriptHarness(t)
	require.True(t, h.w.StartAction(creature.SidePlayer, "Drain"))
	h.trigger(1)

	assert.Equal(t, byte(10), h.opponent().Life.Current())
	assert.Equal(t, 1, h.logs.FilterMessage("script step without a scripting engine").Len())
}

func TestScriptStep_SkippedAfterMiss(t *testing.T) {
	h := newScriptHarness(t)
	require.NoError(t, h.w.Registry.RegisterDefinitions([]*combat.ActionDef{
		{Name: "Siphon", Cost: 1, Steps: []combat.StepDef{
			{Kind: "spend_mana", Mana: 10},
			{Kind: "script", Hook: "drain"},
		}},
	}))
	h.player().Actions.Insert("Siphon")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drain.lua"), []byte(drainLua), 0644))
	mgr := scripting.NewManager(zap.NewNop(), 0)
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.Load(dir))
	h.w.AttachScripts(mgr)

	require.True(t, h.w.StartAction(creature.SidePlayer, "Siphon"))
	h.trigger(2)

	assert.Equal(t, byte(10), h.opponent().Life.Current())
	assert.Equal(t, []string{"hero uses Siphon.", "not enough mana"}, h.replies)
}
