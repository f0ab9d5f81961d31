package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		RNG: RNGConfig{
			SeedS:   42,
			SeedT:   69,
			History: 16,
		},
		Combat: CombatConfig{
			TickInterval:     50 * time.Millisecond,
			ActionPoints:     1,
			PlayerTemplate:   "hero",
			OpponentTemplate: "goblin",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
rng:
  seed_s: 1
  seed_t: 2
  history: 4
combat:
  tick_interval: 10ms
  action_points: 3
  player_template: mage
  opponent_template: troll
content:
  actions_dir: /tmp/actions
scripting:
  instruction_limit: 500
console:
  color: false
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output, "unset keys keep their defaults")
	assert.Equal(t, 1, cfg.RNG.SeedS)
	assert.Equal(t, 2, cfg.RNG.SeedT)
	assert.Equal(t, 10*time.Millisecond, cfg.Combat.TickInterval)
	assert.Equal(t, 3, cfg.Combat.ActionPoints)
	assert.Equal(t, "troll", cfg.Combat.OpponentTemplate)
	assert.Equal(t, "/tmp/actions", cfg.Content.ActionsDir)
	assert.Equal(t, 500, cfg.Scripting.InstructionLimit)
	assert.False(t, cfg.Console.Color)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.RNG.SeedS)
	assert.Equal(t, 69, cfg.RNG.SeedT)
	assert.Equal(t, "hero", cfg.Combat.PlayerTemplate)
	assert.Equal(t, "goblin", cfg.Combat.OpponentTemplate)
	assert.Equal(t, 50*time.Millisecond, cfg.Combat.TickInterval)
	assert.True(t, cfg.Console.Color)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FORESIGHT_RNG_SEED_S", "7")
	t.Setenv("FORESIGHT_COMBAT_ACTION_POINTS", "4")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RNG.SeedS)
	assert.Equal(t, 4, cfg.Combat.ActionPoints)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Defaults(t *testing.T) {
	cfg, err := LoadFromViper(NewDefaultViper())
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutputEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateCombat(t *testing.T) {
	cfg := validConfig()
	cfg.Combat.TickInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Combat.ActionPoints = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Combat.PlayerTemplate = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateScriptingLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.InstructionLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.RNG.SeedS = 300
	cfg.Combat.ActionPoints = 0
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"logging.level", "rng.seed_s", "combat.action_points"} {
		assert.True(t, strings.Contains(err.Error(), want), "missing %q in %q", want, err.Error())
	}
}

// Property-based tests

func TestPropertyValidSeedRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.IntRange(0, 255).Draw(t, "seed_s")
		tt := rapid.IntRange(0, 255).Draw(t, "seed_t")
		cfg := validConfig()
		cfg.RNG.SeedS = s
		cfg.RNG.SeedT = tt
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid seed (%d, %d) rejected: %v", s, tt, err)
		}
	})
}

func TestPropertyInvalidSeedRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.OneOf(
			rapid.IntRange(-1000, -1),
			rapid.IntRange(256, 100000),
		).Draw(t, "seed_s")
		cfg := validConfig()
		cfg.RNG.SeedS = s
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid seed %d accepted", s)
		}
	})
}

func TestPropertyActionPointsRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ap := rapid.IntRange(-100, 400).Draw(t, "action_points")
		cfg := validConfig()
		cfg.Combat.ActionPoints = ap
		err := cfg.Validate()
		if (ap >= 1 && ap <= 255) != (err == nil) {
			t.Fatalf("action_points=%d: unexpected validation result %v", ap, err)
		}
	})
}
