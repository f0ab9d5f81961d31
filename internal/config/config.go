// Package config provides Viper-based configuration loading for Foresight.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout", or a file path. The console
	// owns stdout, so the default is stderr.
	Output string `mapstructure:"output"`
}

// RNGConfig seeds the combat random stream.
type RNGConfig struct {
	SeedS int `mapstructure:"seed_s"`
	SeedT int `mapstructure:"seed_t"`
	// History is how many draws the rng inspector remembers.
	History int `mapstructure:"history"`
}

// CombatConfig holds combat loop and combatant settings.
type CombatConfig struct {
	// TickInterval is how often the loop runs the turn check and gate.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// ActionPoints is the per-turn action point budget of each combatant.
	ActionPoints int `mapstructure:"action_points"`
	// PlayerTemplate and OpponentTemplate are creature template IDs.
	PlayerTemplate   string `mapstructure:"player_template"`
	OpponentTemplate string `mapstructure:"opponent_template"`
}

// ContentConfig locates optional YAML and Lua content. Empty paths disable loading.
type ContentConfig struct {
	CreaturesDir string `mapstructure:"creatures_dir"`
	ActionsDir   string `mapstructure:"actions_dir"`
	ScriptsDir   string `mapstructure:"scripts_dir"`
}

// ScriptingConfig holds Lua VM limits.
type ScriptingConfig struct {
	// InstructionLimit caps opcodes per hook call; 0 selects the engine default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// ConsoleConfig holds terminal settings.
type ConsoleConfig struct {
	// Color enables ANSI colors in console output.
	Color bool `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	RNG       RNGConfig       `mapstructure:"rng"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Console   ConsoleConfig   `mapstructure:"console"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRNG(c.RNG); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateRNG(r RNGConfig) error {
	var errs []string
	if r.SeedS < 0 || r.SeedS > 255 {
		errs = append(errs, fmt.Sprintf("rng.seed_s must be 0-255, got %d", r.SeedS))
	}
	if r.SeedT < 0 || r.SeedT > 255 {
		errs = append(errs, fmt.Sprintf("rng.seed_t must be 0-255, got %d", r.SeedT))
	}
	if r.History < 0 {
		errs = append(errs, fmt.Sprintf("rng.history must be >= 0, got %d", r.History))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Sprintf("combat.tick_interval must be > 0, got %s", c.TickInterval))
	}
	if c.ActionPoints < 1 || c.ActionPoints > 255 {
		errs = append(errs, fmt.Sprintf("combat.action_points must be 1-255, got %d", c.ActionPoints))
	}
	if c.PlayerTemplate == "" {
		errs = append(errs, "combat.player_template must not be empty")
	}
	if c.OpponentTemplate == "" {
		errs = append(errs, "combat.opponent_template must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with FORESIGHT_ prefix
	v.SetEnvPrefix("FORESIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("rng.seed_s", 42)
	v.SetDefault("rng.seed_t", 69)
	v.SetDefault("rng.history", 16)

	v.SetDefault("combat.tick_interval", "50ms")
	v.SetDefault("combat.action_points", 1)
	v.SetDefault("combat.player_template", "hero")
	v.SetDefault("combat.opponent_template", "goblin")

	v.SetDefault("content.creatures_dir", "")
	v.SetDefault("content.actions_dir", "")
	v.SetDefault("content.scripts_dir", "")

	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("console.color", true)
}

// NewDefaultViper returns a Viper instance holding only the defaults.
func NewDefaultViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}
