// Package main runs a single player-versus-opponent combat in the terminal.
// It wires together configuration, content, the combat loop, and the console.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foresight/internal/config"
	"github.com/cory-johannsen/foresight/internal/frontend/console"
	"github.com/cory-johannsen/foresight/internal/game/combat"
	"github.com/cory-johannsen/foresight/internal/game/command"
	"github.com/cory-johannsen/foresight/internal/game/creature"
	"github.com/cory-johannsen/foresight/internal/game/rng"
	"github.com/cory-johannsen/foresight/internal/observability"
	"github.com/cory-johannsen/foresight/internal/scripting"
	"github.com/cory-johannsen/foresight/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and FORESIGHT_* environment")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting foresight",
		zap.Int("seed_s", cfg.RNG.SeedS),
		zap.Int("seed_t", cfg.RNG.SeedT),
		zap.Duration("tick_interval", cfg.Combat.TickInterval),
	)

	// Creature templates
	templates := creature.BuiltinTemplates()
	if cfg.Content.CreaturesDir != "" {
		loaded, err := creature.LoadTemplates(cfg.Content.CreaturesDir)
		if err != nil {
			logger.Fatal("loading creature templates", zap.Error(err))
		}
		for id, tmpl := range loaded {
			templates[id] = tmpl
		}
		logger.Info("loaded creature templates", zap.Int("count", len(loaded)))
	}
	playerTmpl, ok := templates[cfg.Combat.PlayerTemplate]
	if !ok {
		logger.Fatal("unknown player template", zap.String("template", cfg.Combat.PlayerTemplate))
	}
	opponentTmpl, ok := templates[cfg.Combat.OpponentTemplate]
	if !ok {
		logger.Fatal("unknown opponent template", zap.String("template", cfg.Combat.OpponentTemplate))
	}

	// Actions
	actions := combat.NewDefaultRegistry()
	if cfg.Content.ActionsDir != "" {
		defs, err := combat.LoadDefinitions(cfg.Content.ActionsDir)
		if err != nil {
			logger.Fatal("loading action definitions", zap.Error(err))
		}
		if err := actions.RegisterDefinitions(defs); err != nil {
			logger.Fatal("registering action definitions", zap.Error(err))
		}
		logger.Info("loaded action definitions", zap.Int("count", len(defs)))
	}

	ap := byte(cfg.Combat.ActionPoints)
	player := creature.Spawn(playerTmpl, creature.SidePlayer, ap, logger)
	opponent := creature.Spawn(opponentTmpl, creature.SideOpponent, ap, logger)
	if missing := combat.MissingActions(actions, player, opponent); len(missing) > 0 {
		logger.Fatal("creatures reference undefined actions", zap.Strings("actions", missing))
	}

	src := rng.NewLogged(rng.NewWithHistory(byte(cfg.RNG.SeedS), byte(cfg.RNG.SeedT), cfg.RNG.History), logger)
	world := combat.NewWorld(src, actions, player, opponent, logger)

	// Scripting
	if cfg.Content.ScriptsDir != "" {
		scripts := scripting.NewManager(logger, cfg.Scripting.InstructionLimit)
		defer scripts.Close()
		if err := scripts.Load(cfg.Content.ScriptsDir); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		world.AttachScripts(scripts)
		logger.Info("scripting enabled", zap.String("dir", cfg.Content.ScriptsDir))
	}

	commands, err := command.RegistryForActions(actions.Names())
	if err != nil {
		logger.Fatal("building command registry", zap.Error(err))
	}

	loop := combat.NewLoop(world, cfg.Combat.TickInterval, logger)
	session := console.NewSession(
		console.NewConn(os.Stdin, os.Stdout),
		loop,
		commands,
		player.Name,
		console.Styler{Enabled: cfg.Console.Color},
		logger,
	)

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("combat", &server.ContextService{RunFn: loop.Run})
	lifecycle.Add("console", &server.ContextService{RunFn: session.Run})

	logger.Info("combat initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("player", player.Name),
		zap.String("opponent", opponent.Name),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("combat error", zap.Error(err))
	}
}
