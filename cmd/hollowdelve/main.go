// Package main provides the hollowdelve binary: a headless roguelike
// run driven by a scripted player through the phase machine.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hollowdelve/hollowdelve/internal/config"
	"github.com/hollowdelve/hollowdelve/internal/game/bestiary"
	"github.com/hollowdelve/hollowdelve/internal/game/combat"
	"github.com/hollowdelve/hollowdelve/internal/game/dungeon"
	"github.com/hollowdelve/hollowdelve/internal/game/escalation"
	"github.com/hollowdelve/hollowdelve/internal/game/phase"
	"github.com/hollowdelve/hollowdelve/internal/game/reward"
	"github.com/hollowdelve/hollowdelve/internal/game/risk"
	"github.com/hollowdelve/hollowdelve/internal/game/rng"
	"github.com/hollowdelve/hollowdelve/internal/game/shop"
	"github.com/hollowdelve/hollowdelve/internal/game/world"
	"github.com/hollowdelve/hollowdelve/internal/observability"
	"github.com/hollowdelve/hollowdelve/internal/server"
	"github.com/hollowdelve/hollowdelve/internal/sim"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	bestiaryDir := flag.String("bestiary-dir", "content/bestiary", "path to enemy archetype YAML directory; empty = built-ins only")
	shopCatalog := flag.String("shop-catalog", "content/shop/catalog.yaml", "path to shop catalog YAML; empty = built-in catalog")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	// A zero seed means a fresh crypto-backed run; anything else
	// reproduces a run exactly.
	var src rng.Source
	if cfg.Sim.Seed != 0 {
		src = rng.NewSeededSource(cfg.Sim.Seed)
		logger.Info("using seeded randomness", zap.Int64("seed", cfg.Sim.Seed))
	} else {
		src = rng.NewCryptoSource()
	}
	src = rng.NewLoggedSource(src, logger)

	// Load content.
	beasts := bestiary.Default()
	if *bestiaryDir != "" {
		if info, statErr := os.Stat(*bestiaryDir); statErr == nil && info.IsDir() {
			beasts, err = bestiary.LoadDir(*bestiaryDir)
			if err != nil {
				logger.Fatal("loading bestiary", zap.Error(err))
			}
			logger.Info("bestiary loaded", zap.String("dir", *bestiaryDir))
		} else {
			logger.Warn("bestiary dir not found, using built-ins",
				zap.String("dir", *bestiaryDir))
		}
	}

	catalog := shop.DefaultCatalog()
	if *shopCatalog != "" {
		if _, statErr := os.Stat(*shopCatalog); statErr == nil {
			catalog, err = shop.LoadCatalog(*shopCatalog)
			if err != nil {
				logger.Fatal("loading shop catalog", zap.Error(err))
			}
			logger.Info("shop catalog loaded",
				zap.String("path", *shopCatalog),
				zap.Int("items", len(catalog)),
			)
		} else {
			logger.Warn("shop catalog not found, using built-ins",
				zap.String("path", *shopCatalog))
		}
	}

	// Build the world.
	gp := cfg.Gameplay
	generator, err := dungeon.NewGenerator(dungeon.Params{
		MinRoomSize:          gp.MinRoomSize,
		MaxRoomSize:          gp.MaxRoomSize,
		RoomsPerFloor:        gp.RoomsPerFloor,
		EnemyDensityIncrease: gp.EnemyDensityIncrease,
		HPScalePerFloor:      gp.HPScalePerFloor,
		DamageScalePerFloor:  gp.DamageScalePerFloor,
	}, beasts)
	if err != nil {
		logger.Fatal("creating dungeon generator", zap.Error(err))
	}

	state, err := world.NewState(gp, generator, src)
	if err != nil {
		logger.Fatal("generating first floor", zap.Error(err))
	}
	logger.Info("world generated",
		zap.Int("rooms", len(state.Rooms)),
		zap.String("biome", string(state.Biome)),
	)

	// Wire the phase systems.
	applier := reward.NewApplier(src, logger)
	resolver := combat.NewResolver(combat.Params{
		AttackRange:           gp.AttackRange,
		TelegraphSeconds:      gp.TelegraphSeconds,
		AttackCooldownSeconds: gp.AttackCooldownSeconds,
		DodgeCooldown:         gp.DodgeCooldown,
		DodgeDuration:         gp.DodgeDuration,
	}, src, logger)
	keeper := shop.NewKeeper(catalog, src, applier, logger)
	riskGen := risk.NewGenerator(src, logger)
	controller := escalation.NewController(src, logger)

	machine := phase.NewMachine(phase.Systems{
		Explore:  phase.NewExploreSystem(applier, logger),
		Fight:    phase.NewFightSystem(resolver),
		Choose:   phase.NewChooseSystem(logger),
		PowerUp:  phase.NewPowerUpSystem(applier),
		PushLuck: phase.NewPushLuckSystem(riskGen, logger),
		Escalate: phase.NewEscalateSystem(controller, logger),
		CashOut:  phase.NewCashOutSystem(keeper, logger),
		Reset:    phase.NewResetSystem(logger),
	}, riskGen, sim.NewLogRenderer(logger), logger)

	loop := sim.NewLoop(machine, state, sim.NewScriptedDriver(),
		cfg.Sim.TickRate, cfg.Sim.MaxFrames, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("game-loop", loop)

	logger.Info("hollowdelve initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Int("tick_rate", cfg.Sim.TickRate),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("run error", zap.Error(err))
	}
}
