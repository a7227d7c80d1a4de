package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huntfield/server/internal/config"
	coresys "github.com/huntfield/server/internal/core/system"
	"github.com/huntfield/server/internal/data"
	"github.com/huntfield/server/internal/entity"
	"github.com/huntfield/server/internal/obs"
	"github.com/huntfield/server/internal/persist"
	"github.com/huntfield/server/internal/physics"
	"github.com/huntfield/server/internal/scene"
	"github.com/huntfield/server/internal/scripting"
	"github.com/huntfield/server/internal/spawn"
	"github.com/huntfield/server/internal/system"
	"github.com/huntfield/server/internal/world"
)

const defaultHunterName = "hunter"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("HUNTFIELD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("huntfield starting",
		zap.String("server", cfg.Server.Name),
		zap.Int("id", cfg.Server.ID))

	// 3. Optional PostgreSQL: hunter profiles only, never tile state.
	var hunterRepo *persist.HunterRepo
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		hunterRepo = persist.NewHunterRepo(db)
		log.Info("database ready")
	}

	// 4. Load data tables
	speciesTable, err := data.LoadSpeciesTable("data/yaml/species_list.yaml")
	if err != nil {
		return fmt.Errorf("load species table: %w", err)
	}
	decorTable, err := data.LoadDecorTable("data/yaml/decoration_list.yaml")
	if err != nil {
		return fmt.Errorf("load decoration table: %w", err)
	}
	pickupTable, err := data.LoadPickupTable("data/yaml/pickup_list.yaml")
	if err != nil {
		return fmt.Errorf("load pickup table: %w", err)
	}
	assetTable, err := data.LoadAssetTable("data/yaml/asset_list.yaml")
	if err != nil {
		return fmt.Errorf("load asset table: %w", err)
	}
	applyPopulationOverrides(speciesTable, cfg.Population)
	log.Info("data loaded",
		zap.Int("species", speciesTable.Count()),
		zap.Int("decorations", decorTable.Count()),
		zap.Int("pickups", pickupTable.Count()),
		zap.Int("assets", assetTable.Count()))

	// 5. Lua behavior engine
	luaEngine, err := scripting.NewEngine("scripts", log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	// 6. Assemble the world
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	entities := entity.NewManager()
	sceneGraph := scene.NewGraph()
	physicsWorld := physics.NewWorld()
	registry := world.NewRegistry()

	spawner := spawn.NewFactories(entities, physicsWorld, sceneGraph, assetTable, luaEngine, rng, log)
	factory := world.NewFactory(
		world.Params{
			TileSize:      cfg.Streaming.TileSize,
			EdgeMargin:    cfg.Streaming.EdgeMargin,
			DecorationMin: cfg.Population.DecorationMin,
			DecorationMax: cfg.Population.DecorationMax,
		},
		speciesTable, decorTable, pickupTable, spawner, registry, rng, log,
	)
	relocator := world.NewRelocator(cfg.Streaming.TileSize, cfg.Streaming.EdgeMargin, rng, log)

	player := &world.PlayerInfo{Name: defaultHunterName}
	if hunterRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		row, err := hunterRepo.Load(ctx, defaultHunterName)
		cancel()
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if row != nil {
			player.X, player.Z, player.Yaw, player.Score = row.X, row.Z, row.Yaw, row.Score
			log.Info("profile restored", zap.Float64("x", row.X), zap.Float64("z", row.Z))
		}
	}
	playerFn := func() *world.PlayerInfo { return player }

	reconciler := world.NewReconciler(
		cfg.Streaming.TileSize,
		world.Window{
			ForwardDepth: cfg.Streaming.ForwardDepth,
			BackDepth:    cfg.Streaming.BackDepth,
			SideWidth:    cfg.Streaming.SideWidth,
		},
		registry, factory, relocator, sceneGraph, physicsWorld, entities, playerFn, log,
	)

	// 7. Observer websocket feed
	hub := obs.NewHub(log)
	if cfg.Observer.Enabled {
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.HandleWS)
		go func() {
			if err := http.ListenAndServe(cfg.Observer.BindAddress, mux); err != nil {
				log.Error("observer server stopped", zap.Error(err))
			}
		}()
		log.Info("observer listening", zap.String("addr", cfg.Observer.BindAddress))
	}

	// 8. Systems
	runner := coresys.NewRunner()
	persistSys := system.NewPersistSystem(hunterRepo, playerFn, cfg.Simulation.AutosaveTick, log)
	runner.Register(system.NewStreamingSystem(reconciler))
	runner.Register(system.NewBehaviorSystem(entities))
	runner.Register(system.NewObserverSystem(hub, registry, playerFn))
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(entities))

	// 9. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate.Duration)
	defer ticker.Stop()

	log.Info("game loop started", zap.Duration("tick", cfg.Simulation.TickRate.Duration))

	for {
		select {
		case <-ticker.C:
			drainPoses(hub, player)
			runner.Tick(cfg.Simulation.TickRate.Duration)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			persistSys.Save()
			log.Info("server stopped",
				zap.Int("tiles", registry.Count()),
				zap.Int("entities", entities.Count()))
			return nil
		}
	}
}

// drainPoses applies the latest observer-driven pose update, if any arrived
// since the last tick.
func drainPoses(hub *obs.Hub, player *world.PlayerInfo) {
	for {
		select {
		case pose := <-hub.Poses():
			player.X, player.Z, player.Yaw = pose.X, pose.Z, pose.Yaw
		default:
			return
		}
	}
}

// applyPopulationOverrides fills per-species spawn rules from config where
// the YAML template leaves them unset, and lets ops clamp the predator cap.
func applyPopulationOverrides(t *data.SpeciesTable, pop config.PopulationConfig) {
	t.Each(func(tmpl *data.SpeciesTemplate) {
		switch tmpl.Role {
		case "prey":
			if tmpl.MinCount == 0 && tmpl.MaxCount == 0 {
				tmpl.MinCount, tmpl.MaxCount = pop.PreyMin, pop.PreyMax
			}
			if tmpl.Chance == 0 {
				tmpl.Chance = 1
			}
		case "predator":
			if tmpl.Chance == 0 {
				tmpl.Chance = pop.PredatorChance
			}
			if tmpl.MinCount == 0 && tmpl.MaxCount == 0 {
				tmpl.MinCount, tmpl.MaxCount = 1, 1
			}
			if pop.PredatorCap > 0 && (tmpl.Cap == 0 || tmpl.Cap > pop.PredatorCap) {
				tmpl.Cap = pop.PredatorCap
			}
		}
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
