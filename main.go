package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
	"github.com/pthm-cable/flock/trainer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	generations := flag.Int("generations", 0, "Stop after N generations (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Log generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	speed := flag.Int("speed", 1, "Simulation steps per frame in the viewer")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	t, err := trainer.New(trainer.Options{
		Config:    cfg,
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats || *headless,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}

	if *headless {
		os.Exit(runHeadless(t, rngSeed, *generations))
	}
	os.Exit(runViewer(t, cfg, *generations, *speed))
}

// runHeadless trains until the generation limit or an interrupt.
func runHeadless(t *trainer.Trainer, seed int64, generations int) int {
	defer t.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless simulation",
		"seed", seed,
		"run_id", t.RunID(),
		"generations", generations,
	)

	if err := t.Run(ctx, generations); err != nil {
		slog.Error("simulation failed", "error", err)
		return 1
	}
	slog.Info("simulation finished", "generations", t.Sim().Generation())
	return 0
}

// runViewer opens the window and drives the simulation from the render loop.
func runViewer(t *trainer.Trainer, cfg *config.Config, generations, speed int) int {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flock")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Escape clears the selection instead

	g := game.NewGameWithOptions(t, game.Options{Title: "Flock", Speed: speed})
	defer g.Unload()

	for !rl.WindowShouldClose() {
		if err := g.Update(); err != nil {
			slog.Error("simulation failed", "error", err)
			return 1
		}
		g.Draw()

		if generations > 0 && g.Generation() >= generations {
			break
		}
	}
	return 0
}
