// Package trainer drives a simulation run: it owns the random source, steps
// the simulation and records every finished generation to telemetry.
package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
	"github.com/pthm-cable/flock/rng"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
)

// Options configures a training run.
type Options struct {
	Config    *config.Config
	Seed      int64
	OutputDir string       // empty disables CSV output
	LogStats  bool         // log every generation at Info
	Logger    *slog.Logger // nil = slog.Default()
}

// Trainer runs one simulation and records its generations.
type Trainer struct {
	cfg    *config.Config
	src    *rand.Rand
	sim    *sim.Simulation
	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager
	runID  string

	logger   *slog.Logger
	logStats bool

	history  []genetic.Statistics
	steps    int
	genStart time.Time
	now      func() time.Time
}

// New creates a trainer and its simulation.
func New(opts Options) (*Trainer, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runID := telemetry.NewRunID()
	output, err := telemetry.NewOutputManager(opts.OutputDir, runID)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	src := rng.New(opts.Seed)
	s, err := sim.New(src, cfg, sim.WithLogger(logger), sim.WithPerf(perf))
	if err != nil {
		output.Close()
		return nil, err
	}

	return &Trainer{
		cfg:      cfg,
		src:      src,
		sim:      s,
		perf:     perf,
		output:   output,
		runID:    runID,
		logger:   logger,
		logStats: opts.LogStats,
		genStart: time.Now(),
		now:      time.Now,
	}, nil
}

// Step advances the simulation by one step. At a generation boundary the
// outgoing generation is recorded and its statistics returned.
func (t *Trainer) Step() (*genetic.Statistics, error) {
	stats, err := t.sim.Step(t.src)
	if err != nil {
		return nil, err
	}
	t.steps++
	if stats != nil {
		if err := t.record(*stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// Train fast-forwards to the end of the current generation.
func (t *Trainer) Train() (genetic.Statistics, error) {
	for {
		stats, err := t.Step()
		if err != nil {
			return genetic.Statistics{}, err
		}
		if stats != nil {
			return *stats, nil
		}
	}
}

// Run trains generations until n have finished (n <= 0 means no limit) or
// ctx is cancelled. Cancellation is checked between generations.
func (t *Trainer) Run(ctx context.Context, n int) error {
	for done := 0; n <= 0 || done < n; done++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if _, err := t.Train(); err != nil {
			return err
		}
	}
	return nil
}

// record writes a finished generation to history, CSV and the log.
func (t *Trainer) record(stats genetic.Statistics) error {
	now := t.now()
	generation := t.sim.Generation() - 1
	row := telemetry.NewGenerationStats(t.runID, generation, t.steps, stats, t.sim.LastFitness(), now.Sub(t.genStart))

	t.history = append(t.history, stats)
	t.steps = 0
	t.genStart = now

	if t.logStats {
		t.logger.Info("generation", "stats", row, "perf", t.perf.Stats())
	}
	if err := t.output.WriteGeneration(row); err != nil {
		return err
	}
	return t.output.WritePerf(t.perf.Stats(), generation)
}

// Sim returns the simulation being trained.
func (t *Trainer) Sim() *sim.Simulation { return t.sim }

// Source returns the run's random source.
func (t *Trainer) Source() rng.Source { return t.src }

// History returns the statistics of every finished generation, oldest first.
func (t *Trainer) History() []genetic.Statistics { return t.history }

// Perf returns the step timing collector.
func (t *Trainer) Perf() *telemetry.PerfCollector { return t.perf }

// RunID returns the identifier tagging this run's output.
func (t *Trainer) RunID() string { return t.runID }

// Close flushes and closes telemetry output.
func (t *Trainer) Close() error {
	return t.output.Close()
}
