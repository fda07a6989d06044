package trainer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/flock/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.World.Animals = 10
	cfg.World.Foods = 15
	cfg.Simulation.GenerationLength = 20
	return cfg
}

func TestRunRecordsGenerations(t *testing.T) {
	dir := t.TempDir()
	tr, err := New(Options{Config: testConfig(), Seed: 1, OutputDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tr.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := len(tr.History()); got != 3 {
		t.Errorf("history has %d generations, want 3", got)
	}
	if got := tr.Sim().Generation(); got != 3 {
		t.Errorf("Generation = %d, want 3", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatalf("reading generations.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("generations.csv has %d lines, want header + 3", len(lines))
	}
	// generation_length 20 evolves on the 21st step
	if !strings.Contains(lines[1], tr.RunID()+",0,21,") {
		t.Errorf("first row = %q, want run id, generation 0 and 21 steps", lines[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	tr, err := New(Options{Config: testConfig(), Seed: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tr.Run(ctx, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := tr.Sim().Generation(); got != 0 {
		t.Errorf("cancelled run trained %d generations", got)
	}
}

func TestSameSeedSameHistory(t *testing.T) {
	run := func() []float64 {
		tr, err := New(Options{Config: testConfig(), Seed: 42})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := tr.Run(context.Background(), 2); err != nil {
			t.Fatalf("Run: %v", err)
		}
		var means []float64
		for _, s := range tr.History() {
			means = append(means, s.Mean)
		}
		return means
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("generation %d mean %v != %v", i, a[i], b[i])
		}
	}
}

func TestStepReportsBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.GenerationLength = 2
	tr, err := New(Options{Config: cfg, Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 2; i++ {
		if stats, err := tr.Step(); err != nil || stats != nil {
			t.Fatalf("step %d = (%v, %v), want no boundary", i, stats, err)
		}
	}
	stats, err := tr.Step()
	if err != nil || stats == nil {
		t.Fatalf("third step = (%v, %v), want statistics", stats, err)
	}
	if len(tr.History()) != 1 {
		t.Errorf("history = %d, want 1", len(tr.History()))
	}
}
