package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/flock/systems"
)

// fakeClock advances by a fixed amount per reading.
type fakeClock struct {
	t    time.Time
	step []time.Duration
	i    int
}

func (c *fakeClock) now() time.Time {
	if len(c.step) > 0 {
		c.t = c.t.Add(c.step[c.i%len(c.step)])
		c.i++
	}
	return c.t
}

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	// StartTick, StartPhase(collision), StartPhase(brains), EndTick
	clock := &fakeClock{step: []time.Duration{0, 0, 100 * time.Microsecond, 300 * time.Microsecond}}
	pc.now = clock.now

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseCollision)
		pc.StartPhase(systems.PhaseBrains)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Steps != 4 {
		t.Fatalf("Steps = %d, want 4", stats.Steps)
	}
	if stats.AvgStep != 400*time.Microsecond {
		t.Errorf("AvgStep = %v, want 400µs", stats.AvgStep)
	}
	if got := stats.PhaseAvg[systems.PhaseBrains]; got != 300*time.Microsecond {
		t.Errorf("brains avg = %v, want 300µs", got)
	}
	if got := stats.PhasePct[systems.PhaseCollision]; math.Abs(got-25) > 1e-9 {
		t.Errorf("collision pct = %v, want 25", got)
	}
	if math.Abs(stats.StepsPerSecond-2500) > 1e-6 {
		t.Errorf("StepsPerSecond = %v, want 2500", stats.StepsPerSecond)
	}

	order := stats.SortedPhases()
	if len(order) != 2 || order[0] != systems.PhaseBrains {
		t.Errorf("SortedPhases = %v, want brains first", order)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)
	durations := []time.Duration{1, 1, 1, 5, 5, 5}
	var clock time.Time
	pc.now = func() time.Time { return clock }

	for _, d := range durations {
		pc.StartTick()
		clock = clock.Add(d * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Steps != 3 {
		t.Errorf("Steps = %d, want window size 3", stats.Steps)
	}
	if stats.MinStep != 5*time.Millisecond || stats.MaxStep != 5*time.Millisecond {
		t.Errorf("window should only hold the last 3 steps, got min %v max %v", stats.MinStep, stats.MaxStep)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgStep != 0 || stats.Steps != 0 {
		t.Error("expected zero stats for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgStep:  2 * time.Millisecond,
		PhasePct: map[string]float64{systems.PhaseBrains: 80, systems.PhaseMovement: 5},
	}
	row := stats.ToCSV(7)
	if row.Generation != 7 || row.AvgStepUS != 2000 || row.BrainsPct != 80 || row.MovementPct != 5 {
		t.Errorf("ToCSV = %+v", row)
	}
}
