package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"github.com/pthm-cable/flock/systems"
)

// Phases lists the simulation step phases in the order they run.
var Phases = []string{
	systems.PhaseCollision,
	systems.PhaseBrains,
	systems.PhaseMovement,
	systems.PhaseEvolve,
}

// stepSample holds timing data for a single simulation step.
type stepSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector tracks step timings over a rolling window.
// It implements sim.PhaseTimer.
type PerfCollector struct {
	window []stepSample
	next   int
	filled int

	current    map[string]time.Duration
	stepStart  time.Time
	phaseStart time.Time
	phase      string

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over the last windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 600
	}
	return &PerfCollector{
		window:  make([]stepSample, windowSize),
		current: make(map[string]time.Duration),
		now:     time.Now,
	}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.stepStart = p.now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndTick closes the step and records it in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = ""

	p.window[p.next] = stepSample{total: now.Sub(p.stepStart), phases: p.current}
	p.next = (p.next + 1) % len(p.window)
	p.filled = min(p.filled+1, len(p.window))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats holds aggregated step timings.
type PerfStats struct {
	Steps int // samples in the window

	AvgStep time.Duration
	MinStep time.Duration
	MaxStep time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average step, 0-100

	StepsPerSecond float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Steps:    p.filled,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i, s := range p.window[:p.filled] {
		total += s.total
		if i == 0 || s.total < stats.MinStep {
			stats.MinStep = s.total
		}
		stats.MaxStep = max(stats.MaxStep, s.total)
		for phase, d := range s.phases {
			phaseSum[phase] += d
		}
	}

	n := time.Duration(p.filled)
	stats.AvgStep = total / n
	for phase, sum := range phaseSum {
		stats.PhaseAvg[phase] = sum / n
		if stats.AvgStep > 0 {
			stats.PhasePct[phase] = float64(sum/n) / float64(stats.AvgStep) * 100
		}
	}
	if stats.AvgStep > 0 {
		stats.StepsPerSecond = float64(time.Second) / float64(stats.AvgStep)
	}
	return stats
}

// SortedPhases returns phase names sorted by average duration, slowest first.
func (s PerfStats) SortedPhases() []string {
	names := make([]string, 0, len(s.PhaseAvg))
	for name := range s.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.PhaseAvg[names[i]] == s.PhaseAvg[names[j]] {
			return names[i] < names[j]
		}
		return s.PhaseAvg[names[i]] > s.PhaseAvg[names[j]]
	})
	return names
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("min_step_us", s.MinStep.Microseconds()),
		slog.Int64("max_step_us", s.MaxStep.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Generation   int     `csv:"generation"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	CollisionPct float64 `csv:"collision_pct"`
	BrainsPct    float64 `csv:"brains_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	EvolvePct    float64 `csv:"evolve_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:   generation,
		AvgStepUS:    s.AvgStep.Microseconds(),
		MinStepUS:    s.MinStep.Microseconds(),
		MaxStepUS:    s.MaxStep.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		CollisionPct: s.PhasePct[systems.PhaseCollision],
		BrainsPct:    s.PhasePct[systems.PhaseBrains],
		MovementPct:  s.PhasePct[systems.PhaseMovement],
		EvolvePct:    s.PhasePct[systems.PhaseEvolve],
	}
}
