package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"github.com/pthm-cable/flock/genetic"
)

// GenerationStats is one row of generations.csv.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`
	Steps      int    `csv:"steps"` // steps simulated in this generation

	// Fitness distribution of the outgoing population
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"std_dev"`
	P10    float64 `csv:"p10"`
	P50    float64 `csv:"p50"`
	P90    float64 `csv:"p90"`

	WallMS int64 `csv:"wall_ms"` // wall-clock time spent on the generation
}

// NewGenerationStats builds a record from the algorithm's statistics and the
// raw fitness values they were computed from.
func NewGenerationStats(runID string, generation, steps int, stats genetic.Statistics, fitness []float64, wall time.Duration) GenerationStats {
	p10, p50, p90 := ComputeFitnessPercentiles(fitness)
	return GenerationStats{
		RunID:      runID,
		Generation: generation,
		Steps:      steps,
		Min:        stats.Min,
		Max:        stats.Max,
		Mean:       stats.Mean,
		StdDev:     stats.StdDev,
		P10:        p10,
		P50:        p50,
		P90:        p90,
		WallMS:     wall.Milliseconds(),
	}
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessPercentiles returns the 10th, 50th and 90th percentiles of
// unsorted fitness values. The input is not modified.
func ComputeFitnessPercentiles(values []float64) (p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("generation", s.Generation),
		slog.Int("steps", s.Steps),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("std_dev", s.StdDev),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Int64("wall_ms", s.WallMS),
	)
}
