package genetic

import (
	"fmt"

	"github.com/pthm-cable/flock/rng"
)

// RouletteWheelSelection picks an index with probability proportional to its fitness.
// When every fitness is zero it falls back to a uniform pick.
type RouletteWheelSelection struct{}

func (RouletteWheelSelection) Name() string {
	return "roulette"
}

func (RouletteWheelSelection) Select(src rng.Source, fitness []float64) (int, error) {
	if len(fitness) == 0 {
		return 0, ErrEmptyPopulation
	}

	var total float64
	for i, f := range fitness {
		if f < 0 {
			return 0, fmt.Errorf("%w: individual %d has %v", ErrNegativeFitness, i, f)
		}
		total += f
	}

	if total == 0 {
		return rng.Intn(src, len(fitness)), nil
	}

	draw := src.Float64() * total
	var cumulative float64
	last := 0
	for i, f := range fitness {
		if f == 0 {
			continue
		}
		cumulative += f
		if cumulative > draw {
			return i, nil
		}
		last = i
	}
	// Rounding can leave draw == total; the last weighted individual owns that edge.
	return last, nil
}

// TournamentSelection samples Size individuals uniformly and keeps the fittest.
type TournamentSelection struct {
	Size int
}

func (TournamentSelection) Name() string {
	return "tournament"
}

func (s TournamentSelection) Select(src rng.Source, fitness []float64) (int, error) {
	if len(fitness) == 0 {
		return 0, ErrEmptyPopulation
	}

	size := s.Size
	if size <= 0 {
		size = 3
	}

	best := rng.Intn(src, len(fitness))
	for i := 1; i < size; i++ {
		candidate := rng.Intn(src, len(fitness))
		if fitness[candidate] > fitness[best] {
			best = candidate
		}
	}
	return best, nil
}
