package genetic

import (
	"fmt"

	"github.com/pthm-cable/flock/rng"
)

// UniformCrossover copies each gene from either parent with equal probability.
type UniformCrossover struct{}

func (UniformCrossover) Crossover(src rng.Source, a, b Chromosome) (Chromosome, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}

	child := make(Chromosome, len(a))
	for i := range child {
		if rng.Bool(src) {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child, nil
}
