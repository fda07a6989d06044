package genetic

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/flock/rng"
)

// ErrMutationParams is returned for out-of-range mutation parameters.
var ErrMutationParams = errors.New("invalid mutation parameters")

// GaussianMutation nudges each gene, with probability Chance, by a signed amount
// whose magnitude is uniform in [0, Coeff].
type GaussianMutation struct {
	Chance float64 // per-gene probability, [0, 1]
	Coeff  float64 // max perturbation magnitude, >= 0
}

// NewGaussianMutation validates and returns a mutation strategy.
func NewGaussianMutation(chance, coeff float64) (GaussianMutation, error) {
	if chance < 0 || chance > 1 {
		return GaussianMutation{}, fmt.Errorf("%w: chance %v not in [0, 1]", ErrMutationParams, chance)
	}
	if coeff < 0 {
		return GaussianMutation{}, fmt.Errorf("%w: coeff %v < 0", ErrMutationParams, coeff)
	}
	return GaussianMutation{Chance: chance, Coeff: coeff}, nil
}

func (m GaussianMutation) Mutate(src rng.Source, child Chromosome) {
	for i := range child {
		if src.Float64() >= m.Chance {
			continue
		}
		sign := 1.0
		if rng.Bool(src) {
			sign = -1.0
		}
		child[i] += sign * m.Coeff * src.Float64()
	}
}
