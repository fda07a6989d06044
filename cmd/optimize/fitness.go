package main

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/rng"
	"github.com/pthm-cable/flock/sim"
)

// FitnessEvaluator runs headless simulations and scores parameter vectors.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// Evaluate computes fitness for a raw parameter vector (lower = better): the
// negated mean food eaten in the last generation, averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Seeds run concurrently; each owns its source and simulation.
	p := pool.NewWithResults[float64]().WithErrors()
	for _, seed := range fe.seeds {
		p.Go(func() (float64, error) {
			return fe.runSimulation(cfg, seed)
		})
	}
	means, err := p.Wait()
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, m := range means {
		total += m
	}
	return -total / float64(len(means)), nil
}

// runSimulation trains one seed and returns the mean fitness of its last generation.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (float64, error) {
	src := rng.New(seed)
	s, err := sim.New(src, cfg)
	if err != nil {
		return 0, err
	}

	var mean float64
	for g := 0; g < fe.generations; g++ {
		stats, err := s.Train(src)
		if err != nil {
			return 0, fmt.Errorf("seed %d generation %d: %w", seed, g, err)
		}
		mean = stats.Mean
	}
	return mean, nil
}
