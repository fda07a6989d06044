// Package genetic implements a generic genetic algorithm over flat chromosomes.
//
// The engine knows nothing about networks or animals: anything that reports a
// fitness and a chromosome, and can be rebuilt from a chromosome, can evolve.
package genetic

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/rng"
)

var (
	// ErrEmptyPopulation is returned when evolving or selecting from no individuals.
	ErrEmptyPopulation = errors.New("empty population")
	// ErrLengthMismatch is returned when parent chromosomes differ in length.
	ErrLengthMismatch = errors.New("chromosome length mismatch")
	// ErrNegativeFitness is returned by proportional selection for fitness < 0.
	ErrNegativeFitness = errors.New("negative fitness")
)

// Chromosome is an ordered list of genes.
type Chromosome []float64

// Clone returns an independent copy.
func (c Chromosome) Clone() Chromosome {
	return append(Chromosome(nil), c...)
}

// Individual is anything the algorithm can evolve. Fitness must be >= 0, higher is better.
type Individual interface {
	Fitness() float64
	Chromosome() Chromosome
}

// SelectionMethod picks the index of one parent given every individual's fitness.
type SelectionMethod interface {
	Select(src rng.Source, fitness []float64) (int, error)
}

// CrossoverMethod combines two equal-length parents into a new child.
type CrossoverMethod interface {
	Crossover(src rng.Source, a, b Chromosome) (Chromosome, error)
}

// MutationMethod perturbs a child chromosome in place.
type MutationMethod interface {
	Mutate(src rng.Source, child Chromosome)
}

// GeneticAlgorithm evolves populations of I using pluggable strategies.
type GeneticAlgorithm[I Individual] struct {
	selection SelectionMethod
	crossover CrossoverMethod
	mutation  MutationMethod
}

// New creates a genetic algorithm from its three strategies.
func New[I Individual](selection SelectionMethod, crossover CrossoverMethod, mutation MutationMethod) *GeneticAlgorithm[I] {
	return &GeneticAlgorithm[I]{
		selection: selection,
		crossover: crossover,
		mutation:  mutation,
	}
}

// Evolve produces the next generation, one child per input individual, and the
// statistics of the outgoing population. Each child comes from two independently
// selected parents (possibly the same one), uniform crossover, then mutation, and
// is rebuilt with build.
func (ga *GeneticAlgorithm[I]) Evolve(src rng.Source, population []I, build func(Chromosome) (I, error)) ([]I, Statistics, error) {
	if len(population) == 0 {
		return nil, Statistics{}, ErrEmptyPopulation
	}

	fitness := make([]float64, len(population))
	for i, individual := range population {
		fitness[i] = individual.Fitness()
	}
	stats := NewStatistics(fitness)

	next := make([]I, 0, len(population))
	for range population {
		a, err := ga.selection.Select(src, fitness)
		if err != nil {
			return nil, stats, fmt.Errorf("selecting first parent: %w", err)
		}
		b, err := ga.selection.Select(src, fitness)
		if err != nil {
			return nil, stats, fmt.Errorf("selecting second parent: %w", err)
		}

		child, err := ga.crossover.Crossover(src, population[a].Chromosome(), population[b].Chromosome())
		if err != nil {
			return nil, stats, fmt.Errorf("crossing parents %d and %d: %w", a, b, err)
		}
		ga.mutation.Mutate(src, child)

		individual, err := build(child)
		if err != nil {
			return nil, stats, fmt.Errorf("building child: %w", err)
		}
		next = append(next, individual)
	}

	return next, stats, nil
}

// Statistics summarizes one population's fitness distribution.
type Statistics struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// NewStatistics computes statistics over fitness values. Empty input yields zeros.
func NewStatistics(fitness []float64) Statistics {
	if len(fitness) == 0 {
		return Statistics{}
	}
	mean, std := stat.PopMeanStdDev(fitness, nil)
	return Statistics{
		Min:    floats.Min(fitness),
		Max:    floats.Max(fitness),
		Mean:   mean,
		StdDev: std,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("std_dev", s.StdDev),
	)
}
