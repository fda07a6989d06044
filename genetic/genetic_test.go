package genetic

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flock/rng"
)

// testIndividual scores a chromosome by the sum of its positive genes.
type testIndividual struct {
	chromosome Chromosome
}

func (ti *testIndividual) Fitness() float64 {
	var f float64
	for _, g := range ti.chromosome {
		f += math.Max(0, g)
	}
	return f
}

func (ti *testIndividual) Chromosome() Chromosome {
	return ti.chromosome
}

func buildTestIndividual(c Chromosome) (*testIndividual, error) {
	return &testIndividual{chromosome: c}, nil
}

func randomPopulation(src *rand.Rand, size, genes int) []*testIndividual {
	pop := make([]*testIndividual, size)
	for i := range pop {
		c := make(Chromosome, genes)
		for j := range c {
			c[j] = src.Float64()
		}
		pop[i] = &testIndividual{chromosome: c}
	}
	return pop
}

func newTestGA() *GeneticAlgorithm[*testIndividual] {
	return New[*testIndividual](
		RouletteWheelSelection{},
		UniformCrossover{},
		GaussianMutation{Chance: 0.1, Coeff: 0.1},
	)
}

func TestEvolvePreservesPopulationSize(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	ga := newTestGA()

	for _, size := range []int{1, 2, 5, 40} {
		pop := randomPopulation(src, size, 8)
		next, _, err := ga.Evolve(src, pop, buildTestIndividual)
		if err != nil {
			t.Fatalf("size %d: Evolve: %v", size, err)
		}
		if len(next) != size {
			t.Errorf("size %d: got %d children", size, len(next))
		}
		for i, child := range next {
			if len(child.Chromosome()) != 8 {
				t.Errorf("size %d: child %d has %d genes", size, i, len(child.Chromosome()))
			}
		}
	}
}

func TestEvolveStatisticsDescribeOutgoingPopulation(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	pop := []*testIndividual{
		{chromosome: Chromosome{1}},
		{chromosome: Chromosome{2}},
		{chromosome: Chromosome{3}},
	}

	_, stats, err := newTestGA().Evolve(src, pop, buildTestIndividual)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if stats.Min != 1 || stats.Max != 3 || stats.Mean != 2 {
		t.Errorf("stats = %+v, want min 1 max 3 mean 2", stats)
	}
	if math.Abs(stats.StdDev-math.Sqrt(2.0/3.0)) > 1e-12 {
		t.Errorf("std dev = %v", stats.StdDev)
	}
}

func TestEvolveImprovesFitness(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	ga := newTestGA()
	pop := randomPopulation(src, 50, 10)

	var first, last Statistics
	for gen := 0; gen < 40; gen++ {
		next, stats, err := ga.Evolve(src, pop, buildTestIndividual)
		if err != nil {
			t.Fatalf("generation %d: %v", gen, err)
		}
		if gen == 0 {
			first = stats
		}
		last = stats
		pop = next
	}

	if last.Mean <= first.Mean {
		t.Errorf("mean fitness did not improve: %v -> %v", first.Mean, last.Mean)
	}
}

func TestEvolveErrors(t *testing.T) {
	ga := newTestGA()

	if _, _, err := ga.Evolve(rand.New(rand.NewSource(1)), nil, buildTestIndividual); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("empty population error = %v", err)
	}

	mismatched := []*testIndividual{
		{chromosome: Chromosome{1, 1}},
		{chromosome: Chromosome{1, 1, 1}},
	}
	// Total fitness is 5; draws of 0.1 and 0.9 pick index 0 then index 1.
	seq := &rng.Sequence{Values: []float64{0.1, 0.9}}
	if _, _, err := ga.Evolve(seq, mismatched, buildTestIndividual); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatched parents error = %v", err)
	}

	boom := errors.New("boom")
	failing := func(Chromosome) (*testIndividual, error) { return nil, boom }
	pop := randomPopulation(rand.New(rand.NewSource(2)), 3, 4)
	if _, _, err := ga.Evolve(rand.New(rand.NewSource(3)), pop, failing); !errors.Is(err, boom) {
		t.Errorf("build error = %v", err)
	}
}

func TestNewStatisticsEmpty(t *testing.T) {
	if got := NewStatistics(nil); got != (Statistics{}) {
		t.Errorf("NewStatistics(nil) = %+v", got)
	}
}
