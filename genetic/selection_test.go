package genetic

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/flock/rng"
)

func TestRouletteWheelSelectionCumulative(t *testing.T) {
	fitness := []float64{1, 2, 3, 4}
	tests := []struct {
		draw float64
		want int
	}{
		{0.05, 0},
		{0.1, 1}, // draw 1.0 does not exceed the first bucket
		{0.15, 1},
		{0.35, 2},
		{0.95, 3},
	}

	for _, tt := range tests {
		seq := &rng.Sequence{Values: []float64{tt.draw}}
		got, err := RouletteWheelSelection{}.Select(seq, fitness)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if got != tt.want {
			t.Errorf("draw %v: got index %d, want %d", tt.draw, got, tt.want)
		}
	}
}

func TestRouletteWheelSelectionSkipsZeroFitness(t *testing.T) {
	fitness := []float64{0, 5, 0}
	for _, draw := range []float64{0, 0.3, 0.999} {
		seq := &rng.Sequence{Values: []float64{draw}}
		got, _ := RouletteWheelSelection{}.Select(seq, fitness)
		if got != 1 {
			t.Errorf("draw %v: got %d, want 1", draw, got)
		}
	}
}

func TestRouletteWheelSelectionAllZeroFallsBackToUniform(t *testing.T) {
	fitness := []float64{0, 0, 0, 0}

	seq := &rng.Sequence{Values: []float64{0.6}}
	got, err := RouletteWheelSelection{}.Select(seq, fitness)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	src := rand.New(rand.NewSource(9))
	counts := make([]float64, len(fitness))
	const draws = 8000
	for i := 0; i < draws; i++ {
		idx, _ := RouletteWheelSelection{}.Select(src, fitness)
		counts[idx]++
	}
	for i, c := range counts {
		if c < float64(draws)/float64(len(fitness))*0.8 {
			t.Errorf("index %d picked only %v times out of %d", i, c, draws)
		}
	}
}

func TestRouletteWheelSelectionErrors(t *testing.T) {
	src := rand.New(rand.NewSource(1))

	if _, err := (RouletteWheelSelection{}).Select(src, nil); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("empty population error = %v", err)
	}
	if _, err := (RouletteWheelSelection{}).Select(src, []float64{1, -1}); !errors.Is(err, ErrNegativeFitness) {
		t.Errorf("negative fitness error = %v", err)
	}
}

// With equal fitness, long-run selection frequencies should pass a chi-square
// goodness-of-fit test against the uniform distribution.
func TestRouletteWheelSelectionEqualFitnessIsUniform(t *testing.T) {
	const n = 10
	const draws = 50000
	src := rand.New(rand.NewSource(42))

	fitness := make([]float64, n)
	for i := range fitness {
		fitness[i] = 3
	}

	observed := make([]float64, n)
	expected := make([]float64, n)
	for i := range expected {
		expected[i] = draws / n
	}
	for i := 0; i < draws; i++ {
		idx, err := RouletteWheelSelection{}.Select(src, fitness)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		observed[idx]++
	}

	chi2 := stat.ChiSquare(observed, expected)
	critical := distuv.ChiSquared{K: n - 1}.Quantile(0.999)
	if chi2 > critical {
		t.Errorf("chi-square %v exceeds critical value %v; counts %v", chi2, critical, observed)
	}
}

func TestRouletteWheelSelectionProportional(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	fitness := []float64{2, 1, 4, 3}

	counts := make([]float64, len(fitness))
	const draws = 100000
	for i := 0; i < draws; i++ {
		idx, _ := RouletteWheelSelection{}.Select(src, fitness)
		counts[idx]++
	}

	for i, f := range fitness {
		want := f / 10
		got := counts[i] / draws
		if got < want-0.01 || got > want+0.01 {
			t.Errorf("index %d: frequency %.3f, want %.3f", i, got, want)
		}
	}
}

func TestTournamentSelectionPrefersFitter(t *testing.T) {
	src := rand.New(rand.NewSource(3))
	fitness := []float64{1, 10, 2, 3}
	sel := TournamentSelection{Size: 4}

	counts := make([]int, len(fitness))
	for i := 0; i < 1000; i++ {
		idx, err := sel.Select(src, fitness)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		counts[idx]++
	}
	if counts[1] < 600 {
		t.Errorf("fittest picked %d/1000 times, expected a strong majority", counts[1])
	}
	if _, err := sel.Select(src, nil); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("empty population error = %v", err)
	}
}

func TestSelectionByName(t *testing.T) {
	sel, err := SelectionByName("roulette", 0)
	if err != nil {
		t.Fatalf("roulette: %v", err)
	}
	if _, ok := sel.(RouletteWheelSelection); !ok {
		t.Errorf("roulette resolved to %T", sel)
	}

	sel, err = SelectionByName("tournament", 5)
	if err != nil {
		t.Fatalf("tournament: %v", err)
	}
	if ts, ok := sel.(TournamentSelection); !ok || ts.Size != 5 {
		t.Errorf("tournament resolved to %#v", sel)
	}

	if _, err := SelectionByName("nope", 0); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("unknown name error = %v", err)
	}
}
