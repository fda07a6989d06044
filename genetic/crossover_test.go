package genetic

import (
	"errors"
	"math/rand"
	"testing"
)

func TestUniformCrossover(t *testing.T) {
	src := rand.New(rand.NewSource(42))

	a := make(Chromosome, 100)
	b := make(Chromosome, 100)
	for i := range a {
		a[i] = float64(i)
		b[i] = -float64(i) - 1
	}

	child, err := UniformCrossover{}.Crossover(src, a, b)
	if err != nil {
		t.Fatalf("Crossover: %v", err)
	}
	if len(child) != len(a) {
		t.Fatalf("child length %d, want %d", len(child), len(a))
	}

	fromA, fromB := 0, 0
	for i, g := range child {
		switch g {
		case a[i]:
			fromA++
		case b[i]:
			fromB++
		default:
			t.Errorf("gene %d = %v is neither parent's (%v, %v)", i, g, a[i], b[i])
		}
	}
	if fromA < 30 || fromB < 30 {
		t.Errorf("expected a roughly even mix, got %d from a and %d from b", fromA, fromB)
	}

	// Child must not alias either parent.
	child[0] = 12345
	if a[0] == 12345 || b[0] == 12345 {
		t.Error("child aliases a parent")
	}
}

func TestUniformCrossoverLengthMismatch(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	_, err := UniformCrossover{}.Crossover(src, Chromosome{1, 2}, Chromosome{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
}
