package rng

import "testing"

func TestRange(t *testing.T) {
	seq := &Sequence{Values: []float64{0, 0.5, 0.999999}}

	if got := Range(seq, -1, 1); got != -1 {
		t.Errorf("Range(0) = %v, want -1", got)
	}
	if got := Range(seq, -1, 1); got != 0 {
		t.Errorf("Range(0.5) = %v, want 0", got)
	}
	if got := Range(seq, -1, 1); got > 1 || got < 0.99 {
		t.Errorf("Range(~1) = %v, want close to 1", got)
	}
}

func TestIntnStaysInBounds(t *testing.T) {
	src := New(7)
	for i := 0; i < 10000; i++ {
		v := Intn(src, 5)
		if v < 0 || v >= 5 {
			t.Fatalf("Intn out of range: %d", v)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	seq := &Sequence{Values: []float64{0.1, 0.2}}
	want := []float64{0.1, 0.2, 0.1}
	for i, w := range want {
		if got := seq.Float64(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
	if seq.Draws() != 3 {
		t.Errorf("Draws() = %d, want 3", seq.Draws())
	}
}

func TestBool(t *testing.T) {
	seq := &Sequence{Values: []float64{0.25, 0.75}}
	if !Bool(seq) {
		t.Error("Bool(0.25) should be true")
	}
	if Bool(seq) {
		t.Error("Bool(0.75) should be false")
	}
}
