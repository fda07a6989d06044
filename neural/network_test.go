package neural

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	topology := Topology{3, 4, 2}

	nn, err := Random(rng, topology)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}

	if len(nn.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(nn.Layers))
	}
	if len(nn.Layers[0].Neurons) != 4 {
		t.Errorf("hidden layer has %d neurons, want 4", len(nn.Layers[0].Neurons))
	}
	if len(nn.Layers[1].Neurons[0].Weights) != 4 {
		t.Errorf("output neuron has %d weights, want 4", len(nn.Layers[1].Neurons[0].Weights))
	}

	for _, w := range nn.Weights() {
		if w < InitMin || w > InitMax {
			t.Errorf("parameter %v outside [%v, %v]", w, InitMin, InitMax)
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, _ := Random(rand.New(rand.NewSource(7)), Topology{2, 3, 1})
	b, _ := Random(rand.New(rand.NewSource(7)), Topology{2, 3, 1})

	wa, wb := a.Weights(), b.Weights()
	for i := range wa {
		if wa[i] != wb[i] {
			t.Fatalf("weight %d differs: %v vs %v", i, wa[i], wb[i])
		}
	}
}

func TestRandomRejectsBadTopology(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name     string
		topology Topology
	}{
		{"empty", Topology{}},
		{"single layer", Topology{3}},
		{"zero layer", Topology{3, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Random(rng, tt.topology); !errors.Is(err, ErrTopology) {
				t.Errorf("Random(%v) error = %v, want ErrTopology", tt.topology, err)
			}
		})
	}
}

func TestNeuronPropagate(t *testing.T) {
	n := Neuron{Bias: 0.5, Weights: []float64{-0.3, 0.8}}

	if got := n.propagate([]float64{-10, -10}); got != 0 {
		t.Errorf("negative sum should clamp to 0, got %v", got)
	}

	want := (-0.3 * 0.5) + (0.8 * 1.0) + 0.5
	if got := n.propagate([]float64{0.5, 1.0}); math.Abs(got-want) > 1e-12 {
		t.Errorf("propagate = %v, want %v", got, want)
	}
}

func TestLayerPropagate(t *testing.T) {
	l := Layer{Neurons: []Neuron{
		{Bias: 0.5, Weights: []float64{-0.3, 0.8}},
		{Bias: 0.2, Weights: []float64{0.2, -0.4}},
	}}

	got := l.propagate([]float64{-10, -10})
	want := []float64{0, 2.2}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("output %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPropagateShapeAndFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	topologies := []Topology{{1, 1}, {4, 8, 2}, {9, 18, 2}, {3, 5, 5, 3}}

	for _, topology := range topologies {
		nn, err := Random(rng, topology)
		if err != nil {
			t.Fatalf("Random(%v): %v", topology, err)
		}
		for trial := 0; trial < 50; trial++ {
			inputs := make([]float64, topology[0])
			for i := range inputs {
				inputs[i] = rng.Float64()*20 - 10
			}
			out := nn.Propagate(inputs)
			if len(out) != topology[len(topology)-1] {
				t.Fatalf("topology %v: got %d outputs", topology, len(out))
			}
			for _, v := range out {
				if v < 0 {
					t.Fatalf("topology %v: negative output %v", topology, v)
				}
			}
		}
	}
}

func TestPropagatePanicsOnInputMismatch(t *testing.T) {
	nn, _ := Random(rand.New(rand.NewSource(1)), Topology{3, 2})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched input length")
		}
	}()
	nn.Propagate([]float64{1, 2})
}

func TestPropagateWithCapture(t *testing.T) {
	nn, _ := Random(rand.New(rand.NewSource(5)), Topology{3, 4, 2})
	inputs := []float64{0.1, 0.5, 0.9}

	out, act := nn.PropagateWithCapture(inputs)
	plain := nn.Propagate(inputs)

	if len(act.Layers) != 2 {
		t.Fatalf("captured %d layers, want 2", len(act.Layers))
	}
	for i := range out {
		if out[i] != plain[i] || act.Layers[1][i] != plain[i] {
			t.Errorf("capture output %d differs from Propagate", i)
		}
	}
}

func TestWeightsOrder(t *testing.T) {
	nn := &Network{Layers: []Layer{
		{Neurons: []Neuron{
			{Bias: 0.1, Weights: []float64{0.2}},
			{Bias: 0.3, Weights: []float64{0.4}},
		}},
		{Neurons: []Neuron{
			{Bias: 0.5, Weights: []float64{0.6, 0.7}},
		}},
	}}

	want := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	got := nn.Weights()
	if len(got) != len(want) {
		t.Fatalf("got %d weights, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGenomeLen(t *testing.T) {
	tests := []struct {
		topology Topology
		want     int
	}{
		{Topology{1, 1}, 2},
		{Topology{2, 2, 1}, 9},
		{Topology{9, 18, 2}, 218},
	}
	for _, tt := range tests {
		if got := tt.topology.GenomeLen(); got != tt.want {
			t.Errorf("%v.GenomeLen() = %d, want %d", tt.topology, got, tt.want)
		}
	}
}

func TestWeightsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	topology := Topology{9, 18, 2}

	nn, _ := Random(rng, topology)
	weights := nn.Weights()
	if len(weights) != topology.GenomeLen() {
		t.Fatalf("Weights() length = %d, want %d", len(weights), topology.GenomeLen())
	}

	rebuilt, err := FromWeights(topology, weights)
	if err != nil {
		t.Fatalf("FromWeights: %v", err)
	}

	again := rebuilt.Weights()
	for i := range weights {
		if weights[i] != again[i] {
			t.Fatalf("weight %d changed in round trip: %v -> %v", i, weights[i], again[i])
		}
	}

	got := rebuilt.Topology()
	for i := range topology {
		if got[i] != topology[i] {
			t.Errorf("Topology()[%d] = %d, want %d", i, got[i], topology[i])
		}
	}
}

func TestFromWeightsLengthMismatch(t *testing.T) {
	topology := Topology{2, 3, 1}
	n := topology.GenomeLen()

	if _, err := FromWeights(topology, make([]float64, n-1)); !errors.Is(err, ErrTooFewWeights) {
		t.Errorf("short genome error = %v, want ErrTooFewWeights", err)
	}
	if _, err := FromWeights(topology, make([]float64, n+1)); !errors.Is(err, ErrTooManyWeights) {
		t.Errorf("long genome error = %v, want ErrTooManyWeights", err)
	}
	if _, err := FromWeights(topology, make([]float64, n)); err != nil {
		t.Errorf("exact genome: unexpected error %v", err)
	}
}

func BenchmarkPropagate(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	nn, _ := Random(rng, Topology{9, 18, 2})

	inputs := make([]float64, 9)
	for i := range inputs {
		inputs[i] = 0.5
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nn.Propagate(inputs)
	}
}
