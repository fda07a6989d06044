// Package neural provides the feedforward networks that drive animal brains
// and the vision model that feeds them.
package neural

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/flock/rng"
)

// Parameter initialization range for weights and biases.
const (
	InitMin = -1.0
	InitMax = 1.0
)

var (
	// ErrTopology is returned for topologies with fewer than two layers or an empty layer.
	ErrTopology = errors.New("invalid topology")
	// ErrTooFewWeights is returned when a genome runs out mid-reconstruction.
	ErrTooFewWeights = errors.New("not enough weights")
	// ErrTooManyWeights is returned when scalars remain after reconstruction.
	ErrTooManyWeights = errors.New("too many weights")
)

// Topology lists neuron counts per layer, input layer first.
type Topology []int

// Validate reports whether the topology can build a network.
func (t Topology) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrTopology, len(t))
	}
	for i, n := range t {
		if n < 1 {
			return fmt.Errorf("%w: layer %d has %d neurons", ErrTopology, i, n)
		}
	}
	return nil
}

// GenomeLen returns the number of parameters a network of this shape holds.
func (t Topology) GenomeLen() int {
	n := 0
	for i := 0; i+1 < len(t); i++ {
		n += (t[i] + 1) * t[i+1]
	}
	return n
}

// Neuron is a single rectified-linear unit.
type Neuron struct {
	Bias    float64
	Weights []float64
}

func (n *Neuron) propagate(inputs []float64) float64 {
	if len(inputs) != len(n.Weights) {
		panic(fmt.Sprintf("neural: neuron expects %d inputs, got %d", len(n.Weights), len(inputs)))
	}
	return max(0, n.Bias+floats.Dot(inputs, n.Weights))
}

// Layer maps an input vector to one output per neuron.
type Layer struct {
	Neurons []Neuron
}

func (l *Layer) propagate(inputs []float64) []float64 {
	out := make([]float64, len(l.Neurons))
	for i := range l.Neurons {
		out[i] = l.Neurons[i].propagate(inputs)
	}
	return out
}

// Network is a fixed-topology feedforward network.
// It is read-only once built; evolution replaces it wholesale.
type Network struct {
	Layers []Layer
}

// Random builds a network with every bias and weight drawn uniformly from [-1, 1].
// Draw order is layer, neuron, bias then weights.
func Random(src rng.Source, topology Topology) (*Network, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	nn := &Network{Layers: make([]Layer, len(topology)-1)}
	for i := range nn.Layers {
		in, out := topology[i], topology[i+1]
		layer := Layer{Neurons: make([]Neuron, out)}
		for j := range layer.Neurons {
			neuron := Neuron{
				Bias:    rng.Range(src, InitMin, InitMax),
				Weights: make([]float64, in),
			}
			for k := range neuron.Weights {
				neuron.Weights[k] = rng.Range(src, InitMin, InitMax)
			}
			layer.Neurons[j] = neuron
		}
		nn.Layers[i] = layer
	}
	return nn, nil
}

// FromWeights rebuilds a network from a flat parameter list produced by Weights.
func FromWeights(topology Topology, weights []float64) (*Network, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	nn := &Network{Layers: make([]Layer, len(topology)-1)}
	pos := 0
	next := func() (float64, error) {
		if pos >= len(weights) {
			return 0, fmt.Errorf("%w: topology needs %d, got %d", ErrTooFewWeights, topology.GenomeLen(), len(weights))
		}
		w := weights[pos]
		pos++
		return w, nil
	}

	for i := range nn.Layers {
		in, out := topology[i], topology[i+1]
		layer := Layer{Neurons: make([]Neuron, out)}
		for j := range layer.Neurons {
			bias, err := next()
			if err != nil {
				return nil, err
			}
			neuron := Neuron{Bias: bias, Weights: make([]float64, in)}
			for k := range neuron.Weights {
				if neuron.Weights[k], err = next(); err != nil {
					return nil, err
				}
			}
			layer.Neurons[j] = neuron
		}
		nn.Layers[i] = layer
	}

	if pos != len(weights) {
		return nil, fmt.Errorf("%w: topology needs %d, got %d", ErrTooManyWeights, pos, len(weights))
	}
	return nn, nil
}

// Propagate feeds inputs through every layer. ReLU is applied at every layer,
// including the output; callers interpret or clamp the outputs themselves.
// Panics if the input length does not match the first layer.
func (nn *Network) Propagate(inputs []float64) []float64 {
	for i := range nn.Layers {
		inputs = nn.Layers[i].propagate(inputs)
	}
	return inputs
}

// Activations holds captured intermediate layer values.
type Activations struct {
	Inputs []float64
	Layers [][]float64 // one entry per layer, output layer last
}

// PropagateWithCapture computes the network output and captures every layer's activations.
func (nn *Network) PropagateWithCapture(inputs []float64) ([]float64, *Activations) {
	act := &Activations{
		Inputs: append([]float64(nil), inputs...),
		Layers: make([][]float64, len(nn.Layers)),
	}
	for i := range nn.Layers {
		inputs = nn.Layers[i].propagate(inputs)
		act.Layers[i] = inputs
	}
	return inputs, act
}

// Weights flattens all parameters: per layer, per neuron, bias then weights.
func (nn *Network) Weights() []float64 {
	out := make([]float64, 0, nn.Topology().GenomeLen())
	for _, layer := range nn.Layers {
		for _, neuron := range layer.Neurons {
			out = append(out, neuron.Bias)
			out = append(out, neuron.Weights...)
		}
	}
	return out
}

// Topology reconstructs the shape of the network.
func (nn *Network) Topology() Topology {
	if len(nn.Layers) == 0 {
		return nil
	}
	t := make(Topology, 0, len(nn.Layers)+1)
	first := nn.Layers[0].Neurons
	if len(first) > 0 {
		t = append(t, len(first[0].Weights))
	} else {
		t = append(t, 0)
	}
	for _, layer := range nn.Layers {
		t = append(t, len(layer.Neurons))
	}
	return t
}
