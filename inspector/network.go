package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/neural"
)

// OutputLabels names the brain outputs.
var OutputLabels = []string{"Speed", "Turn"}

// NetworkColors for activation visualization.
var (
	ColorNodeBorder   = rl.Color{R: 100, G: 100, B: 100, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// layerNodes spreads n nodes evenly down a column.
func layerNodes(n int, x, top, height float32) []rl.Vector2 {
	nodes := make([]rl.Vector2, n)
	spacing := height / float32(n)
	for i := range nodes {
		nodes[i] = rl.Vector2{X: x, Y: top + spacing*(float32(i)+0.5)}
	}
	return nodes
}

// DrawNetworkDiagram renders a network column by column with captured activations.
func DrawNetworkDiagram(x, y, width, height int32, nn *neural.Network, act *neural.Activations) {
	if nn == nil || act == nil {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	topology := nn.Topology()
	colWidth := float32(width) / float32(len(topology))
	nodeRadius := min(float32(6), float32(height)/float32(2*maxInt(topology)+2))

	columns := make([][]rl.Vector2, len(topology))
	for i, n := range topology {
		columns[i] = layerNodes(n, float32(x)+colWidth*(float32(i)+0.5), float32(y), float32(height))
	}

	for l, layer := range nn.Layers {
		for j, neuron := range layer.Neurons {
			for k, w := range neuron.Weights {
				if math.Abs(w) < 0.1 {
					continue
				}
				drawEdge(columns[l][k], columns[l+1][j], w)
			}
		}
	}

	for i, node := range columns[0] {
		drawNode(node, nodeRadius, valueAt(act.Inputs, i))
	}
	for l, values := range act.Layers {
		for i, node := range columns[l+1] {
			drawNode(node, nodeRadius, valueAt(values, i))
		}
	}

	out := columns[len(columns)-1]
	outputs := act.Layers[len(act.Layers)-1]
	for i, node := range out {
		label := fmt.Sprintf("%.2f", valueAt(outputs, i))
		if i < len(OutputLabels) {
			label = OutputLabels[i] + " " + label
		}
		rl.DrawText(label, int32(node.X-nodeRadius)-rl.MeasureText(label, 10)-4, int32(node.Y)-5, 10, ColorLabelDim)
	}
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func maxInt(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius float32, activation float64) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, ColorNodeBorder)
}

// drawEdge renders a connection between nodes.
func drawEdge(from, to rl.Vector2, weight float64) {
	thickness := float32(min(max(math.Abs(weight)*1.5, 0.5), 3))

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(40+int(math.Abs(weight)*40), 150))

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor maps a ReLU activation to gray (0) through red (>= 1).
func activationColor(activation float64) rl.Color {
	t := min(max(activation, 0), 1)
	return rl.Color{
		R: uint8(60 + t*195),
		G: uint8(60 - t*30),
		B: uint8(60 - t*30),
		A: 255,
	}
}
