// Package inspector shows the state, vision and brain of one selected animal.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/ui"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelHeight  = 420
	HeaderHeight = 26
)

// Inspector tracks the selected animal slot and draws its panel.
// Slots are indexes into sim.World.Animals; a slot keeps pointing at the same
// position in the population across generations.
type Inspector struct {
	renderer *ui.Renderer
	selected int
	active   bool
	panel    ui.Rect
}

// NewInspector creates an inspector whose panel sits at the screen's right edge.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		renderer: ui.NewRenderer(),
		panel:    ui.Rect{X: screenWidth - PanelWidth - 10, Y: 10, Width: PanelWidth, Height: PanelHeight},
	}
}

// Resize keeps the panel at the right edge of a resized screen.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panel.X = screenWidth - PanelWidth - 10
}

// Select picks the animal nearest to a world point. Clicking empty space deselects.
func (ins *Inspector) Select(animals []sim.Animal, at neural.Point, radius float64) {
	ins.selected, ins.active = sim.NearestAnimal(animals, at, radius)
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.active = false
}

// Selected returns the selected slot.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.active
}

// Bounds returns the panel rectangle.
func (ins *Inspector) Bounds() ui.Rect {
	return ins.panel
}

// Draw renders the panel for the selected animal. Nothing is drawn without a selection.
func (ins *Inspector) Draw(animals []sim.Animal, foods []sim.Food, speedMax float64) {
	if !ins.active || ins.selected >= len(animals) {
		return
	}
	a := animals[ins.selected]
	r := ins.renderer
	p := ins.panel
	pad := r.Theme.Padding

	r.DrawPanel(p.X, p.Y, p.Width, p.Height)
	rl.DrawRectangle(p.X, p.Y, p.Width, HeaderHeight, r.Theme.PanelBorder)
	rl.DrawText(fmt.Sprintf("Animal #%d", ins.selected), p.X+pad, p.Y+6, 16, rl.White)

	x := p.X + pad
	width := p.Width - 2*pad
	y := p.Y + HeaderHeight + pad

	y = r.DrawLabelValue(x, y, "Satiation", fmt.Sprintf("%d", a.Satiation))
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%.3f, %.3f)", a.Position.X, a.Position.Y))
	y = r.DrawLabelValue(x, y, "Heading", fmt.Sprintf("%.0f°", neural.NormalizeAngle(a.Heading)*180/math.Pi))
	y = r.DrawBar(x, y, "Speed", a.Speed, speedMax, width)

	points := make([]neural.Point, len(foods))
	for i, f := range foods {
		points[i] = f.Position
	}
	vision := a.Eye.ProcessVision(a.Position, a.Heading, points)
	y = r.DrawColumns(x, y, "Vision", vision, width, 40)

	if a.Brain == nil {
		return
	}
	_, act := a.Brain.PropagateWithCapture(vision)
	y = r.DrawSectionHeader(x, y, "Brain")
	DrawNetworkDiagram(x+50, y, width-50, p.Y+p.Height-y-pad, a.Brain, act)
}
