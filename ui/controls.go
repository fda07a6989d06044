package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the most simulation steps the viewer runs per frame.
const MaxSpeed = 50

// ControlActions reports what the user did with the controls this frame.
type ControlActions struct {
	Train       bool // fast-forward to the end of the generation
	TogglePause bool
	Speed       int // steps per frame, 1..MaxSpeed
}

// ControlsPanel renders the Train / Pause buttons and the speed slider.
type ControlsPanel struct {
	renderer *Renderer
	bounds   Rect
}

// NewControlsPanel creates a controls panel anchored at x, y.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	r := NewRenderer()
	return &ControlsPanel{
		renderer: r,
		bounds:   Rect{X: x, Y: y, Width: width, Height: 3*r.Theme.Padding + 2*24},
	}
}

// Bounds returns the panel's screen rectangle, so clicks on it can be ignored by the world.
func (c *ControlsPanel) Bounds() Rect {
	return c.bounds
}

// Draw renders the controls and returns the resulting actions.
func (c *ControlsPanel) Draw(paused bool, speed int) ControlActions {
	r := c.renderer
	b := c.bounds
	pad := r.Theme.Padding
	r.DrawPanel(b.X, b.Y, b.Width, b.Height)

	actions := ControlActions{Speed: speed}
	half := (b.Width - 3*pad) / 2

	trainBtn := Rect{X: b.X + pad, Y: b.Y + pad, Width: half, Height: 24}
	if gui.Button(trainBtn.toRaylib(), "Train") {
		actions.Train = true
	}

	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	pauseBtn := Rect{X: b.X + 2*pad + half, Y: b.Y + pad, Width: half, Height: 24}
	if gui.Button(pauseBtn.toRaylib(), pauseLabel) {
		actions.TogglePause = true
	}

	slider := rl.Rectangle{
		X:      float32(b.X + pad + 40),
		Y:      float32(b.Y + 2*pad + 24),
		Width:  float32(b.Width - 2*pad - 80),
		Height: 20,
	}
	value := gui.SliderBar(slider, "Speed", fmt.Sprintf("%dx", speed), float32(speed), 1, MaxSpeed)
	actions.Speed = min(max(int(value+0.5), 1), MaxSpeed)

	return actions
}
