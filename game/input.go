package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/ui"
)

// Pixels the pointer may travel between press and release and still count as a click.
const clickSlop = 4

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.pending.TogglePause = true
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.pending.Train = true
	}

	// Steps-per-frame control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.pending.Speed = g.speed - 1
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < ui.MaxSpeed {
		g.pending.Speed = g.speed + 1
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		g.inspector.Deselect()
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(float64(w), float64(h))
	g.layout()
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	const panSpeed = 8

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleMouse pans on drag and selects the animal under the cursor on click.
// Clicks on panels are left to the panels.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if g.overPanel(mouse.X, mouse.Y) {
		return
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		g.dragDistance += abs32(delta.X) + abs32(delta.Y)
		if g.dragDistance > clickSlop {
			g.camera.Pan(-delta.X, -delta.Y)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if g.dragDistance <= clickSlop {
			at := g.camera.ScreenToWorld(mouse.X, mouse.Y)
			radius := selectRadiusPx / g.camera.Scale()
			g.inspector.Select(g.trainer.Sim().World().Animals(), at, radius)
		}
		g.dragDistance = 0
	}
}

func (g *Game) overPanel(x, y float32) bool {
	if g.controls.Bounds().Contains(x, y) {
		return true
	}
	if _, ok := g.inspector.Selected(); ok && g.inspector.Bounds().Contains(x, y) {
		return true
	}
	return false
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
