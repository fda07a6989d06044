package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
)

// Sizes in world units unless marked Px.
const (
	animalSize     = 0.008
	foodSize       = 0.004
	selectRadiusPx = 12.0
)

var (
	animalColor   = rl.Color{R: 90, G: 200, B: 250, A: 255}
	selectedColor = rl.Color{R: 255, G: 210, B: 80, A: 255}
	foodColor     = rl.Color{R: 120, G: 220, B: 100, A: 255}
	seamColor     = rl.Color{R: 40, G: 50, B: 70, A: 255}
	fovColor      = rl.Color{R: 255, G: 210, B: 80, A: 40}
)

// drawWorld renders the torus seams, food, animals and the selected animal's view.
func (g *Game) drawWorld(animals []sim.Animal, foods []sim.Food) {
	g.drawSeams()

	scale := g.camera.Scale()
	foodPx := float32(max(2, foodSize*scale))
	for _, f := range foods {
		if !g.camera.IsVisible(f.Position, foodSize) {
			continue
		}
		x, y := g.camera.WorldToScreen(f.Position)
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, foodPx, foodColor)
	}

	selected, hasSelection := g.inspector.Selected()
	if hasSelection && selected < len(animals) {
		g.drawView(animals[selected])
	}

	sizePx := float32(max(4, animalSize*scale))
	for i, a := range animals {
		if !g.camera.IsVisible(a.Position, animalSize) {
			continue
		}
		color := animalColor
		if hasSelection && i == selected {
			color = selectedColor
		}
		// brighter animals have eaten more this generation
		color.A = uint8(140 + min(a.Satiation*10, 115))

		x, y := g.camera.WorldToScreen(a.Position)
		drawOrientedTriangle(x, y, screenAngle(a.Heading), sizePx, color)
	}
}

// drawSeams draws the lines where the torus wraps.
func (g *Game) drawSeams() {
	c := g.camera.Center
	x, _ := g.camera.WorldToScreen(neural.Point{X: 0, Y: c.Y})
	_, y := g.camera.WorldToScreen(neural.Point{X: c.X, Y: 0})
	rl.DrawLine(int32(x), 0, int32(x), int32(g.screenHeight), seamColor)
	rl.DrawLine(0, int32(y), int32(g.screenWidth), int32(y), seamColor)
}

// drawView draws the field of view and eat radius of one animal.
func (g *Game) drawView(a sim.Animal) {
	x, y := g.camera.WorldToScreen(a.Position)
	center := rl.Vector2{X: x, Y: y}
	scale := g.camera.Scale()

	heading := float32(screenAngle(a.Heading) * 180 / math.Pi)
	half := float32(a.Eye.FOVAngle * 90 / math.Pi)
	rangePx := float32(a.Eye.FOVRange * scale)

	rl.DrawCircleSector(center, rangePx, heading-half, heading+half, 32, fovColor)
	rl.DrawCircleSectorLines(center, rangePx, heading-half, heading+half, 32, selectedColor)

	// sector boundaries
	cells := max(a.Eye.Cells, 1)
	for i := 1; i < cells; i++ {
		angle := float64(heading-half) + float64(2*half)*float64(i)/float64(cells)
		rad := angle * math.Pi / 180
		end := rl.Vector2{X: x + rangePx*float32(math.Cos(rad)), Y: y + rangePx*float32(math.Sin(rad))}
		rl.DrawLineV(center, end, fovColor)
	}

	rl.DrawCircleLinesV(center, float32(g.cfg.Simulation.EatRadius*scale), selectedColor)
}

// screenAngle converts a world heading to a screen angle. Screen Y points down.
func screenAngle(heading float64) float64 {
	return -heading
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y float32, heading float64, radius float32, color rl.Color) {
	point := func(angle float64, r float32) rl.Vector2 {
		return rl.Vector2{
			X: x + float32(math.Cos(angle))*r,
			Y: y + float32(math.Sin(angle))*r,
		}
	}
	front := point(heading, radius*1.5)
	backLeft := point(heading+math.Pi*0.8, radius)
	backRight := point(heading-math.Pi*0.8, radius)

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(front, backRight, backLeft, color)
	rl.DrawTriangleLines(front, backLeft, backRight, rl.White)
}
