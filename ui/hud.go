package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/genetic"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title            string
	Generation       int
	Age              int
	GenerationLength int
	Animals          int
	Foods            int
	FoodEaten        int
	Speed            int
	FPS              int32
	Paused           bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Generation: %d | Step: %d/%d", data.Generation, data.Age, data.GenerationLength),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Animals: %d | Food: %d | Eaten: %d", data.Animals, data.Foods, data.FoodEaten),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Speed: %dx | FPS: %d", data.Speed, data.FPS),
		10, 75, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 95, 16, rl.Yellow)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: systems.NewSystemRegistry(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	phases := stats.SortedPhases()
	p.renderer.DrawPanel(x-6, y-6, 220, int32(len(phases)+2)*16+12)

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s (%.0f/s)", stats.AvgStep.Round(time.Microsecond), stats.StepsPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %6s %5.1f%%", p.registry.GetName(phase),
			stats.PhaseAvg[phase].Round(time.Microsecond), pct), x, y, 12, color)
		y += 16
	}
}

// FitnessPanel shows the fitness history of past generations.
type FitnessPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewFitnessPanel creates a new fitness history panel.
func NewFitnessPanel(x, y, width, height int32) *FitnessPanel {
	return &FitnessPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetPosition updates the panel position.
func (f *FitnessPanel) SetPosition(x, y int32) {
	f.x = x
	f.y = y
}

// Draw renders the latest statistics and a min/mean/max chart over history.
func (f *FitnessPanel) Draw(history []genetic.Statistics) {
	r := f.renderer
	padding := r.Theme.Padding
	r.DrawPanel(f.x, f.y, f.width, f.height)

	y := r.DrawSectionHeader(f.x+padding, f.y+padding, "Fitness")
	if len(history) == 0 {
		rl.DrawText("No generations yet", f.x+padding, y, 12, rl.Gray)
		return
	}

	last := history[len(history)-1]
	y = r.DrawLabelValue(f.x+padding, y, "Mean", fmt.Sprintf("%.2f ± %.2f", last.Mean, last.StdDev))
	y = r.DrawLabelValue(f.x+padding, y, "Range", fmt.Sprintf("%.0f - %.0f", last.Min, last.Max))

	chart := Rect{X: f.x + padding, Y: y + 4, Width: f.width - 2*padding, Height: f.y + f.height - y - 4 - padding}
	if chart.Height < 10 {
		return
	}
	rl.DrawRectangleLines(chart.X, chart.Y, chart.Width, chart.Height, r.Theme.PanelBorder)

	peak := 1.0
	for _, s := range history {
		peak = max(peak, s.Max)
	}
	point := func(i int, v float64) rl.Vector2 {
		step := float32(chart.Width)
		if len(history) > 1 {
			step = float32(chart.Width) / float32(len(history)-1)
		}
		return rl.Vector2{
			X: float32(chart.X) + float32(i)*step,
			Y: float32(chart.Y+chart.Height) - float32(v/peak)*float32(chart.Height),
		}
	}
	for i := 1; i < len(history); i++ {
		rl.DrawLineV(point(i-1, history[i-1].Max), point(i, history[i].Max), r.Theme.BarFillHigh)
		rl.DrawLineV(point(i-1, history[i-1].Mean), point(i, history[i].Mean), r.Theme.BarFillMedium)
		rl.DrawLineV(point(i-1, history[i-1].Min), point(i, history[i].Min), r.Theme.BarFillLow)
	}
}
