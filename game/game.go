// Package game is the raylib viewer: it draws a training run and maps user
// input onto the trainer.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/inspector"
	"github.com/pthm-cable/flock/trainer"
	"github.com/pthm-cable/flock/ui"
)

// Controls legend shown at the bottom of the screen.
const controlsText = "[Space] Pause  [T] Train  [</>] Speed  [Click] Select  [Drag/Arrows] Pan  [Wheel] Zoom  [Home] Reset"

// Options configures the viewer.
type Options struct {
	Title string
	Speed int // initial steps per frame
}

// Game holds the viewer state around a trainer.
type Game struct {
	trainer *trainer.Trainer
	cfg     *config.Config
	title   string

	camera    *camera.Camera
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	fitness   *ui.FitnessPanel
	inspector *inspector.Inspector

	// State
	paused  bool
	speed   int
	pending ui.ControlActions // button presses from the last Draw
	err     error

	dragDistance float32

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a viewer for t. The raylib window must already be open.
func NewGameWithOptions(t *trainer.Trainer, opts Options) *Game {
	cfg := t.Sim().Config()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	speed := opts.Speed
	if speed < 1 {
		speed = 1
	}

	g := &Game{
		trainer:      t,
		cfg:          cfg,
		title:        opts.Title,
		camera:       camera.New(float64(w), float64(h)),
		hud:          ui.NewHUD(),
		speed:        min(speed, ui.MaxSpeed),
		screenWidth:  w,
		screenHeight: h,
	}
	g.inspector = inspector.NewInspector(int32(w))
	g.layout()
	return g
}

// layout positions the panels for the current screen size.
func (g *Game) layout() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	g.controls = ui.NewControlsPanel(10, 120, 240)
	g.perfPanel = ui.NewPerfPanel(16, 120+g.controls.Bounds().Height+16)
	g.fitness = ui.NewFitnessPanel(10, h-200, 260, 165)
	g.inspector.Resize(w)
}

// Update applies input and advances the simulation by the current speed.
// A failed step stops the simulation and is returned from every later call.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	g.handleInput()

	actions := g.pending
	g.pending = ui.ControlActions{Speed: g.speed}
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Speed > 0 {
		g.speed = actions.Speed
	}

	if actions.Train {
		g.train()
		return g.err
	}
	if g.paused {
		return nil
	}
	for i := 0; i < g.speed; i++ {
		if _, err := g.trainer.Step(); err != nil {
			g.err = err
			return err
		}
	}
	return nil
}

// train fast-forwards to the end of the current generation.
func (g *Game) train() {
	stats, err := g.trainer.Train()
	if err != nil {
		g.err = err
		return
	}
	slog.Info("trained generation", "generation", g.trainer.Sim().Generation()-1, "fitness", stats)
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 16, B: 24, A: 255})

	s := g.trainer.Sim()
	world := s.World()
	animals := world.Animals()
	foods := world.Foods()

	g.drawWorld(animals, foods)

	g.hud.Draw(ui.HUDData{
		Title:            g.title,
		Generation:       s.Generation(),
		Age:              s.Age(),
		GenerationLength: g.cfg.Simulation.GenerationLength,
		Animals:          len(animals),
		Foods:            len(foods),
		FoodEaten:        world.FoodEaten(),
		Speed:            g.speed,
		FPS:              rl.GetFPS(),
		Paused:           g.paused,
	})
	g.pending = g.controls.Draw(g.paused, g.speed)
	g.perfPanel.Draw(g.trainer.Perf().Stats())
	g.fitness.Draw(g.trainer.History())
	g.inspector.Draw(animals, foods, g.cfg.Simulation.SpeedMax)
	g.hud.DrawControls(int32(g.screenHeight), controlsText)

	rl.EndDrawing()
}

// Unload releases viewer resources and closes the trainer's output.
func (g *Game) Unload() {
	if err := g.trainer.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}

// Generation returns the current generation.
func (g *Game) Generation() int {
	return g.trainer.Sim().Generation()
}
