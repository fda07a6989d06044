// Package sim ties the vision model, brains and genetic algorithm into a
// generational foraging simulation on the unit torus.
package sim

import (
	"fmt"
	"math"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/rng"
)

// Animal is a read-only snapshot of one animal.
type Animal struct {
	Position  neural.Point
	Heading   float64 // radians, unbounded
	Speed     float64
	Satiation int // food eaten this generation
	Eye       neural.Eye
	Brain     *neural.Network
}

// Food is a read-only snapshot of one food item.
type Food struct {
	Position neural.Point
}

// EyeFromConfig builds the eye every animal shares.
func EyeFromConfig(cfg *config.Config) neural.Eye {
	return neural.Eye{
		FOVRange: cfg.Eye.FOVRange,
		FOVAngle: cfg.Derived.FOVAngle,
		Cells:    cfg.Eye.Cells,
	}
}

// BrainTopology returns the network shape for an eye: one input per vision
// cell, the hidden layers, and two outputs (speed and rotation).
func BrainTopology(eye neural.Eye, hidden []int) neural.Topology {
	t := make(neural.Topology, 0, len(hidden)+2)
	t = append(t, eye.Cells)
	t = append(t, hidden...)
	return append(t, 2)
}

// RandomAnimal creates an animal with a random brain, placement and speed.
func RandomAnimal(src rng.Source, cfg *config.Config) (Animal, error) {
	eye := EyeFromConfig(cfg)
	brain, err := neural.Random(src, BrainTopology(eye, cfg.Derived.HiddenLayers))
	if err != nil {
		return Animal{}, fmt.Errorf("random brain: %w", err)
	}
	return place(src, cfg, eye, brain), nil
}

// place positions a new animal uniformly on the torus with a random heading
// and a speed within the configured bounds.
func place(src rng.Source, cfg *config.Config, eye neural.Eye, brain *neural.Network) Animal {
	return Animal{
		Position: neural.Point{X: src.Float64(), Y: src.Float64()},
		Heading:  src.Float64() * 2 * math.Pi,
		Speed:    rng.Range(src, cfg.Simulation.SpeedMin, cfg.Simulation.SpeedMax),
		Eye:      eye,
		Brain:    brain,
	}
}

// RandomFood places a food item uniformly on the torus.
func RandomFood(src rng.Source) Food {
	return Food{Position: neural.Point{X: src.Float64(), Y: src.Float64()}}
}

// NearestAnimal returns the index of the animal closest to at on the torus,
// if any lies within radius.
func NearestAnimal(animals []Animal, at neural.Point, radius float64) (int, bool) {
	best, bestDist := -1, radius
	for i, a := range animals {
		dx, dy := neural.TorusDelta(at, a.Position)
		if d := math.Hypot(dx, dy); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
