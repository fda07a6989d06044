// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/flock/neural"

// Position is a point on the unit torus.
type Position struct {
	X, Y float64
}

// Point converts the position for use with the vision model.
func (p Position) Point() neural.Point {
	return neural.Point{X: p.X, Y: p.Y}
}

// PositionOf converts a point back into a component.
func PositionOf(p neural.Point) Position {
	return Position{X: p.X, Y: p.Y}
}

// Heading is the facing angle in radians. It accumulates without bound and is
// read modulo a full turn.
type Heading struct {
	Angle float64
}

// Speed is distance travelled per step along the heading.
type Speed struct {
	Value float64
}

// Organism holds the per-animal state that evolution cares about.
type Organism struct {
	Satiation int             // food eaten since the last generation boundary
	Eye       neural.Eye      // fixed for the animal's lifetime
	Brain     *neural.Network // replaced wholesale at each generation boundary
}

// Food marks food entities.
type Food struct {
	Eaten int // times this item was eaten and respawned this generation
}
