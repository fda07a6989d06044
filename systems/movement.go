package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/neural"
)

// MovementSystem advances animals along their heading and wraps them onto the torus.
type MovementSystem struct {
	filter *ecs.Filter3[components.Position, components.Heading, components.Speed]
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter3[components.Position, components.Heading, components.Speed](w),
	}
}

// Update runs the movement system.
func (s *MovementSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, heading, speed := query.Get()

		dx, dy := neural.Direction(heading.Angle)
		pos.X = neural.Wrap(pos.X + dx*speed.Value)
		pos.Y = neural.Wrap(pos.Y + dy*speed.Value)
	}
}
