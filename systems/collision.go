package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/rng"
)

// CollisionSystem lets animals eat food within reach.
// Every animal is tested against every food item; there is no spatial index.
type CollisionSystem struct {
	animals *ecs.Filter2[components.Position, components.Organism]
	foods   *ecs.Filter2[components.Position, components.Food]
	foodMap *ecs.Map2[components.Position, components.Food]
	radius  float64

	foodBuf []ecs.Entity
}

// NewCollisionSystem creates a collision system with the given eat radius.
func NewCollisionSystem(w *ecs.World, eatRadius float64) *CollisionSystem {
	return &CollisionSystem{
		animals: ecs.NewFilter2[components.Position, components.Organism](w),
		foods:   ecs.NewFilter2[components.Position, components.Food](w),
		foodMap: ecs.NewMap2[components.Position, components.Food](w),
		radius:  eatRadius,
	}
}

// Update processes one collision pass and returns the number of food items eaten.
// A food item that is eaten moves to a fresh random position immediately, so
// later animals in the same pass test against the new position.
func (s *CollisionSystem) Update(src rng.Source) int {
	s.foodBuf = s.foodBuf[:0]
	fq := s.foods.Query()
	for fq.Next() {
		s.foodBuf = append(s.foodBuf, fq.Entity())
	}

	eaten := 0
	query := s.animals.Query()
	for query.Next() {
		pos, org := query.Get()
		at := pos.Point()

		for _, e := range s.foodBuf {
			fpos, food := s.foodMap.Get(e)
			if neural.Distance(at, fpos.Point()) > s.radius {
				continue
			}
			org.Satiation++
			food.Eaten++
			fpos.X = src.Float64()
			fpos.Y = src.Float64()
			eaten++
		}
	}
	return eaten
}
