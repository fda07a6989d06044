package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/rng"
)

// World stores animals and food as ECS entities.
//
// Entities are created once and never removed: evolution and respawning
// overwrite components in place, so query order (and with it every random
// draw that depends on it) stays stable for the lifetime of the world.
type World struct {
	ecs *ecs.World

	animalMap    *ecs.Map4[components.Position, components.Heading, components.Speed, components.Organism]
	animalFilter *ecs.Filter4[components.Position, components.Heading, components.Speed, components.Organism]
	foodMap      *ecs.Map2[components.Position, components.Food]
	foodFilter   *ecs.Filter2[components.Position, components.Food]
}

// NewWorld builds a world holding exactly the given animals and food.
func NewWorld(animals []Animal, foods []Food) *World {
	w := ecs.NewWorld()
	world := &World{
		ecs:          w,
		animalMap:    ecs.NewMap4[components.Position, components.Heading, components.Speed, components.Organism](w),
		animalFilter: ecs.NewFilter4[components.Position, components.Heading, components.Speed, components.Organism](w),
		foodMap:      ecs.NewMap2[components.Position, components.Food](w),
		foodFilter:   ecs.NewFilter2[components.Position, components.Food](w),
	}

	for _, a := range animals {
		world.animalMap.NewEntity(
			&components.Position{X: a.Position.X, Y: a.Position.Y},
			&components.Heading{Angle: a.Heading},
			&components.Speed{Value: a.Speed},
			&components.Organism{Satiation: a.Satiation, Eye: a.Eye, Brain: a.Brain},
		)
	}
	for _, f := range foods {
		world.foodMap.NewEntity(
			&components.Position{X: f.Position.X, Y: f.Position.Y},
			&components.Food{},
		)
	}
	return world
}

// RandomWorld populates a world with config-sized random animals and food.
func RandomWorld(src rng.Source, cfg *config.Config) (*World, error) {
	animals := make([]Animal, cfg.World.Animals)
	for i := range animals {
		a, err := RandomAnimal(src, cfg)
		if err != nil {
			return nil, err
		}
		animals[i] = a
	}

	foods := make([]Food, cfg.World.Foods)
	for i := range foods {
		foods[i] = RandomFood(src)
	}
	return NewWorld(animals, foods), nil
}

// Animals returns a snapshot of every animal in stable order.
func (w *World) Animals() []Animal {
	var out []Animal
	query := w.animalFilter.Query()
	for query.Next() {
		pos, heading, speed, org := query.Get()
		out = append(out, Animal{
			Position:  pos.Point(),
			Heading:   heading.Angle,
			Speed:     speed.Value,
			Satiation: org.Satiation,
			Eye:       org.Eye,
			Brain:     org.Brain,
		})
	}
	return out
}

// Foods returns a snapshot of every food item in stable order.
func (w *World) Foods() []Food {
	var out []Food
	query := w.foodFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		out = append(out, Food{Position: pos.Point()})
	}
	return out
}

// AnimalCount returns the number of animals.
func (w *World) AnimalCount() int {
	n := 0
	query := w.animalFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// replaceAnimals overwrites every animal, in snapshot order, with the next generation.
func (w *World) replaceAnimals(animals []Animal) error {
	if n := w.AnimalCount(); n != len(animals) {
		return fmt.Errorf("replacing %d animals with %d", n, len(animals))
	}

	i := 0
	query := w.animalFilter.Query()
	for query.Next() {
		pos, heading, speed, org := query.Get()
		a := animals[i]
		*pos = components.PositionOf(a.Position)
		heading.Angle = a.Heading
		speed.Value = a.Speed
		*org = components.Organism{Satiation: a.Satiation, Eye: a.Eye, Brain: a.Brain}
		i++
	}
	return nil
}

// respawnFoods moves every food item to a fresh random position.
func (w *World) respawnFoods(src rng.Source) {
	query := w.foodFilter.Query()
	for query.Next() {
		pos, food := query.Get()
		pos.X = src.Float64()
		pos.Y = src.Float64()
		food.Eaten = 0
	}
}

// FoodEaten returns the total number of meals since the last respawn.
func (w *World) FoodEaten() int {
	total := 0
	query := w.foodFilter.Query()
	for query.Next() {
		_, food := query.Get()
		total += food.Eaten
	}
	return total
}
