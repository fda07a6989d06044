package sim

import (
	"fmt"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/rng"
)

// AnimalIndividual is the genetic view of an animal: food eaten as fitness
// and flattened brain weights as chromosome.
type AnimalIndividual struct {
	fitness    float64
	chromosome genetic.Chromosome
}

// Fitness implements genetic.Individual.
func (a AnimalIndividual) Fitness() float64 { return a.fitness }

// Chromosome implements genetic.Individual.
func (a AnimalIndividual) Chromosome() genetic.Chromosome { return a.chromosome }

func individualFromAnimal(a Animal) AnimalIndividual {
	return AnimalIndividual{
		fitness:    float64(a.Satiation),
		chromosome: a.Brain.Weights(),
	}
}

func individualFromChromosome(c genetic.Chromosome) (AnimalIndividual, error) {
	return AnimalIndividual{chromosome: c}, nil
}

// intoAnimal rebuilds a fresh animal carrying this chromosome's brain.
func (a AnimalIndividual) intoAnimal(src rng.Source, cfg *config.Config) (Animal, error) {
	eye := EyeFromConfig(cfg)
	brain, err := neural.FromWeights(BrainTopology(eye, cfg.Derived.HiddenLayers), a.chromosome)
	if err != nil {
		return Animal{}, fmt.Errorf("rebuilding brain: %w", err)
	}
	return place(src, cfg, eye, brain), nil
}
