package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/genetic"
	"github.com/pthm-cable/flock/rng"
	"github.com/pthm-cable/flock/systems"
)

// ErrBrainShape is returned when a world's animals carry brains that do not
// match the configured topology.
var ErrBrainShape = errors.New("brain does not match topology")

// PhaseTimer receives per-step timing callbacks. telemetry.PerfCollector implements it.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for generation boundaries.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithPerf attaches a phase timer to every step.
func WithPerf(p PhaseTimer) Option {
	return func(s *Simulation) { s.perf = p }
}

// Simulation advances a world step by step and evolves it at generation boundaries.
// It never stores a random source; every call that needs randomness takes one.
type Simulation struct {
	cfg   *config.Config
	world *World
	ga    *genetic.GeneticAlgorithm[AnimalIndividual]

	collision *systems.CollisionSystem
	brains    *systems.BrainSystem
	movement  *systems.MovementSystem

	age        int
	generation int

	lastFitness []float64

	logger *slog.Logger
	perf   PhaseTimer
}

// New creates a simulation over a random world sized by cfg.
func New(src rng.Source, cfg *config.Config, opts ...Option) (*Simulation, error) {
	world, err := RandomWorld(src, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	return NewWithWorld(cfg, world, opts...)
}

// NewWithWorld creates a simulation over an existing world.
func NewWithWorld(cfg *config.Config, world *World, opts ...Option) (*Simulation, error) {
	selection, err := genetic.SelectionByName(cfg.Genetic.Selection, cfg.Genetic.TournamentSize)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	mutation, err := genetic.NewGaussianMutation(cfg.Genetic.MutationChance, cfg.Genetic.MutationCoeff)
	if err != nil {
		return nil, fmt.Errorf("mutation: %w", err)
	}

	want := BrainTopology(EyeFromConfig(cfg), cfg.Derived.HiddenLayers)
	for i, a := range world.Animals() {
		if a.Brain == nil {
			return nil, fmt.Errorf("%w: animal %d has no brain", ErrBrainShape, i)
		}
		if got := a.Brain.Topology(); !slices.Equal(got, want) {
			return nil, fmt.Errorf("%w: animal %d has %v, want %v", ErrBrainShape, i, got, want)
		}
	}

	s := &Simulation{
		cfg:       cfg,
		world:     world,
		ga:        genetic.New[AnimalIndividual](selection, genetic.UniformCrossover{}, mutation),
		collision: systems.NewCollisionSystem(world.ecs, cfg.Simulation.EatRadius),
		brains: systems.NewBrainSystem(world.ecs, systems.MotionLimits{
			SpeedMin:      cfg.Simulation.SpeedMin,
			SpeedMax:      cfg.Simulation.SpeedMax,
			SpeedAccel:    cfg.Simulation.SpeedAccel,
			RotationAccel: cfg.Derived.RotationAccel,
		}, cfg.Parallel.Threshold, cfg.Parallel.Workers),
		movement: systems.NewMovementSystem(world.ecs),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// World returns the simulated world.
func (s *Simulation) World() *World { return s.world }

// Age returns the number of steps taken in the current generation.
func (s *Simulation) Age() int { return s.age }

// Generation returns how many times the population has evolved.
func (s *Simulation) Generation() int { return s.generation }

// LastFitness returns the fitness of every animal in the most recently
// evolved generation, in world order.
func (s *Simulation) LastFitness() []float64 { return s.lastFitness }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Step advances the world by one step: collisions, brains, movement. When
// the generation's age passes GenerationLength the population evolves and
// the statistics of the outgoing generation are returned; otherwise the
// statistics are nil.
func (s *Simulation) Step(src rng.Source) (*genetic.Statistics, error) {
	if s.perf != nil {
		s.perf.StartTick()
		defer s.perf.EndTick()
	}

	s.phase(systems.PhaseCollision)
	s.collision.Update(src)

	s.phase(systems.PhaseBrains)
	s.brains.Update()

	s.phase(systems.PhaseMovement)
	s.movement.Update()

	s.age++
	if s.age <= s.cfg.Simulation.GenerationLength {
		return nil, nil
	}

	s.phase(systems.PhaseEvolve)
	stats, err := s.Evolve(src)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Train steps until the current generation ends and returns its statistics.
func (s *Simulation) Train(src rng.Source) (genetic.Statistics, error) {
	for {
		stats, err := s.Step(src)
		if err != nil {
			return genetic.Statistics{}, err
		}
		if stats != nil {
			return *stats, nil
		}
	}
}

// Evolve ends the current generation immediately: animals are bred into a
// new population with fresh placements and all food is respawned.
func (s *Simulation) Evolve(src rng.Source) (genetic.Statistics, error) {
	s.age = 0

	animals := s.world.Animals()
	population := make([]AnimalIndividual, len(animals))
	fitness := make([]float64, len(animals))
	for i, a := range animals {
		population[i] = individualFromAnimal(a)
		fitness[i] = population[i].Fitness()
	}
	s.lastFitness = fitness

	next, stats, err := s.ga.Evolve(src, population, individualFromChromosome)
	if err != nil {
		return genetic.Statistics{}, fmt.Errorf("generation %d: %w", s.generation, err)
	}

	children := make([]Animal, len(next))
	for i, ind := range next {
		if children[i], err = ind.intoAnimal(src, s.cfg); err != nil {
			return genetic.Statistics{}, fmt.Errorf("generation %d: %w", s.generation, err)
		}
	}
	if err := s.world.replaceAnimals(children); err != nil {
		return genetic.Statistics{}, fmt.Errorf("generation %d: %w", s.generation, err)
	}
	s.world.respawnFoods(src)

	s.logger.Debug("generation complete", "generation", s.generation, "fitness", stats)
	s.generation++
	return stats, nil
}

func (s *Simulation) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}
