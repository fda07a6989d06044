package systems

import (
	"runtime"

	"github.com/mlange-42/ark/ecs"
	"github.com/sourcegraph/conc/pool"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/neural"
)

// MotionLimits bound how far a brain can change an animal's motion in one step.
type MotionLimits struct {
	SpeedMin      float64
	SpeedMax      float64
	SpeedAccel    float64 // max speed change per step
	RotationAccel float64 // max heading change per step, radians
}

// brainSnapshot captures read-only state for the compute phase.
type brainSnapshot struct {
	Entity  ecs.Entity
	Pos     neural.Point
	Heading float64
	Speed   float64
	Eye     neural.Eye
	Brain   *neural.Network
}

// brainIntent is the computed motion to apply after the compute phase.
type brainIntent struct {
	Heading float64
	Speed   float64
}

// BrainSystem runs each animal's vision and brain and updates its motion.
//
// Work is split into three phases: snapshot (serial), compute (serial or on a
// worker pool), apply (serial, entity order). The compute phase only reads
// snapshots and writes its own intent slot, so the parallel path produces the
// same results as the serial one.
type BrainSystem struct {
	filter    *ecs.Filter4[components.Position, components.Heading, components.Speed, components.Organism]
	foods     *ecs.Filter2[components.Position, components.Food]
	motion    *ecs.Map2[components.Heading, components.Speed]
	limits    MotionLimits
	threshold int
	workers   int

	foodPoints []neural.Point
	snapshots  []brainSnapshot
	intents    []brainIntent
}

// NewBrainSystem creates a brain system. Populations of at least threshold
// animals are computed on up to workers goroutines; threshold <= 0 disables
// the parallel path and workers <= 0 means GOMAXPROCS.
func NewBrainSystem(w *ecs.World, limits MotionLimits, threshold, workers int) *BrainSystem {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &BrainSystem{
		filter:    ecs.NewFilter4[components.Position, components.Heading, components.Speed, components.Organism](w),
		foods:     ecs.NewFilter2[components.Position, components.Food](w),
		motion:    ecs.NewMap2[components.Heading, components.Speed](w),
		limits:    limits,
		threshold: threshold,
		workers:   workers,
	}
}

// Update runs the brain system.
func (s *BrainSystem) Update() {
	// Phase A: snapshot food positions and animals
	s.foodPoints = s.foodPoints[:0]
	fq := s.foods.Query()
	for fq.Next() {
		pos, _ := fq.Get()
		s.foodPoints = append(s.foodPoints, pos.Point())
	}

	s.snapshots = s.snapshots[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, heading, speed, org := query.Get()
		s.snapshots = append(s.snapshots, brainSnapshot{
			Entity:  query.Entity(),
			Pos:     pos.Point(),
			Heading: heading.Angle,
			Speed:   speed.Value,
			Eye:     org.Eye,
			Brain:   org.Brain,
		})
	}

	n := len(s.snapshots)
	if n == 0 {
		return
	}
	if cap(s.intents) < n {
		s.intents = make([]brainIntent, n)
	}
	s.intents = s.intents[:n]

	// Phase B: compute
	if s.threshold <= 0 || n < s.threshold || s.workers == 1 {
		s.computeChunk(0, n)
	} else {
		s.computeParallel(n)
	}

	// Phase C: apply in snapshot order
	for i, snap := range s.snapshots {
		heading, speed := s.motion.Get(snap.Entity)
		heading.Angle = s.intents[i].Heading
		speed.Value = s.intents[i].Speed
	}
}

func (s *BrainSystem) computeParallel(n int) {
	chunkSize := (n + s.workers - 1) / s.workers

	p := pool.New().WithMaxGoroutines(s.workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		p.Go(func() {
			s.computeChunk(start, end)
		})
	}
	p.Wait()
}

func (s *BrainSystem) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &s.snapshots[i]
		vision := snap.Eye.ProcessVision(snap.Pos, snap.Heading, s.foodPoints)
		s.intents[i] = s.limits.steer(snap.Heading, snap.Speed, snap.Brain.Propagate(vision))
	}
}

// steer turns a brain response into new motion. response[0] drives speed and
// response[1] drives rotation; both are clamped to their per-step limits.
func (l MotionLimits) steer(heading, speed float64, response []float64) brainIntent {
	dv := clampAbs(response[0], l.SpeedAccel)
	dr := clampAbs(response[1], l.RotationAccel)
	return brainIntent{
		Heading: heading + dr,
		Speed:   clamp(speed+dv, l.SpeedMin, l.SpeedMax),
	}
}
