package systems

// Phase IDs used for perf tracking, in step order.
const (
	PhaseCollision = "collision"
	PhaseBrains    = "brains"
	PhaseMovement  = "movement"
	PhaseEvolve    = "evolve"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the viewer and perf reports stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: PhaseCollision, Name: "Collision", Description: "Animals eat food within reach"})
	reg.Register(SystemInfo{ID: PhaseBrains, Name: "Brains", Description: "Vision and network evaluation"})
	reg.Register(SystemInfo{ID: PhaseMovement, Name: "Movement", Description: "Advances and wraps positions"})
	reg.Register(SystemInfo{ID: PhaseEvolve, Name: "Evolve", Description: "Breeds the next generation"})
	return reg
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
