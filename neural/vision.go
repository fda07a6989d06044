package neural

import (
	"errors"
	"fmt"
	"math"
)

// Default eye parameters.
const (
	DefaultFOVRange = 0.25
	DefaultFOVAngle = math.Pi + math.Pi/4
	DefaultCells    = 9
)

// ErrEye is returned for eye configurations that cannot produce a vision vector.
var ErrEye = errors.New("invalid eye")

// Eye discretizes the field of view into angular sectors ("cells").
// It is immutable for an animal's lifetime and fixes the brain's input size.
type Eye struct {
	FOVRange float64 // max detection distance
	FOVAngle float64 // total angular width, radians
	Cells    int     // number of sectors
}

// DefaultEye returns the standard eye configuration.
func DefaultEye() Eye {
	return Eye{FOVRange: DefaultFOVRange, FOVAngle: DefaultFOVAngle, Cells: DefaultCells}
}

// Validate reports whether the eye is usable.
func (e Eye) Validate() error {
	switch {
	case e.Cells < 1:
		return fmt.Errorf("%w: cells must be >= 1, got %d", ErrEye, e.Cells)
	case e.FOVRange <= 0:
		return fmt.Errorf("%w: fov range must be > 0, got %v", ErrEye, e.FOVRange)
	case e.FOVAngle <= 0 || e.FOVAngle > 2*math.Pi:
		return fmt.Errorf("%w: fov angle must be in (0, 2pi], got %v", ErrEye, e.FOVAngle)
	}
	return nil
}

// ProcessVision returns the food intensity seen in each sector.
//
// Sector 0 covers the angle -FOVAngle/2 relative to heading and sector Cells-1
// covers +FOVAngle/2. Each visible food adds (range - distance) / range to its
// sector; contributions are summed without a cap.
func (e Eye) ProcessVision(pos Point, heading float64, foods []Point) []float64 {
	cells := make([]float64, e.Cells)
	half := e.FOVAngle / 2

	for _, food := range foods {
		dx, dy := TorusDelta(pos, food)
		dist := math.Hypot(dx, dy)
		if dist > e.FOVRange {
			continue
		}

		angle := NormalizeAngle(math.Atan2(dy, dx) - heading)
		if math.Abs(angle) > half {
			continue
		}

		cell := int((angle + half) / e.FOVAngle * float64(e.Cells))
		cell = min(max(cell, 0), e.Cells-1)

		cells[cell] += (e.FOVRange - dist) / e.FOVRange
	}

	return cells
}
