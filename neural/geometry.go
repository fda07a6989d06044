package neural

import "math"

// Point is a position on the unit torus [0,1)×[0,1).
type Point struct {
	X, Y float64
}

// Wrap maps v into [0, 1).
func Wrap(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		// -tiny wraps to 1.0 after rounding
		return 0
	}
	return v
}

// WrapPoint wraps both coordinates into [0, 1).
func WrapPoint(p Point) Point {
	return Point{X: Wrap(p.X), Y: Wrap(p.Y)}
}

// torusDelta returns the shortest signed difference b-a along one wrapped axis.
func torusDelta(a, b float64) float64 {
	d := b - a
	d -= math.Round(d)
	return d
}

// TorusDelta returns the shortest vector from a to b on the unit torus.
func TorusDelta(a, b Point) (dx, dy float64) {
	return torusDelta(a.X, b.X), torusDelta(a.Y, b.Y)
}

// Distance returns the plain Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	if angle >= -math.Pi && angle <= math.Pi {
		return angle
	}
	angle = math.Mod(angle+math.Pi, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle - math.Pi
}

// Direction returns the unit vector for a heading. Heading 0 points along +X.
func Direction(heading float64) (float64, float64) {
	return math.Cos(heading), math.Sin(heading)
}
