package systems

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampAbs limits v to [-limit, limit].
func clampAbs(v, limit float64) float64 {
	return clamp(v, -limit, limit)
}
