// Package camera maps the unit torus onto the screen with pan and zoom.
package camera

import (
	"math"

	"github.com/pthm-cable/flock/neural"
)

// Camera controls the viewport into the simulation world.
// World coordinates live on the unit torus; screen Y grows downward, world Y upward.
type Camera struct {
	// Center is the world point shown at the middle of the viewport.
	Center neural.Point

	// Zoom level (1.0 = the whole torus fits the shorter viewport side)
	Zoom float64

	// Viewport dimensions in pixels
	ViewportW, ViewportH float64

	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world at zoom 1.
func New(viewportW, viewportH float64) *Camera {
	return &Camera{
		Center:    neural.Point{X: 0.5, Y: 0.5},
		Zoom:      1,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   1,
		MaxZoom:   8,
	}
}

// Scale returns pixels per world unit.
func (c *Camera) Scale() float64 {
	return math.Min(c.ViewportW, c.ViewportH) * c.Zoom
}

// WorldToScreen converts a world point to screen pixels, taking the shortest
// way around the torus from the camera center.
func (c *Camera) WorldToScreen(p neural.Point) (sx, sy float32) {
	dx, dy := neural.TorusDelta(c.Center, p)
	s := c.Scale()
	return float32(c.ViewportW/2 + dx*s), float32(c.ViewportH/2 - dy*s)
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float32) neural.Point {
	s := c.Scale()
	return neural.WrapPoint(neural.Point{
		X: c.Center.X + (float64(sx)-c.ViewportW/2)/s,
		Y: c.Center.Y - (float64(sy)-c.ViewportH/2)/s,
	})
}

// IsVisible returns true if a circle at p with a world-space radius could be
// on screen (conservative check for culling).
func (c *Camera) IsVisible(p neural.Point, radius float64) bool {
	dx, dy := neural.TorusDelta(c.Center, p)
	s := c.Scale()
	return math.Abs(dx) <= c.ViewportW/(2*s)+radius && math.Abs(dy) <= c.ViewportH/(2*s)+radius
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.Center = neural.WrapPoint(neural.Point{
		X: c.Center.X + float64(dx)/s,
		Y: c.Center.Y - float64(dy)/s,
	})
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, zoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Center = neural.Point{X: 0.5, Y: 0.5}
	c.Zoom = 1
}
