package geometry

import "math"

// Point is a position in a continuous 2D space (logical screen points or
// video pixels, depending on context).
type Point struct {
	X float64
	Y float64
}

// Size holds width/height of a space.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle in video pixels.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LerpAlongPath moves from a toward b at constant speed with respect to the
// straight-line path distance. At t=0.5 the result is exactly halfway along
// the segment regardless of direction, so diagonal moves do not appear
// faster than axis-aligned ones.
func LerpAlongPath(a, b Point, t float64) Point {
	dist := Distance(a, b)
	if dist == 0 {
		return a
	}
	travel := dist * Clamp(t, 0, 1)
	dirX := (b.X - a.X) / dist
	dirY := (b.Y - a.Y) / dist
	return Point{
		X: a.X + dirX*travel,
		Y: a.Y + dirY*travel,
	}
}
