// Package geom provides the point and rectangle primitives shared by the
// drag engine and its geometry providers. Coordinates are float64 so the
// same math serves pixel-based hosts and cell-based terminal hosts.
package geom

import "math"

// Axis selects which dimension of a rectangle or point participates in
// ordering decisions (insertion midpoints, container layout).
type Axis int

const (
	// Vertical lays children out top to bottom; ordering compares Y.
	Vertical Axis = iota
	// Horizontal lays children out left to right; ordering compares X.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Point is a position in a scope's coordinate space.
type Point struct {
	X, Y float64
}

// Along returns the point's coordinate on the given axis.
func (p Point) Along(a Axis) float64 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns p - q componentwise.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// TopLeft returns the rectangle's origin.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Mid returns the rectangle's midpoint coordinate along the given axis.
func (r Rect) Mid(a Axis) float64 {
	if a == Horizontal {
		return r.X + r.W/2
	}
	return r.Y + r.H/2
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}
