// Package geometry holds the pure planar math used by the pipeline:
// corner ordering for perspective rectification and triangle fitting
// for the direction marker. Nothing in here touches OpenCV, so every
// function is exercised directly by table-driven tests.
package geometry

import (
	"image"
	"math"
)

// Point is a planar point in image coordinates: x grows rightward,
// y grows downward.
type Point struct {
	X float64
	Y float64
}

// Pt converts an OpenCV contour point.
func Pt(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// FromImagePoints converts a contour to float coordinates.
func FromImagePoints(pts []image.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Pt(p)
	}
	return out
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func sub(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}
