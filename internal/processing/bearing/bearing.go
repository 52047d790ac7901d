// Package bearing converts the located marker triangle into the final
// pipeline output: a position normalized to the rectified map and a
// compass bearing for the direction the marker points in.
package bearing

import (
	"errors"
	"math"

	"mapmarker/internal/geometry"
)

// Result is the pipeline output. XPos and YPos are fractions of the map
// width and height with the Y axis flipped, so (0, 0) is the bottom-left
// map corner. Bearing is degrees clockwise from north in [0, 360).
type Result struct {
	XPos    float64
	YPos    float64
	Bearing float64
}

var (
	// ErrBadDimensions is returned for a non-positive map size.
	ErrBadDimensions = errors.New("bearing: map dimensions must be positive")
	// ErrNoDirection is returned when the tip coincides with the base
	// midpoint, leaving the pointing direction undefined.
	ErrNoDirection = errors.New("bearing: tip coincides with base midpoint")
)

// Compute derives the normalized position and compass bearing of a
// marker inside a rectified map of the given pixel size.
//
// The direction runs from the midpoint of the base edge through the tip.
// Its image-plane angle from atan2 is mapped onto compass convention,
// where north is up and angles grow clockwise: screen y grows downward,
// so a tip pointing up yields atan2 = -90 and must come out as 0.
func Compute(m geometry.MarkerGeometry, width, height int) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, ErrBadDimensions
	}

	mid := geometry.Midpoint(m.Base[0], m.Base[1])
	dx := m.Tip.X - mid.X
	dy := m.Tip.Y - mid.Y
	if dx == 0 && dy == 0 {
		return Result{}, ErrNoDirection
	}

	raw := math.Atan2(dy, dx) * 180 / math.Pi
	var b float64
	if raw < 0 {
		b = 450 + raw
	} else {
		b = raw + 90
	}
	if b >= 360 {
		b -= 360
	}

	return Result{
		XPos:    m.Tip.X / float64(width),
		YPos:    1 - m.Tip.Y/float64(height),
		Bearing: b,
	}, nil
}
