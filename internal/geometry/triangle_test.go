package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHullDropsInteriorPoints(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
		{X: 5, Y: 5},
		{X: 3, Y: 7},
	}

	hull := ConvexHull(pts)
	require.Len(t, hull, 4)
	for _, p := range hull {
		assert.NotEqual(t, Point{X: 5, Y: 5}, p)
		assert.NotEqual(t, Point{X: 3, Y: 7}, p)
	}
}

func TestConvexHullCollinear(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}
	hull := ConvexHull(pts)
	assert.Less(t, len(hull), 3)
}

func TestMinEnclosingTriangleExactForTriangle(t *testing.T) {
	// A filled triangle contour: vertices plus points along the edges.
	want := Triangle{{X: 40, Y: 60}, {X: 60, Y: 60}, {X: 50, Y: 20}}
	pts := []Point{want[0], want[1], want[2]}
	for i := 1; i < 10; i++ {
		f := float64(i) / 10
		pts = append(pts,
			Point{X: want[0].X + f*(want[1].X-want[0].X), Y: want[0].Y + f*(want[1].Y-want[0].Y)},
			Point{X: want[1].X + f*(want[2].X-want[1].X), Y: want[1].Y + f*(want[2].Y-want[1].Y)},
			Point{X: want[2].X + f*(want[0].X-want[2].X), Y: want[2].Y + f*(want[0].Y-want[2].Y)},
		)
	}

	got, err := MinEnclosingTriangle(pts)
	require.NoError(t, err)

	for _, w := range want {
		found := false
		for _, g := range got {
			if Dist(w, g) < 1e-6 {
				found = true
			}
		}
		assert.True(t, found, "missing vertex %+v", w)
	}
}

func TestMinEnclosingTriangleSquare(t *testing.T) {
	// The optimal triangle around a unit square has exactly twice its
	// area, with one side touching a corner at its midpoint.
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	got, err := MinEnclosingTriangle(pts)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Area(), 1e-6)

	// Every square corner stays inside.
	for _, p := range pts {
		assert.True(t, triangleContains(got, p), "corner %+v escaped", p)
	}
}

func triangleContains(t Triangle, p Point) bool {
	return containsAll(t, []Point{p}, hullScale(t[:]))
}

func TestMinEnclosingTriangleDegenerate(t *testing.T) {
	_, err := MinEnclosingTriangle([]Point{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 9, Y: 9}})
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestTipIndexArrow(t *testing.T) {
	tri := Triangle{{X: 40, Y: 60}, {X: 60, Y: 60}, {X: 50, Y: 20}}
	assert.Equal(t, 2, TipIndex(tri))

	// Swapping the base vertices must not change the chosen tip.
	swapped := Triangle{tri[1], tri[0], tri[2]}
	assert.Equal(t, 2, TipIndex(swapped))
}

func TestTipIndexEquilateralTieBreak(t *testing.T) {
	// All vertices are equally far from each other, so the first one
	// wins deterministically.
	tri := Triangle{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8.6602540378}}
	assert.Equal(t, 0, TipIndex(tri))
}

func TestSplitTip(t *testing.T) {
	tri := Triangle{{X: 40, Y: 60}, {X: 60, Y: 60}, {X: 50, Y: 20}}
	m := SplitTip(tri)

	assert.Equal(t, Point{X: 50, Y: 20}, m.Tip)
	assert.Equal(t, [2]Point{{X: 40, Y: 60}, {X: 60, Y: 60}}, m.Base)
}
