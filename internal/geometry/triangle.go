package geometry

import (
	"errors"
	"math"
	"sort"
)

// Triangle vertices, in no particular order.
type Triangle [3]Point

// MarkerGeometry is a triangle split into the tip vertex and the two
// base vertices it points away from.
type MarkerGeometry struct {
	Tip  Point
	Base [2]Point
}

// ErrDegenerate is returned when the input points do not span a proper
// two-dimensional region, so no enclosing triangle exists.
var ErrDegenerate = errors.New("geometry: points are collinear or too few for a triangle")

// Area returns the absolute area of the triangle.
func (t Triangle) Area() float64 {
	return math.Abs(signedArea(t)) / 2
}

func signedArea(t Triangle) float64 {
	return cross(sub(t[1], t[0]), sub(t[2], t[0]))
}

// TipIndex returns the vertex farthest in total from the other two.
// For an arrow-shaped marker that is the apex. Ties keep the first
// vertex in iteration order so the choice is deterministic.
func TipIndex(t Triangle) int {
	best := 0
	bestSum := math.Inf(-1)
	for i := range t {
		sum := Dist(t[i], t[(i+1)%3]) + Dist(t[i], t[(i+2)%3])
		if sum > bestSum {
			bestSum = sum
			best = i
		}
	}
	return best
}

// SplitTip separates the tip vertex from the base pair, preserving the
// base vertices in triangle order.
func SplitTip(t Triangle) MarkerGeometry {
	tip := TipIndex(t)
	m := MarkerGeometry{Tip: t[tip]}
	n := 0
	for i := range t {
		if i != tip {
			m.Base[n] = t[i]
			n++
		}
	}
	return m
}

// ConvexHull computes the convex hull of pts with Andrew's monotone
// chain. Collinear points along hull edges are dropped. The input slice
// is not modified.
func ConvexHull(pts []Point) []Point {
	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// Drop exact duplicates so degenerate inputs collapse cleanly.
	uniq := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		out := make([]Point, len(uniq))
		copy(out, uniq)
		return out
	}

	hull := make([]Point, 0, 2*len(uniq))
	for _, p := range uniq {
		for len(hull) >= 2 && cross(sub(hull[len(hull)-1], hull[len(hull)-2]), sub(p, hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(sub(hull[len(hull)-1], hull[len(hull)-2]), sub(p, hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// MinEnclosingTriangle fits a small triangle around the convex hull of
// pts. Candidate triangles are built from hull edge lines extended to
// mutual intersection, plus sides constructed through a single hull
// vertex using the midpoint rule, which covers hulls whose opposite
// edges are parallel. For an input that is already triangular the hull
// itself is returned, so the fit is exact in the common marker case.
func MinEnclosingTriangle(pts []Point) (Triangle, error) {
	hull := ConvexHull(pts)
	if len(hull) < 3 {
		return Triangle{}, ErrDegenerate
	}
	if len(hull) == 3 {
		return Triangle{hull[0], hull[1], hull[2]}, nil
	}

	edges := make([]line, len(hull))
	for i := range hull {
		edges[i] = lineThrough(hull[i], hull[(i+1)%len(hull)])
	}

	scale := hullScale(hull)
	best := Triangle{}
	bestArea := math.Inf(1)
	found := false

	consider := func(l1, l2, l3 line) {
		t, ok := triangleFromLines(l1, l2, l3)
		if !ok {
			return
		}
		area := t.Area()
		if area >= bestArea {
			return
		}
		if !containsAll(t, hull, scale) {
			return
		}
		best = t
		bestArea = area
		found = true
	}

	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			for k := j + 1; k < len(edges); k++ {
				consider(edges[i], edges[j], edges[k])
			}
			for _, v := range hull {
				side, ok := midpointSide(edges[i], edges[j], v)
				if ok {
					consider(edges[i], edges[j], side)
				}
			}
		}
	}

	if !found {
		return Triangle{}, ErrDegenerate
	}
	return best, nil
}

type line struct {
	p Point
	d Point // direction, non-zero
}

func lineThrough(a, b Point) line {
	return line{p: a, d: sub(b, a)}
}

func intersectLines(l1, l2 line) (Point, bool) {
	den := cross(l1.d, l2.d)
	limit := 1e-9 * math.Hypot(l1.d.X, l1.d.Y) * math.Hypot(l2.d.X, l2.d.Y)
	if math.Abs(den) <= limit {
		return Point{}, false
	}
	t := cross(sub(l2.p, l1.p), l2.d) / den
	return Point{X: l1.p.X + t*l1.d.X, Y: l1.p.Y + t*l1.d.Y}, true
}

func triangleFromLines(l1, l2, l3 line) (Triangle, bool) {
	a, ok := intersectLines(l1, l2)
	if !ok {
		return Triangle{}, false
	}
	b, ok := intersectLines(l2, l3)
	if !ok {
		return Triangle{}, false
	}
	c, ok := intersectLines(l3, l1)
	if !ok {
		return Triangle{}, false
	}
	return Triangle{a, b, c}, true
}

// midpointSide builds the side line through vertex v that minimizes the
// area cut between the wedge of la and lb: the optimal side has v at the
// midpoint of the segment it spans between the two lines.
func midpointSide(la, lb line, v Point) (line, bool) {
	den := cross(lb.d, la.d)
	limit := 1e-9 * math.Hypot(la.d.X, la.d.Y) * math.Hypot(lb.d.X, lb.d.Y)
	if math.Abs(den) <= limit {
		return line{}, false
	}
	c := Point{X: 2*v.X - lb.p.X - la.p.X, Y: 2*v.Y - lb.p.Y - la.p.Y}
	s := cross(c, la.d) / den
	q := Point{X: lb.p.X + s*lb.d.X, Y: lb.p.Y + s*lb.d.Y}
	p := Point{X: 2*v.X - q.X, Y: 2*v.Y - q.Y}
	d := sub(q, p)
	if math.Hypot(d.X, d.Y) < 1e-12 {
		return line{}, false
	}
	return line{p: v, d: d}, true
}

func hullScale(hull []Point) float64 {
	minX, maxX := hull[0].X, hull[0].X
	minY, maxY := hull[0].Y, hull[0].Y
	for _, p := range hull[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return math.Hypot(maxX-minX, maxY-minY)
}

func containsAll(t Triangle, pts []Point, scale float64) bool {
	orient := signedArea(t)
	if math.Abs(orient) < 1e-12 {
		return false
	}
	sign := 1.0
	if orient < 0 {
		sign = -1.0
	}
	for e := 0; e < 3; e++ {
		a, b := t[e], t[(e+1)%3]
		edge := sub(b, a)
		tol := 1e-6 * (1 + scale) * math.Hypot(edge.X, edge.Y)
		for _, p := range pts {
			if sign*cross(edge, sub(p, a)) < -tol {
				return false
			}
		}
	}
	return true
}
