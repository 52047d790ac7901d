package geometry

import "errors"

// Quadrilateral holds the four corners of the detected map region in a
// fixed order so the perspective warp always maps them onto the same
// output corners.
type Quadrilateral struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// ErrTooFewPoints is returned when a contour is too small to carry four
// distinct corners.
var ErrTooFewPoints = errors.New("geometry: need at least 4 points to order corners")

// OrderCorners picks the four extreme corners of a roughly rectangular
// contour. The coordinate sum x+y is smallest at the top-left corner and
// largest at the bottom-right; the difference y-x is smallest at the
// top-right corner and largest at the bottom-left. The heuristic only
// holds for mildly rotated quadrilaterals, which is guaranteed here
// because the contour has already been deskewed.
func OrderCorners(pts []Point) (Quadrilateral, error) {
	if len(pts) < 4 {
		return Quadrilateral{}, ErrTooFewPoints
	}

	q := Quadrilateral{
		TopLeft:     pts[0],
		TopRight:    pts[0],
		BottomRight: pts[0],
		BottomLeft:  pts[0],
	}
	minSum := pts[0].X + pts[0].Y
	maxSum := minSum
	minDiff := pts[0].Y - pts[0].X
	maxDiff := minDiff

	for _, p := range pts[1:] {
		sum := p.X + p.Y
		diff := p.Y - p.X
		if sum < minSum {
			minSum = sum
			q.TopLeft = p
		}
		if sum > maxSum {
			maxSum = sum
			q.BottomRight = p
		}
		if diff < minDiff {
			minDiff = diff
			q.TopRight = p
		}
		if diff > maxDiff {
			maxDiff = diff
			q.BottomLeft = p
		}
	}

	return q, nil
}
