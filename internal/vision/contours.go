package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// LargestContour runs external contour detection on a binary mask and
// returns the points of the largest contour by area. When several
// regions survive thresholding, picking the largest keeps the stages
// deterministic: the map dominates the photo and the marker dominates
// its color mask, so smaller blobs are noise.
func LargestContour(mask gocv.Mat) ([]image.Point, bool) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bestIdx := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, false
	}
	return contours.At(bestIdx).ToPoints(), true
}

// MinAreaRect fits a rotated rectangle to contour points.
func MinAreaRect(pts []image.Point) gocv.RotatedRect {
	pv := gocv.NewPointVectorFromPoints(pts)
	defer pv.Close()
	return gocv.MinAreaRect(pv)
}

// BoundingRect returns the axis-aligned bounding box of contour points.
func BoundingRect(pts []image.Point) image.Rectangle {
	pv := gocv.NewPointVectorFromPoints(pts)
	defer pv.Close()
	return gocv.BoundingRect(pv)
}
