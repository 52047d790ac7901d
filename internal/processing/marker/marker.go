// Package marker isolates the color-keyed direction marker on the
// rectified map and reduces it to a tip vertex and a base edge.
package marker

import (
	"image"

	"gocv.io/x/gocv"

	"mapmarker/internal/config"
	"mapmarker/internal/geometry"
	"mapmarker/internal/logger"
	"mapmarker/internal/vision"
)

const component = "marker-locate"

// Locator finds the marker triangle on a rectified map image.
type Locator struct {
	params config.MarkerParams
	log    logger.Logger
	steps  *vision.StepWriter
}

// New builds a Locator. steps may be nil to disable intermediate image
// dumps.
func New(params config.MarkerParams, log logger.Logger, steps *vision.StepWriter) *Locator {
	return &Locator{params: params, log: log, steps: steps}
}

// Locate segments the marker by color and fits the smallest triangle
// around its silhouette. rectified must be a BGR image as produced by
// the region extraction stage.
func (l *Locator) Locate(rectified gocv.Mat) (geometry.MarkerGeometry, error) {
	mask := l.segment(rectified)
	defer mask.Close()
	l.steps.Save("marker-mask", mask)

	contour, ok := vision.LargestContour(mask)
	if !ok {
		return geometry.MarkerGeometry{}, &vision.SegmentationError{
			Stage:  component,
			Detail: "no pixels in the marker color band",
		}
	}

	triangle, err := geometry.MinEnclosingTriangle(geometry.FromImagePoints(contour))
	if err != nil {
		return geometry.MarkerGeometry{}, &vision.GeometryError{Stage: component, Err: err}
	}

	m := geometry.SplitTip(triangle)
	l.log.Debug(component, "marker located", map[string]interface{}{
		"tip_x": m.Tip.X,
		"tip_y": m.Tip.Y,
	})
	return m, nil
}

// segment thresholds the marker color band in HSV space and closes
// pinholes left by glare on the marker surface.
func (l *Locator) segment(rectified gocv.Mat) gocv.Mat {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(rectified, &hsv, gocv.ColorBGRToHSV)

	low := l.params.HSVLow
	high := l.params.HSVHigh
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(low.H, low.S, low.V, 0),
		gocv.NewScalar(high.H, high.S, high.V, 0),
		&mask,
	)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(l.params.MorphKernel, l.params.MorphKernel))
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
	return mask
}
