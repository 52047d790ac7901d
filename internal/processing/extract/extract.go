// Package extract locates the photographed map sheet and rectifies it
// into an axis-aligned image. The stage assumes a light map region on a
// darker background, which Otsu thresholding separates without a tuned
// threshold value.
package extract

import (
	"image"

	"gocv.io/x/gocv"

	"mapmarker/internal/config"
	"mapmarker/internal/geometry"
	"mapmarker/internal/logger"
	"mapmarker/internal/vision"
)

const component = "region-extract"

// Extractor rectifies the map region of a photo.
type Extractor struct {
	params config.RegionParams
	log    logger.Logger
	steps  *vision.StepWriter
}

// New builds an Extractor. steps may be nil to disable intermediate
// image dumps.
func New(params config.RegionParams, log logger.Logger, steps *vision.StepWriter) *Extractor {
	return &Extractor{params: params, log: log, steps: steps}
}

// Extract returns the rectified map region of src as a new color Mat.
// The caller owns the returned Mat and must close it. src is not
// modified.
func (e *Extractor) Extract(src gocv.Mat) (gocv.Mat, error) {
	mask := e.segment(src)
	defer mask.Close()
	e.steps.Save("region-mask", mask)

	contour, ok := vision.LargestContour(mask)
	if !ok {
		return gocv.NewMat(), &vision.SegmentationError{Stage: component}
	}

	rect := vision.MinAreaRect(contour)
	e.log.Debug(component, "map silhouette found", map[string]interface{}{
		"contour_points": len(contour),
		"angle":          rect.Angle,
	})

	rotated, rotatedMask := e.deskew(src, mask, rect.Angle)
	defer rotated.Close()
	defer rotatedMask.Close()
	e.steps.Save("region-deskewed", rotated)

	// The silhouette moved during deskewing, so trace it again on the
	// rotated mask before measuring corners.
	contour, ok = vision.LargestContour(rotatedMask)
	if !ok {
		return gocv.NewMat(), &vision.SegmentationError{Stage: component, Detail: "silhouette lost after deskewing"}
	}

	corners, err := geometry.OrderCorners(geometry.FromImagePoints(contour))
	if err != nil {
		return gocv.NewMat(), &vision.GeometryError{Stage: component, Err: err}
	}
	bounds := vision.BoundingRect(contour)

	out := e.rectify(rotated, corners, bounds)
	e.steps.Save("region-rectified", out)
	e.log.Debug(component, "map region rectified", map[string]interface{}{
		"width":  out.Cols(),
		"height": out.Rows(),
	})
	return out, nil
}

// segment produces a binary mask of the map region: grayscale, blur,
// Otsu threshold, then a dilate/erode pair to seal gaps where map
// artwork touches the sheet border.
func (e *Extractor) segment(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := e.params.BlurKernel
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	mask := gocv.NewMat()
	gocv.Threshold(blurred, &mask, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(e.params.MorphKernel, e.params.MorphKernel))
	defer kernel.Close()
	for i := 0; i < e.params.MorphIterations; i++ {
		gocv.Dilate(mask, &mask, kernel)
	}
	for i := 0; i < e.params.MorphIterations; i++ {
		gocv.Erode(mask, &mask, kernel)
	}
	return mask
}

// deskew rotates the photo and its mask around the image center by the
// tilt the rotated bounding rectangle reported.
func (e *Extractor) deskew(src, mask gocv.Mat, angle float64) (gocv.Mat, gocv.Mat) {
	center := image.Pt(src.Cols()/2, src.Rows()/2)
	size := image.Pt(src.Cols(), src.Rows())

	rotation := gocv.GetRotationMatrix2D(center, angle, 1.0)
	defer rotation.Close()

	rotated := gocv.NewMat()
	gocv.WarpAffine(src, &rotated, rotation, size)
	rotatedMask := gocv.NewMat()
	gocv.WarpAffine(mask, &rotatedMask, rotation, size)
	return rotated, rotatedMask
}

// rectify crops the deskewed photo to the silhouette bounds and warps
// the four detected corners onto the corners of the crop, removing the
// residual perspective distortion.
func (e *Extractor) rectify(rotated gocv.Mat, corners geometry.Quadrilateral, bounds image.Rectangle) gocv.Mat {
	region := rotated.Region(bounds)
	cropped := region.Clone()
	region.Close()
	defer cropped.Close()

	w := float32(bounds.Dx())
	h := float32(bounds.Dy())
	offset := geometry.Pt(bounds.Min)

	srcPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		toPoint2f(corners.TopLeft, offset),
		toPoint2f(corners.TopRight, offset),
		toPoint2f(corners.BottomRight, offset),
		toPoint2f(corners.BottomLeft, offset),
	})
	defer srcPts.Close()
	dstPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
	})
	defer dstPts.Close()

	transform := gocv.GetPerspectiveTransform2f(srcPts, dstPts)
	defer transform.Close()

	out := gocv.NewMat()
	gocv.WarpPerspective(cropped, &out, transform, image.Pt(bounds.Dx(), bounds.Dy()))
	return out
}

func toPoint2f(p, offset geometry.Point) gocv.Point2f {
	return gocv.Point2f{X: float32(p.X - offset.X), Y: float32(p.Y - offset.Y)}
}
