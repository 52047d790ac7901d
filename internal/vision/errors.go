// Package vision carries the OpenCV plumbing shared by the pipeline
// stages: contour selection, stage error types and the optional
// intermediate image dumps.
package vision

import "fmt"

// SegmentationError reports that a stage's binary mask held no usable
// foreground region, usually because the photo does not show the
// expected scene or the calibration color band misses the marker.
type SegmentationError struct {
	Stage  string
	Detail string
}

func (e *SegmentationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: segmentation failed: %s", e.Stage, e.Detail)
	}
	return fmt.Sprintf("%s: segmentation found no foreground region", e.Stage)
}

// GeometryError reports that a segmented region was found but its shape
// could not be reduced to the primitive the stage needs.
type GeometryError struct {
	Stage string
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}
