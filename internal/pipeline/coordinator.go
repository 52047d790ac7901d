// Package pipeline wires the processing stages into a single run over
// one photo: load, rectify the map region, locate the marker and turn
// its geometry into a position and bearing.
package pipeline

import (
	"time"

	"mapmarker/internal/config"
	"mapmarker/internal/logger"
	"mapmarker/internal/processing/bearing"
	"mapmarker/internal/processing/extract"
	"mapmarker/internal/processing/marker"
	"mapmarker/internal/vision"
)

const component = "pipeline"

// Options selects run-time behavior that is not part of the
// calibration.
type Options struct {
	// ShowSteps writes each stage's intermediate image into StepsDir.
	ShowSteps bool
	// StepsDir is the dump directory; ignored unless ShowSteps is set.
	StepsDir string
}

// Coordinator owns the stage instances and runs them in order.
type Coordinator struct {
	log       logger.Logger
	extractor *extract.Extractor
	locator   *marker.Locator
}

// New builds a Coordinator for the given calibration.
func New(cal config.Calibration, log logger.Logger, opts Options) (*Coordinator, error) {
	var steps *vision.StepWriter
	if opts.ShowSteps {
		var err error
		steps, err = vision.NewStepWriter(opts.StepsDir, log)
		if err != nil {
			return nil, err
		}
	}

	return &Coordinator{
		log:       log,
		extractor: extract.New(cal.Region, log, steps),
		locator:   marker.New(cal.Marker, log, steps),
	}, nil
}

// Run processes one photo from disk and returns the marker position and
// bearing on the rectified map.
func (c *Coordinator) Run(path string) (bearing.Result, error) {
	start := time.Now()

	img, err := loadImage(path)
	if err != nil {
		return bearing.Result{}, err
	}
	defer img.Close()

	c.log.Info(component, "image loaded", map[string]interface{}{
		"path":   path,
		"width":  img.Cols(),
		"height": img.Rows(),
	})

	rectified, err := c.extractor.Extract(img)
	if err != nil {
		return bearing.Result{}, err
	}
	defer rectified.Close()

	m, err := c.locator.Locate(rectified)
	if err != nil {
		return bearing.Result{}, err
	}

	result, err := bearing.Compute(m, rectified.Cols(), rectified.Rows())
	if err != nil {
		return bearing.Result{}, err
	}

	c.log.Info(component, "run complete", map[string]interface{}{
		"x_pos":       result.XPos,
		"y_pos":       result.YPos,
		"bearing":     result.Bearing,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result, nil
}
