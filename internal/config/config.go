// Package config holds the tunable constants of the detection pipeline.
// The defaults were calibrated against the reference capture rig; a
// different camera or marker color only needs a small override file, not
// a code change.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// HSV is an OpenCV-convention color bound: hue in [0, 179], saturation
// and value in [0, 255].
type HSV struct {
	H float64 `mapstructure:"h"`
	S float64 `mapstructure:"s"`
	V float64 `mapstructure:"v"`
}

// RegionParams tunes the map region extraction stage.
type RegionParams struct {
	// BlurKernel is the Gaussian blur aperture applied before Otsu
	// thresholding. Must be odd.
	BlurKernel int `mapstructure:"blur_kernel"`
	// MorphKernel is the square structuring element edge for the
	// dilate/erode passes that close gaps in the map silhouette.
	MorphKernel int `mapstructure:"morph_kernel"`
	// MorphIterations is how many dilate passes run before the same
	// number of erode passes.
	MorphIterations int `mapstructure:"morph_iterations"`
}

// MarkerParams tunes the marker isolation stage.
type MarkerParams struct {
	// MorphKernel is the structuring element edge for the closing pass
	// that fills pinholes in the marker mask.
	MorphKernel int `mapstructure:"morph_kernel"`
	// HSVLow and HSVHigh bound the marker color band. The defaults
	// select the blue marker of the reference rig; the band must not
	// wrap around the hue axis.
	HSVLow  HSV `mapstructure:"hsv_low"`
	HSVHigh HSV `mapstructure:"hsv_high"`
}

// Calibration is the full parameter set of the pipeline.
type Calibration struct {
	Region RegionParams `mapstructure:"region"`
	Marker MarkerParams `mapstructure:"marker"`
}

// Default returns the reference calibration.
func Default() Calibration {
	return Calibration{
		Region: RegionParams{
			BlurKernel:      5,
			MorphKernel:     5,
			MorphIterations: 2,
		},
		Marker: MarkerParams{
			MorphKernel: 5,
			HSVLow:      HSV{H: 100, S: 120, V: 70},
			HSVHigh:     HSV{H: 130, S: 255, V: 255},
		},
	}
}

// Load reads a calibration override file. Keys absent from the file keep
// their default values, so an override only needs to name what changed.
func Load(path string) (Calibration, error) {
	cal := Default()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Calibration{}, fmt.Errorf("reading calibration %s: %w", path, err)
	}
	if err := v.Unmarshal(&cal); err != nil {
		return Calibration{}, fmt.Errorf("parsing calibration %s: %w", path, err)
	}
	if err := cal.Validate(); err != nil {
		return Calibration{}, fmt.Errorf("calibration %s: %w", path, err)
	}
	return cal, nil
}

// Validate rejects parameter combinations OpenCV would choke on.
func (c Calibration) Validate() error {
	if c.Region.BlurKernel < 1 || c.Region.BlurKernel%2 == 0 {
		return fmt.Errorf("region.blur_kernel must be a positive odd number, got %d", c.Region.BlurKernel)
	}
	if c.Region.MorphKernel < 1 {
		return fmt.Errorf("region.morph_kernel must be positive, got %d", c.Region.MorphKernel)
	}
	if c.Region.MorphIterations < 1 {
		return fmt.Errorf("region.morph_iterations must be positive, got %d", c.Region.MorphIterations)
	}
	if c.Marker.MorphKernel < 1 {
		return fmt.Errorf("marker.morph_kernel must be positive, got %d", c.Marker.MorphKernel)
	}
	if err := validateBand(c.Marker.HSVLow, c.Marker.HSVHigh); err != nil {
		return err
	}
	return nil
}

func validateBand(low, high HSV) error {
	if low.H < 0 || high.H > 179 {
		return fmt.Errorf("marker hue bounds must lie in [0, 179], got [%g, %g]", low.H, high.H)
	}
	if low.S < 0 || high.S > 255 || low.V < 0 || high.V > 255 {
		return fmt.Errorf("marker saturation and value bounds must lie in [0, 255]")
	}
	if low.H > high.H || low.S > high.S || low.V > high.V {
		return fmt.Errorf("marker color band is inverted: low %+v exceeds high %+v", low, high)
	}
	return nil
}
