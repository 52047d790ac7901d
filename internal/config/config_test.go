package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calibration.yaml")
	data := []byte(`marker:
  hsv_low:
    h: 40
    s: 80
    v: 80
  hsv_high:
    h: 80
    s: 255
    v: 255
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cal, err := Load(path)
	require.NoError(t, err)

	// Overridden values.
	assert.Equal(t, HSV{H: 40, S: 80, V: 80}, cal.Marker.HSVLow)
	assert.Equal(t, HSV{H: 80, S: 255, V: 255}, cal.Marker.HSVHigh)

	// Untouched values keep their defaults.
	def := Default()
	assert.Equal(t, def.Region, cal.Region)
	assert.Equal(t, def.Marker.MorphKernel, cal.Marker.MorphKernel)
}

func TestLoadRejectsInvalidKernel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calibration.yaml")
	data := []byte(`region:
  blur_kernel: 4
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "blur_kernel")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateInvertedBand(t *testing.T) {
	cal := Default()
	cal.Marker.HSVLow.H = 150
	cal.Marker.HSVHigh.H = 120

	assert.ErrorContains(t, cal.Validate(), "inverted")
}
