package pipeline

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"mapmarker/internal/config"
	"mapmarker/internal/logger"
)

// writeScenePhoto composes a synthetic photo: a light square map sheet
// rotated by deg on a dark background, with a blue arrow on it pointing
// up in sheet-local coordinates. Returns the file path.
func writeScenePhoto(t *testing.T, deg float64) string {
	t.Helper()

	const size = 500
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(25, 25, 25, 0), size, size, gocv.MatTypeCV8UC3)
	defer img.Close()

	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	rotate := func(x, y float64) image.Point {
		return image.Pt(
			int(math.Round(size/2+x*cos-y*sin)),
			int(math.Round(size/2+x*sin+y*cos)),
		)
	}

	sheet := []image.Point{
		rotate(-150, -150), rotate(150, -150), rotate(150, 150), rotate(-150, 150),
	}
	sheetPts := gocv.NewPointsVectorFromPoints([][]image.Point{sheet})
	defer sheetPts.Close()
	gocv.FillPoly(&img, sheetPts, color.RGBA{R: 235, G: 235, B: 235, A: 255})

	arrow := []image.Point{rotate(-25, 60), rotate(25, 60), rotate(0, -60)}
	arrowPts := gocv.NewPointsVectorFromPoints([][]image.Point{arrow})
	defer arrowPts.Close()
	gocv.FillPoly(&img, arrowPts, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "scene.png")
	require.True(t, gocv.IMWrite(path, img))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	path := writeScenePhoto(t, 9)

	coord, err := New(config.Default(), logger.Nop{}, Options{})
	require.NoError(t, err)

	result, err := coord.Run(path)
	require.NoError(t, err)

	// The tip sits 60px from the center of the 300px sheet. Deskewing
	// recovers orientation only up to a quarter turn, so compare the
	// normalized distance from the center instead of raw coordinates.
	dist := math.Hypot(result.XPos-0.5, result.YPos-0.5)
	assert.InDelta(t, 0.2, dist, 0.05)

	// Deskewing recovers axis alignment only up to a quarter turn, so
	// the bearing is a multiple of 90 for an arrow drawn pointing up.
	assert.GreaterOrEqual(t, result.Bearing, 0.0)
	assert.Less(t, result.Bearing, 360.0)
	quarter := math.Mod(result.Bearing, 90)
	if quarter > 45 {
		quarter = 90 - quarter
	}
	assert.Less(t, quarter, 6.0)
}

func TestRunWritesSteps(t *testing.T) {
	path := writeScenePhoto(t, 5)
	stepsDir := filepath.Join(t.TempDir(), "steps")

	coord, err := New(config.Default(), logger.Nop{}, Options{
		ShowSteps: true,
		StepsDir:  stepsDir,
	})
	require.NoError(t, err)

	_, err = coord.Run(path)
	require.NoError(t, err)

	entries, err := os.ReadDir(stepsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestRunMissingFile(t *testing.T) {
	coord, err := New(config.Default(), logger.Nop{}, Options{})
	require.NoError(t, err)

	_, err = coord.Run(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRunUnreadableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	coord, err := New(config.Default(), logger.Nop{}, Options{})
	require.NoError(t, err)

	_, err = coord.Run(path)
	assert.Error(t, err)
}
