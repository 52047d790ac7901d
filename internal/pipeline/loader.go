package pipeline

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// loadImage reads a photo from disk and decodes it as a BGR Mat. The
// caller owns the returned Mat.
func loadImage(path string) (gocv.Mat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("reading image: %w", err)
	}

	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decoding image %s: %w", path, err)
	}
	if img.Empty() {
		img.Close()
		return gocv.NewMat(), fmt.Errorf("decoding image %s: empty or unsupported format", path)
	}
	return img, nil
}
