package vision

import (
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"mapmarker/internal/logger"
)

// StepWriter dumps intermediate stage images to disk for calibration
// work. A nil *StepWriter is valid and discards every save, so stages
// can hold one unconditionally.
type StepWriter struct {
	dir string
	log logger.Logger
	seq int
}

// NewStepWriter creates the output directory and returns a writer into
// it. Saved files are numbered in call order so the directory reads as
// the pipeline's stage sequence.
func NewStepWriter(dir string, log logger.Logger) (*StepWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating step directory %s: %w", dir, err)
	}
	return &StepWriter{dir: dir, log: log}, nil
}

// Save writes img under a sequence-numbered name. Failures are logged
// and swallowed: a broken debug dump must not abort a detection run.
func (w *StepWriter) Save(name string, img gocv.Mat) {
	if w == nil {
		return
	}
	if img.Empty() {
		return
	}
	w.seq++
	path := filepath.Join(w.dir, fmt.Sprintf("%02d-%s.png", w.seq, name))
	if ok := gocv.IMWrite(path, img); !ok {
		w.log.Warning("steps", "failed to write step image", map[string]interface{}{
			"path": path,
		})
		return
	}
	w.log.Debug("steps", "wrote step image", map[string]interface{}{
		"path": path,
	})
}
