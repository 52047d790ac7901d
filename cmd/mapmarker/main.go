package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"mapmarker/internal/config"
	"mapmarker/internal/logger"
	"mapmarker/internal/pipeline"
	"mapmarker/internal/processing/bearing"
	"mapmarker/internal/vision"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mapmarker", flag.ExitOnError)
	configPath := fs.String("config", "", "calibration override file (yaml, toml or json)")
	showSteps := fs.Bool("steps", false, "write intermediate stage images")
	stepsDir := fs.String("steps-dir", "steps", "directory for intermediate stage images")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: mapmarker [flags] IMAGE\n\n")
		fmt.Fprintf(fs.Output(), "Detects the map region in a photo and reports the position and\n")
		fmt.Fprintf(fs.Output(), "compass bearing of the direction marker on it.\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	log := logger.NewConsoleLogger(logger.ParseLevel(*logLevel))

	cal := config.Default()
	if *configPath != "" {
		var err error
		cal, err = config.Load(*configPath)
		if err != nil {
			log.Error("main", err, nil)
			return 1
		}
	}

	coord, err := pipeline.New(cal, log, pipeline.Options{
		ShowSteps: *showSteps,
		StepsDir:  *stepsDir,
	})
	if err != nil {
		log.Error("main", err, nil)
		return 1
	}

	result, err := coord.Run(fs.Arg(0))
	if err != nil {
		log.Error("main", err, map[string]interface{}{
			"stage": failedStage(err),
		})
		return 1
	}

	fmt.Printf("POSITION %.3f %.3f\n", result.XPos, result.YPos)
	fmt.Printf("BEARING %.1f\n", result.Bearing)
	return 0
}

// failedStage names the pipeline stage an error came from, for the
// final log line.
func failedStage(err error) string {
	var seg *vision.SegmentationError
	if errors.As(err, &seg) {
		return seg.Stage
	}
	var geo *vision.GeometryError
	if errors.As(err, &geo) {
		return geo.Stage
	}
	if errors.Is(err, bearing.ErrBadDimensions) || errors.Is(err, bearing.ErrNoDirection) {
		return "bearing"
	}
	return "load"
}
