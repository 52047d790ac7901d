package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger writes human-readable output to stderr so the final
// POSITION/BEARING lines on stdout stay machine-parseable.
func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	return NewZerolog(consoleWriter, level)
}

// ParseLevel maps a command-line level name onto a zerolog level,
// defaulting to info for anything unrecognized.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	event := z.logger.Info().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	event := z.logger.Warn().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	event := z.logger.Debug().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}
