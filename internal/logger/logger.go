package logger

// Logger is the structured logging surface used by the pipeline stages.
// Each call names the component emitting the entry so stage output can be
// filtered when debugging a calibration.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// Nop discards everything. Used by tests that exercise stages directly.
type Nop struct{}

func (Nop) Debug(string, string, map[string]interface{}) {}

func (Nop) Info(string, string, map[string]interface{}) {}

func (Nop) Warning(string, string, map[string]interface{}) {}

func (Nop) Error(string, error, map[string]interface{}) {}
