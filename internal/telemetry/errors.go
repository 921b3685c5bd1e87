package telemetry

import "fmt"

// ErrorMissingEnvVariable error for missing environment variable.
type ErrorMissingEnvVariable struct {
	Vars []string
}

func (e *ErrorMissingEnvVariable) Error() string {
	return fmt.Sprintf("missing environment variable: %v", e.Vars)
}

// ErrorInvalidTraceParent is returned when the TRACEPARENT value can not be parsed.
type ErrorInvalidTraceParent struct {
	Value string
}

func (e *ErrorInvalidTraceParent) Error() string {
	return fmt.Sprintf("invalid TRACEPARENT value %s", e.Value)
}
