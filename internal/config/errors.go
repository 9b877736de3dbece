package config

import "fmt"

// ConfigurationError reports a problem found before any input file is
// processed: a bad option value, an unknown sweep profile, a missing solver.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid configuration: %s", e.Reason)
	if e.Field != "" {
		msg = fmt.Sprintf("invalid configuration for %s %q: %s", e.Field, e.Value, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Errorf builds a ConfigurationError for field/value with a formatted reason.
func Errorf(field, value, format string, a ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: fmt.Sprintf(format, a...)}
}
