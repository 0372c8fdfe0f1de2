package services

import "fmt"

// ConfigurationError means the engine was constructed with settings or a
// corpus it cannot serve (bad weights, empty vocabulary). Fatal at startup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ValidationError rejects a single inbound record, typically a rating event
// with an out-of-range value. The record is dropped; nothing else changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TrainingError means a fit call could not produce a usable model. The
// previously trained model, if any, keeps serving.
type TrainingError struct {
	Reason string
}

func (e *TrainingError) Error() string {
	return "training failed: " + e.Reason
}
