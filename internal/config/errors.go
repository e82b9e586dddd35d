package config

import "errors"

// Configuration errors.
var (
	// ErrInvalidDuration indicates a negative animation duration or tick interval.
	ErrInvalidDuration = errors.New("config: duration must not be negative")

	// ErrInvalidDistance indicates a negative minimum scroll distance.
	ErrInvalidDistance = errors.New("config: minimum scroll distance must not be negative")

	// ErrUnknownEasing indicates an easing name missing from the registry.
	ErrUnknownEasing = errors.New("config: unknown easing")

	// ErrInvalidQoS indicates an MQTT quality of service outside 0..2.
	ErrInvalidQoS = errors.New("config: mqtt qos must be 0, 1 or 2")
)

// FieldError wraps a validation error with the offending key.
type FieldError struct {
	Field   string
	Wrapped error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Wrapped.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}
