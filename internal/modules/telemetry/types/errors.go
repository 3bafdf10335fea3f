package types

import "errors"

// Failure classes of the telemetry core. The controller maps them to HTTP
// statuses; nothing below the controller knows about HTTP.
var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrDeviceExists     = errors.New("device name already exists")
	ErrLocationExists   = errors.New("location name already exists")
)

// ValidationError marks malformed or missing input, as opposed to input that
// references an entity which does not exist.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
