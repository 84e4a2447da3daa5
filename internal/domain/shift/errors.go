package shift

import "errors"

// Shift template domain errors
var (
	ErrShiftNotFound      = errors.New("shift template not found")
	ErrShiftNameExists    = errors.New("shift template with this name already exists")
	ErrInvalidRequestData = errors.New("invalid request data")
)
