package attendance

import "errors"

var (
	// ErrNoAttendanceLog is returned when no event exists for an
	// employee and date.
	ErrNoAttendanceLog = errors.New("no attendance event for employee and date")
)
