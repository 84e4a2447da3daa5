package timesheet

import "errors"

// Timesheet domain errors. All are recoverable conditions reported to the
// caller; none are process-fatal.
var (
	// Computation errors
	ErrMissingCheckIn        = errors.New("no check-in recorded for the date")
	ErrCheckOutBeforeCheckIn = errors.New("check-out precedes check-in on a non-overnight shift")
	ErrDuplicateKey          = errors.New("a timesheet already exists for this employee and date")

	// Workflow errors
	ErrInvalidTransition = errors.New("invalid timesheet status transition")
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrNotRejected       = errors.New("only rejected timesheets can be cleared")
)
