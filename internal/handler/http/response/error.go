package response

import (
	"errors"
	"net/http"

	"github.com/chronohr/timesheet-backend-go/internal/domain/attendance"
	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/domain/shift"
	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timesheet computation errors
	case errors.Is(err, timesheet.ErrMissingCheckIn):
		BadRequest(w, "No check-in recorded for the date", nil)
	case errors.Is(err, timesheet.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out precedes check-in on a non-overnight shift", nil)
	case errors.Is(err, attendance.ErrNoAttendanceLog):
		NotFound(w, "No attendance event for employee and date")

	// Timesheet workflow errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrDuplicateKey):
		Conflict(w, "A timesheet already exists for this employee and date")
	case errors.Is(err, timesheet.ErrInvalidTransition):
		Conflict(w, "Invalid timesheet status transition")
	case errors.Is(err, timesheet.ErrNotRejected):
		Conflict(w, "Only rejected timesheets can be cleared")

	// Rule set errors
	case errors.Is(err, ruleset.ErrRuleSetNotFound):
		NotFound(w, "Attendance rule set not found")
	case errors.Is(err, ruleset.ErrRuleSetNameExists):
		Conflict(w, "Attendance rule set name already exists")
	case errors.Is(err, ruleset.ErrRuleSetDeleted):
		Conflict(w, "Attendance rule set has been deleted")

	// Shift errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift template name already exists")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is not active")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
