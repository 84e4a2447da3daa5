package timesheet

import (
	"github.com/shopspring/decimal"

	"github.com/chronohr/timesheet-backend-go/internal/pkg/validator"
)

// ComputeTimesheetRequest drives one calculator run. CheckIn/CheckOut may be
// omitted, in which case the attendance log supplies them. ShiftStart,
// ShiftEnd and BreakDurationMinutes override the employee's assigned shift
// when all are present; otherwise the assignment (or the default day shift)
// applies.
type ComputeTimesheetRequest struct {
	EmployeeID           string  `json:"employee_id"`
	Date                 string  `json:"date"`
	RuleSetID            string  `json:"rule_set_id"`
	CheckIn              *string `json:"check_in,omitempty"`
	CheckOut             *string `json:"check_out,omitempty"`
	ShiftStart           *string `json:"shift_start,omitempty"`
	ShiftEnd             *string `json:"shift_end,omitempty"`
	BreakDurationMinutes *int    `json:"break_duration_minutes,omitempty"`
}

func (r *ComputeTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.RuleSetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "rule_set_id",
			Message: "rule_set_id is required",
		})
	}

	for field, value := range map[string]*string{
		"check_in":    r.CheckIn,
		"check_out":   r.CheckOut,
		"shift_start": r.ShiftStart,
		"shift_end":   r.ShiftEnd,
	} {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidClock(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid HH:MM clock time",
			})
		}
	}

	if (r.ShiftStart == nil) != (r.ShiftEnd == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start and shift_end must be supplied together",
		})
	}

	if r.BreakDurationMinutes != nil && *r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkComputeRequest struct {
	RuleSetID string `json:"rule_set_id"`
}

func (r *BulkComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RuleSetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "rule_set_id",
			Message: "rule_set_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkComputeResponse struct {
	Count int `json:"count"`
}

type SegmentResponse struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Kind         string `json:"kind"`
	Minutes      int    `json:"minutes"`
	EndsNextDay  bool   `json:"ends_next_day"`
}

type TimesheetResponse struct {
	ID                      string            `json:"id"`
	EmployeeID              string            `json:"employee_id"`
	Date                    string            `json:"date"`
	RuleSetID               string            `json:"rule_set_id"`
	Segments                []SegmentResponse `json:"segments"`
	TotalHours              decimal.Decimal   `json:"total_hours"`
	RegularHours            decimal.Decimal   `json:"regular_hours"`
	OvertimeHours           decimal.Decimal   `json:"overtime_hours"`
	NightDiffHours          decimal.Decimal   `json:"night_diff_hours"`
	LateMinutes             int               `json:"late_minutes"`
	UndertimeMinutes        int               `json:"undertime_minutes"`
	Status                  string            `json:"status"`
	OvertimePendingApproval bool              `json:"overtime_pending_approval"`
	Incomplete              bool              `json:"incomplete"`
	ApprovedBy              *string           `json:"approved_by,omitempty"`
	ApprovedAt              *string           `json:"approved_at,omitempty"`
	CreatedAt               string            `json:"created_at"`
	UpdatedAt               string            `json:"updated_at"`
}

type TimesheetFilter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string // "2006-01-02", inclusive
	EndDate    *string // "2006-01-02", inclusive
	Page       int
	Limit      int
}

type ListTimesheetResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Timesheets []TimesheetResponse `json:"timesheets"`
}
