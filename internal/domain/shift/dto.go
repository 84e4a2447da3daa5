package shift

import (
	"github.com/chronohr/timesheet-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name                 string `json:"name"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	GracePeriodMinutes   int    `json:"grace_period_minutes"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
	WorkDays             []int  `json:"work_days"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := validator.IsValidClock(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid HH:MM clock time",
		})
	}

	if _, ok := validator.IsValidClock(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid HH:MM clock time",
		})
	}

	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}

	if r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not be negative",
		})
	}

	if len(r.WorkDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_days",
			Message: "at least one work day is required",
		})
	}
	for _, day := range r.WorkDays {
		if !validator.IsValidWorkDay(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "work_days",
				Message: "work days must be between 1 (Monday) and 7 (Sunday)",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID                   string  `json:"-"`
	Name                 *string `json:"name,omitempty"`
	StartTime            *string `json:"start_time,omitempty"`
	EndTime              *string `json:"end_time,omitempty"`
	GracePeriodMinutes   *int    `json:"grace_period_minutes,omitempty"`
	BreakDurationMinutes *int    `json:"break_duration_minutes,omitempty"`
	WorkDays             []int   `json:"work_days,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.StartTime != nil {
		if _, ok := validator.IsValidClock(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be a valid HH:MM clock time",
			})
		}
	}

	if r.EndTime != nil {
		if _, ok := validator.IsValidClock(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid HH:MM clock time",
			})
		}
	}

	if r.GracePeriodMinutes != nil && *r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}

	if r.BreakDurationMinutes != nil && *r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not be negative",
		})
	}

	for _, day := range r.WorkDays {
		if !validator.IsValidWorkDay(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "work_days",
				Message: "work days must be between 1 (Monday) and 7 (Sunday)",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignShiftRequest struct {
	EmployeeID      string `json:"employee_id"`
	ShiftTemplateID string `json:"shift_template_id"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftTemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_template_id",
			Message: "shift_template_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	GracePeriodMinutes   int    `json:"grace_period_minutes"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
	WorkDays             []int  `json:"work_days"`
	CrossesMidnight      bool   `json:"crosses_midnight"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}
