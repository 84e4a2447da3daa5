package ruleset

import (
	"github.com/chronohr/timesheet-backend-go/internal/pkg/validator"
)

type CreateRuleSetRequest struct {
	Name                     string  `json:"name"`
	StandardHoursPerDay      float64 `json:"standard_hours_per_day"`
	GraceMinutes             int     `json:"grace_minutes"`
	RoundingPolicy           string  `json:"rounding_policy"`
	OvertimeRequiresApproval bool    `json:"overtime_requires_approval"`
	NightDiffStart           string  `json:"night_diff_start"`
	NightDiffEnd             string  `json:"night_diff_end"`
	HolidayMultiplier        float64 `json:"holiday_multiplier"`
}

func (r *CreateRuleSetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.StandardHoursPerDay <= 0 || r.StandardHoursPerDay > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_hours_per_day",
			Message: "standard_hours_per_day must be between 0 and 24",
		})
	}

	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if !validator.IsInSlice(r.RoundingPolicy, RoundingPolicyValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "rounding_policy",
			Message: "rounding_policy must be one of none, nearest_15, nearest_30",
		})
	}

	if _, ok := validator.IsValidClock(r.NightDiffStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "night_diff_start",
			Message: "night_diff_start must be a valid HH:MM clock time",
		})
	}

	if _, ok := validator.IsValidClock(r.NightDiffEnd); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "night_diff_end",
			Message: "night_diff_end must be a valid HH:MM clock time",
		})
	}

	if r.HolidayMultiplier < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_multiplier",
			Message: "holiday_multiplier must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRuleSetRequest struct {
	ID                       string   `json:"-"`
	Name                     *string  `json:"name,omitempty"`
	StandardHoursPerDay      *float64 `json:"standard_hours_per_day,omitempty"`
	GraceMinutes             *int     `json:"grace_minutes,omitempty"`
	RoundingPolicy           *string  `json:"rounding_policy,omitempty"`
	OvertimeRequiresApproval *bool    `json:"overtime_requires_approval,omitempty"`
	NightDiffStart           *string  `json:"night_diff_start,omitempty"`
	NightDiffEnd             *string  `json:"night_diff_end,omitempty"`
	HolidayMultiplier        *float64 `json:"holiday_multiplier,omitempty"`
}

func (r *UpdateRuleSetRequest) Validate() error {
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

	if r.StandardHoursPerDay != nil && (*r.StandardHoursPerDay <= 0 || *r.StandardHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_hours_per_day",
			Message: "standard_hours_per_day must be between 0 and 24",
		})
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if r.RoundingPolicy != nil && !validator.IsInSlice(*r.RoundingPolicy, RoundingPolicyValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "rounding_policy",
			Message: "rounding_policy must be one of none, nearest_15, nearest_30",
		})
	}

	if r.NightDiffStart != nil {
		if _, ok := validator.IsValidClock(*r.NightDiffStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "night_diff_start",
				Message: "night_diff_start must be a valid HH:MM clock time",
			})
		}
	}

	if r.NightDiffEnd != nil {
		if _, ok := validator.IsValidClock(*r.NightDiffEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "night_diff_end",
				Message: "night_diff_end must be a valid HH:MM clock time",
			})
		}
	}

	if r.HolidayMultiplier != nil && *r.HolidayMultiplier < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_multiplier",
			Message: "holiday_multiplier must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RuleSetResponse struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	StandardHoursPerDay      float64 `json:"standard_hours_per_day"`
	GraceMinutes             int     `json:"grace_minutes"`
	RoundingPolicy           string  `json:"rounding_policy"`
	OvertimeRequiresApproval bool    `json:"overtime_requires_approval"`
	NightDiffStart           string  `json:"night_diff_start"`
	NightDiffEnd             string  `json:"night_diff_end"`
	HolidayMultiplier        float64 `json:"holiday_multiplier"`
	CreatedAt                string  `json:"created_at"`
	UpdatedAt                string  `json:"updated_at"`
}
