package employee

import "time"

// Employee is the minimal directory view the timesheet engine needs:
// eligibility and the shift assignment. The full directory lives in an
// external system.
type Employee struct {
	ID              string
	FullName        string
	Active          bool
	ShiftTemplateID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
