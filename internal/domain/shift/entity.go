package shift

import (
	"time"

	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

// ShiftTemplate is a named scheduled work window. Employees reference a
// template through their shift assignment; unassigned employees fall back
// to the default day shift.
type ShiftTemplate struct {
	ID                   string
	Name                 string
	StartTime            timeutil.ClockTime
	EndTime              timeutil.ClockTime
	GracePeriodMinutes   int
	BreakDurationMinutes int
	WorkDays             []int // 1=Monday, ..., 7=Sunday
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CrossesMidnight reports whether the shift ends on the next calendar day.
func (s ShiftTemplate) CrossesMidnight() bool {
	return s.EndTime <= s.StartTime
}

// Default shift used when an employee has no assignment: 08:00-17:00 with a
// one hour break, Monday through Friday.
var DefaultShift = ShiftTemplate{
	Name:                 "Default Day Shift",
	StartTime:            8 * 60,
	EndTime:              17 * 60,
	GracePeriodMinutes:   0,
	BreakDurationMinutes: 60,
	WorkDays:             []int{1, 2, 3, 4, 5},
}
