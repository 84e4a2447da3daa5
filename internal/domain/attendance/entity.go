package attendance

import (
	"time"

	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

// EventStatus is the per-day presence status recorded by the attendance
// capture system.
type EventStatus string

const (
	StatusPresent EventStatus = "present"
	StatusAbsent  EventStatus = "absent"
	StatusOnLeave EventStatus = "on_leave"
)

// Event is one day of raw attendance for one employee, produced by the
// external capture system and consumed read-only by the timesheet engine.
// CheckIn and CheckOut are local clock times on the event date; a checkout
// earlier than the check-in means the shift ran past midnight.
type Event struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *timeutil.ClockTime
	CheckOut   *timeutil.ClockTime
	Status     EventStatus
}
