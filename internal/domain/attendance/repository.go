package attendance

import (
	"context"
	"time"
)

// EventRepository is the read-only view of the external attendance event log.
type EventRepository interface {
	// List retrieves the full event log, oldest first.
	List(ctx context.Context) ([]Event, error)

	// GetByEmployeeAndDate retrieves the event for one employee on one
	// date. Returns ErrNoAttendanceLog when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Event, error)
}
