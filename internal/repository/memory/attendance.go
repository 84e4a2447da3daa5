package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chronohr/timesheet-backend-go/internal/domain/attendance"
)

// EventRepository is an in-memory attendance event log.
type EventRepository struct {
	mu     sync.RWMutex
	events []attendance.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Seed appends an event to the log.
func (r *EventRepository) Seed(event attendance.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *EventRepository) List(ctx context.Context) ([]attendance.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]attendance.Event, len(r.events))
	copy(events, r.events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (r *EventRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Format("2006-01-02")
	for _, event := range r.events {
		if event.EmployeeID == employeeID && event.Date.Format("2006-01-02") == day {
			return event, nil
		}
	}
	return attendance.Event{}, attendance.ErrNoAttendanceLog
}
