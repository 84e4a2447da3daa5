package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
)

// TimesheetRepository is an in-memory timesheet ledger. It backs tests and
// single-process deployments; the (employee, date) uniqueness invariant is
// enforced with a key index under the same lock as the insert.
type TimesheetRepository struct {
	mu    sync.RWMutex
	byID  map[string]timesheet.Timesheet
	byKey map[timesheet.Key]string
}

func NewTimesheetRepository() *TimesheetRepository {
	return &TimesheetRepository{
		byID:  make(map[string]timesheet.Timesheet),
		byKey: make(map[timesheet.Key]string),
	}
}

func (r *TimesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ts.Key()
	if _, occupied := r.byKey[key]; occupied {
		return timesheet.Timesheet{}, timesheet.ErrDuplicateKey
	}

	if ts.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return timesheet.Timesheet{}, err
		}
		ts.ID = id.String()
	}

	now := time.Now().UTC()
	ts.CreatedAt = now
	ts.UpdatedAt = now

	r.byID[ts.ID] = ts
	r.byKey[key] = ts.ID
	return ts, nil
}

func (r *TimesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts, ok := r.byID[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return ts, nil
}

func (r *TimesheetRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (timesheet.Timesheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := timesheet.Key{EmployeeID: employeeID, Date: date.Format("2006-01-02")}
	id, ok := r.byKey[key]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return r.byID[id], nil
}

func (r *TimesheetRepository) Update(ctx context.Context, ts timesheet.Timesheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[ts.ID]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}

	ts.CreatedAt = stored.CreatedAt
	ts.UpdatedAt = time.Now().UTC()
	r.byID[ts.ID] = ts
	return nil
}

func (r *TimesheetRepository) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]timesheet.Timesheet, 0, len(r.byID))
	for _, ts := range r.byID {
		if filter.EmployeeID != nil && ts.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(ts.Status) != *filter.Status {
			continue
		}
		day := ts.Date.Format("2006-01-02")
		if filter.StartDate != nil && day < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && day > *filter.EndDate {
			continue
		}
		matched = append(matched, ts)
	}

	sortTimesheets(matched)

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []timesheet.Timesheet{}, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *TimesheetRepository) ListByStatus(ctx context.Context, status timesheet.Status) ([]timesheet.Timesheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]timesheet.Timesheet, 0)
	for _, ts := range r.byID {
		if ts.Status == status {
			matched = append(matched, ts)
		}
	}
	sortTimesheets(matched)
	return matched, nil
}

func (r *TimesheetRepository) ExistingKeys(ctx context.Context) (map[timesheet.Key]timesheet.Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make(map[timesheet.Key]timesheet.Status, len(r.byKey))
	for key, id := range r.byKey {
		keys[key] = r.byID[id].Status
	}
	return keys, nil
}

func (r *TimesheetRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts, ok := r.byID[id]
	if !ok {
		return timesheet.ErrTimesheetNotFound
	}
	delete(r.byKey, ts.Key())
	delete(r.byID, id)
	return nil
}
