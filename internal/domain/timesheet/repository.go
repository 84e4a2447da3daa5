package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository is the ledger's persistence contract. Implementations
// must guarantee at most one record per (EmployeeID, Date).
type TimesheetRepository interface {
	// Create inserts a new record. Returns ErrDuplicateKey when any
	// record, terminal or not, already occupies the key.
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)

	GetByID(ctx context.Context, id string) (Timesheet, error)

	// GetByEmployeeAndDate returns ErrTimesheetNotFound when the slot is
	// empty.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Timesheet, error)

	// Update persists a status transition. The computed hour buckets are
	// immutable after creation.
	Update(ctx context.Context, ts Timesheet) error

	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)

	ListByStatus(ctx context.Context, status Status) ([]Timesheet, error)

	// ExistingKeys returns every occupied key with its current status.
	// Bulk compute uses it to skip already-materialized days.
	ExistingKeys(ctx context.Context) (map[Key]Status, error)

	// Delete removes a record. Only the service uses it, and only for the
	// operator-gated clearing of rejected records.
	Delete(ctx context.Context, id string) error
}
