package timesheet

import (
	"context"
)

// TimesheetService defines the computation and approval workflow exposed to
// payroll and UI collaborators.
type TimesheetService interface {
	// Compute runs the segment calculator for one employee-day and stores
	// the result with status computed.
	Compute(ctx context.Context, req ComputeTimesheetRequest) (TimesheetResponse, error)

	// BulkCompute materializes timesheets for every eligible attendance
	// day that has no record yet. Idempotent.
	BulkCompute(ctx context.Context, req BulkComputeRequest) (BulkComputeResponse, error)

	Submit(ctx context.Context, id string) error
	Approve(ctx context.Context, id, approverID string) error
	Reject(ctx context.Context, id, approverID string) error

	// ClearRejected removes a rejected timesheet so the day can be
	// recomputed. Operator-gated; any other status is refused.
	ClearRejected(ctx context.Context, id string) error

	GetPendingApproval(ctx context.Context) ([]TimesheetResponse, error)
	Get(ctx context.Context, id string) (TimesheetResponse, error)
	List(ctx context.Context, filter TimesheetFilter) (ListTimesheetResponse, error)
}
