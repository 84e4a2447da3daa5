package shift

import (
	"context"
)

// ShiftService defines business logic for shift template management.
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) error

	// DeleteShift deletes a template and unassigns every employee
	// referencing it.
	DeleteShift(ctx context.Context, id string) error

	// AssignShift assigns a template to an employee.
	AssignShift(ctx context.Context, req AssignShiftRequest) error
}
