package shift

import (
	"context"
)

type ShiftTemplateRepository interface {
	Create(ctx context.Context, template ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string) (ShiftTemplate, error)
	List(ctx context.Context) ([]ShiftTemplate, error)
	Update(ctx context.Context, template ShiftTemplate) error

	// Delete removes the template. Callers must unassign referencing
	// employees in the same transaction.
	Delete(ctx context.Context, id string) error
}
