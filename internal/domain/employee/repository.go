package employee

import (
	"context"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// AssignShift sets the employee's shift template.
	AssignShift(ctx context.Context, employeeID, shiftTemplateID string) error

	// UnassignByShiftTemplate clears the assignment of every employee
	// referencing the given template. Used when a template is deleted.
	UnassignByShiftTemplate(ctx context.Context, shiftTemplateID string) error
}
