package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, active, shift_template_id, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Active, &emp.ShiftTemplateID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// AssignShift implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) AssignShift(ctx context.Context, employeeID, shiftTemplateID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET shift_template_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, employeeID, shiftTemplateID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UnassignByShiftTemplate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UnassignByShiftTemplate(ctx context.Context, shiftTemplateID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET shift_template_id = NULL, updated_at = NOW()
		WHERE shift_template_id = $1
	`

	_, err := q.Exec(ctx, query, shiftTemplateID)
	return err
}
