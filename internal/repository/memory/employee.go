package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
)

// EmployeeRepository is an in-memory mirror of the employee directory.
type EmployeeRepository struct {
	mu   sync.RWMutex
	byID map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{byID: make(map[string]employee.Employee)}
}

// Seed inserts or replaces a directory entry. Tests and fixtures use it;
// the engine itself never writes employees.
func (r *EmployeeRepository) Seed(emp employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[emp.ID] = emp
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) AssignShift(ctx context.Context, employeeID, shiftTemplateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.byID[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	emp.ShiftTemplateID = &shiftTemplateID
	emp.UpdatedAt = time.Now().UTC()
	r.byID[employeeID] = emp
	return nil
}

func (r *EmployeeRepository) UnassignByShiftTemplate(ctx context.Context, shiftTemplateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, emp := range r.byID {
		if emp.ShiftTemplateID != nil && *emp.ShiftTemplateID == shiftTemplateID {
			emp.ShiftTemplateID = nil
			emp.UpdatedAt = time.Now().UTC()
			r.byID[id] = emp
		}
	}
	return nil
}
