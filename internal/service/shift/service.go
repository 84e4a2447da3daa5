package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
	"github.com/chronohr/timesheet-backend-go/internal/domain/shift"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
	"github.com/chronohr/timesheet-backend-go/internal/repository/postgresql"
)

type ShiftServiceImpl struct {
	shiftRepo    shift.ShiftTemplateRepository
	employeeRepo employee.EmployeeRepository

	// db is nil when the service runs on in-memory repositories; template
	// deletion then falls back to sequential calls.
	db *database.DB
}

func NewShiftService(shiftRepo shift.ShiftTemplateRepository, employeeRepo employee.EmployeeRepository, db *database.DB) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		db:           db,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	startTime, _ := timeutil.ParseClock(req.StartTime)
	endTime, _ := timeutil.ParseClock(req.EndTime)

	template := shift.ShiftTemplate{
		Name:                 req.Name,
		StartTime:            startTime,
		EndTime:              endTime,
		GracePeriodMinutes:   req.GracePeriodMinutes,
		BreakDurationMinutes: req.BreakDurationMinutes,
		WorkDays:             req.WorkDays,
	}

	created, err := s.shiftRepo.Create(ctx, template)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNameExists) {
			return shift.ShiftResponse{}, shift.ErrShiftNameExists
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return mapShiftToResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	template, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}
	return mapShiftToResponse(template), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	templates, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, mapShiftToResponse(template))
	}
	return responses, nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	template, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift template: %w", err)
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.StartTime != nil {
		template.StartTime, _ = timeutil.ParseClock(*req.StartTime)
	}
	if req.EndTime != nil {
		template.EndTime, _ = timeutil.ParseClock(*req.EndTime)
	}
	if req.GracePeriodMinutes != nil {
		template.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.BreakDurationMinutes != nil {
		template.BreakDurationMinutes = *req.BreakDurationMinutes
	}
	if len(req.WorkDays) > 0 {
		template.WorkDays = req.WorkDays
	}

	if err := s.shiftRepo.Update(ctx, template); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift template: %w", err)
	}
	return nil
}

// DeleteShift implements shift.ShiftService. Employees referencing the
// template are unassigned in the same transaction, so they fall back to the
// default day shift on their next computation.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift template: %w", err)
	}

	if s.db != nil {
		return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			if err := s.employeeRepo.UnassignByShiftTemplate(txCtx, id); err != nil {
				return fmt.Errorf("failed to unassign employees: %w", err)
			}
			if err := s.shiftRepo.Delete(txCtx, id); err != nil {
				return fmt.Errorf("failed to delete shift template: %w", err)
			}
			return nil
		})
	}

	if err := s.employeeRepo.UnassignByShiftTemplate(ctx, id); err != nil {
		return fmt.Errorf("failed to unassign employees: %w", err)
	}
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shift template: %w", err)
	}
	return nil
}

// AssignShift implements shift.ShiftService.
func (s *ShiftServiceImpl) AssignShift(ctx context.Context, req shift.AssignShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.shiftRepo.GetByID(ctx, req.ShiftTemplateID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift template: %w", err)
	}

	if err := s.employeeRepo.AssignShift(ctx, req.EmployeeID, req.ShiftTemplateID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to assign shift: %w", err)
	}
	return nil
}

// mapShiftToResponse converts a ShiftTemplate entity to ShiftResponse
func mapShiftToResponse(template shift.ShiftTemplate) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                   template.ID,
		Name:                 template.Name,
		StartTime:            template.StartTime.String(),
		EndTime:              template.EndTime.String(),
		GracePeriodMinutes:   template.GracePeriodMinutes,
		BreakDurationMinutes: template.BreakDurationMinutes,
		WorkDays:             template.WorkDays,
		CrossesMidnight:      template.CrossesMidnight(),
		CreatedAt:            template.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:            template.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
