package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chronohr/timesheet-backend-go/internal/domain/attendance"
	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/domain/shift"
	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

type TimesheetServiceImpl struct {
	timesheetRepo  timesheet.TimesheetRepository
	rulesetRepo    ruleset.RuleSetRepository
	shiftRepo      shift.ShiftTemplateRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.EventRepository
	keys           *keyLock
}

func NewTimesheetService(
	timesheetRepo timesheet.TimesheetRepository,
	rulesetRepo ruleset.RuleSetRepository,
	shiftRepo shift.ShiftTemplateRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.EventRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		timesheetRepo:  timesheetRepo,
		rulesetRepo:    rulesetRepo,
		shiftRepo:      shiftRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		keys:           newKeyLock(),
	}
}

// Compute implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Compute(ctx context.Context, req timesheet.ComputeTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	rules, err := s.resolveRuleSet(ctx, req.RuleSetID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	checkIn, checkOut, err := s.resolveTimes(ctx, req, date)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	template, err := s.resolveShift(ctx, req.EmployeeID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	shiftStart := template.StartTime
	shiftEnd := template.EndTime
	breakMinutes := template.BreakDurationMinutes
	if req.ShiftStart != nil && req.ShiftEnd != nil {
		shiftStart, _ = timeutil.ParseClock(*req.ShiftStart)
		shiftEnd, _ = timeutil.ParseClock(*req.ShiftEnd)
	}
	if req.BreakDurationMinutes != nil {
		breakMinutes = *req.BreakDurationMinutes
	}

	key := timesheet.Key{EmployeeID: req.EmployeeID, Date: req.Date}
	unlock := s.keys.Lock(key)
	defer unlock()

	_, err = s.timesheetRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err == nil {
		return timesheet.TimesheetResponse{}, timesheet.ErrDuplicateKey
	}
	if !errors.Is(err, timesheet.ErrTimesheetNotFound) {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to check existing timesheet: %w", err)
	}

	ts, err := Calculate(CalcInput{
		EmployeeID:   req.EmployeeID,
		Date:         date,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		ShiftStart:   shiftStart,
		ShiftEnd:     shiftEnd,
		BreakMinutes: breakMinutes,
	}, rules)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	created, err := s.timesheetRepo.Create(ctx, ts)
	if err != nil {
		if errors.Is(err, timesheet.ErrDuplicateKey) {
			return timesheet.TimesheetResponse{}, timesheet.ErrDuplicateKey
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return mapTimesheetToResponse(created), nil
}

// resolveRuleSet loads a rule set for a new computation. Soft-deleted rule
// sets keep resolving for stored timesheets, but new computations refuse
// them.
func (s *TimesheetServiceImpl) resolveRuleSet(ctx context.Context, id string) (ruleset.AttendanceRuleSet, error) {
	rules, err := s.rulesetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleset.ErrRuleSetNotFound) {
			return ruleset.AttendanceRuleSet{}, ruleset.ErrRuleSetNotFound
		}
		return ruleset.AttendanceRuleSet{}, fmt.Errorf("failed to get rule set: %w", err)
	}
	if rules.DeletedAt != nil {
		return ruleset.AttendanceRuleSet{}, ruleset.ErrRuleSetDeleted
	}
	return rules, nil
}

// resolveTimes picks the check-in/out pair: explicit request values win,
// everything else comes from the attendance event log.
func (s *TimesheetServiceImpl) resolveTimes(ctx context.Context, req timesheet.ComputeTimesheetRequest, date time.Time) (*timeutil.ClockTime, *timeutil.ClockTime, error) {
	var checkIn, checkOut *timeutil.ClockTime

	if req.CheckIn != nil {
		c, _ := timeutil.ParseClock(*req.CheckIn)
		checkIn = &c
	}
	if req.CheckOut != nil {
		c, _ := timeutil.ParseClock(*req.CheckOut)
		checkOut = &c
	}

	if checkIn != nil {
		if checkOut == nil {
			// The log may still carry the checkout for that day.
			event, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
			if err == nil {
				checkOut = event.CheckOut
			} else if !errors.Is(err, attendance.ErrNoAttendanceLog) {
				return nil, nil, fmt.Errorf("failed to get attendance event: %w", err)
			}
		}
		return checkIn, checkOut, nil
	}

	event, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrNoAttendanceLog) {
			return nil, nil, attendance.ErrNoAttendanceLog
		}
		return nil, nil, fmt.Errorf("failed to get attendance event: %w", err)
	}

	checkIn = event.CheckIn
	if checkOut == nil {
		checkOut = event.CheckOut
	}
	return checkIn, checkOut, nil
}

// resolveShift returns the employee's assigned shift template, falling back
// to the default day shift when the employee is unknown to the directory or
// has no assignment.
func (s *TimesheetServiceImpl) resolveShift(ctx context.Context, employeeID string) (shift.ShiftTemplate, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.DefaultShift, nil
		}
		return shift.ShiftTemplate{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if emp.ShiftTemplateID == nil {
		return shift.DefaultShift, nil
	}

	template, err := s.shiftRepo.GetByID(ctx, *emp.ShiftTemplateID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.DefaultShift, nil
		}
		return shift.ShiftTemplate{}, fmt.Errorf("failed to get shift template: %w", err)
	}
	return template, nil
}

// BulkCompute implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) BulkCompute(ctx context.Context, req timesheet.BulkComputeRequest) (timesheet.BulkComputeResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BulkComputeResponse{}, err
	}

	rules, err := s.resolveRuleSet(ctx, req.RuleSetID)
	if err != nil {
		return timesheet.BulkComputeResponse{}, err
	}

	events, err := s.attendanceRepo.List(ctx)
	if err != nil {
		return timesheet.BulkComputeResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	existing, err := s.timesheetRepo.ExistingKeys(ctx)
	if err != nil {
		return timesheet.BulkComputeResponse{}, fmt.Errorf("failed to list existing timesheet keys: %w", err)
	}

	count := 0
	for _, event := range events {
		if event.Status != attendance.StatusPresent || event.CheckIn == nil {
			continue
		}

		key := timesheet.Key{EmployeeID: event.EmployeeID, Date: event.Date.Format("2006-01-02")}
		if _, occupied := existing[key]; occupied {
			continue
		}

		emp, err := s.employeeRepo.GetByID(ctx, event.EmployeeID)
		if err != nil {
			if !errors.Is(err, employee.ErrEmployeeNotFound) {
				return timesheet.BulkComputeResponse{}, fmt.Errorf("failed to get employee: %w", err)
			}
			slog.Debug("Bulk compute: skipping unknown employee", "employee_id", event.EmployeeID)
			continue
		}
		if !emp.Active {
			continue
		}

		template, err := s.resolveShift(ctx, event.EmployeeID)
		if err != nil {
			return timesheet.BulkComputeResponse{}, err
		}

		if created := s.computeOne(ctx, event, template, rules, key); created {
			count++
		}
	}

	return timesheet.BulkComputeResponse{Count: count}, nil
}

// computeOne holds the slot lock across the existence re-check and the
// insert, so concurrent bulk and single compute calls cannot both fill the
// same key.
func (s *TimesheetServiceImpl) computeOne(ctx context.Context, event attendance.Event, template shift.ShiftTemplate, rules ruleset.AttendanceRuleSet, key timesheet.Key) bool {
	unlock := s.keys.Lock(key)
	defer unlock()

	if _, err := s.timesheetRepo.GetByEmployeeAndDate(ctx, event.EmployeeID, event.Date); err == nil {
		return false
	} else if !errors.Is(err, timesheet.ErrTimesheetNotFound) {
		slog.Error("Bulk compute: existence check failed", "employee_id", event.EmployeeID, "date", key.Date, "error", err)
		return false
	}

	ts, err := Calculate(CalcInput{
		EmployeeID:   event.EmployeeID,
		Date:         event.Date,
		CheckIn:      event.CheckIn,
		CheckOut:     event.CheckOut,
		ShiftStart:   template.StartTime,
		ShiftEnd:     template.EndTime,
		BreakMinutes: template.BreakDurationMinutes,
	}, rules)
	if err != nil {
		slog.Warn("Bulk compute: skipping uncomputable day", "employee_id", event.EmployeeID, "date", key.Date, "error", err)
		return false
	}

	if _, err := s.timesheetRepo.Create(ctx, ts); err != nil {
		if errors.Is(err, timesheet.ErrDuplicateKey) {
			return false
		}
		slog.Error("Bulk compute: failed to create timesheet", "employee_id", event.EmployeeID, "date", key.Date, "error", err)
		return false
	}
	return true
}

// Submit implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, id string) error {
	return s.transition(ctx, id, func(ts *timesheet.Timesheet) error {
		return ts.Submit()
	})
}

// Approve implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Approve(ctx context.Context, id, approverID string) error {
	return s.transition(ctx, id, func(ts *timesheet.Timesheet) error {
		return ts.Approve(approverID, time.Now().UTC())
	})
}

// Reject implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Reject(ctx context.Context, id, approverID string) error {
	return s.transition(ctx, id, func(ts *timesheet.Timesheet) error {
		return ts.Reject(approverID, time.Now().UTC())
	})
}

// transition applies a state-machine mutation under the record's slot lock.
func (s *TimesheetServiceImpl) transition(ctx context.Context, id string, mutate func(*timesheet.Timesheet) error) error {
	ts, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to get timesheet: %w", err)
	}

	unlock := s.keys.Lock(ts.Key())
	defer unlock()

	// Re-read under the lock: a concurrent transition may have won.
	ts, err = s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to get timesheet: %w", err)
	}

	if err := mutate(&ts); err != nil {
		return err
	}

	if err := s.timesheetRepo.Update(ctx, ts); err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}
	return nil
}

// ClearRejected implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ClearRejected(ctx context.Context, id string) error {
	ts, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to get timesheet: %w", err)
	}

	unlock := s.keys.Lock(ts.Key())
	defer unlock()

	ts, err = s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to get timesheet: %w", err)
	}

	if ts.Status != timesheet.StatusRejected {
		return timesheet.ErrNotRejected
	}

	if err := s.timesheetRepo.Delete(ctx, ts.ID); err != nil {
		return fmt.Errorf("failed to clear rejected timesheet: %w", err)
	}

	slog.Info("Cleared rejected timesheet", "timesheet_id", ts.ID, "employee_id", ts.EmployeeID, "date", ts.Key().Date)
	return nil
}

// GetPendingApproval implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetPendingApproval(ctx context.Context) ([]timesheet.TimesheetResponse, error) {
	pending, err := s.timesheetRepo.ListByStatus(ctx, timesheet.StatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(pending))
	for _, ts := range pending {
		responses = append(responses, mapTimesheetToResponse(ts))
	}
	return responses, nil
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return mapTimesheetToResponse(ts), nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	sheets, total, err := s.timesheetRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		responses = append(responses, mapTimesheetToResponse(ts))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return timesheet.ListTimesheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Timesheets: responses,
	}, nil
}

// mapTimesheetToResponse converts a Timesheet entity to TimesheetResponse
func mapTimesheetToResponse(ts timesheet.Timesheet) timesheet.TimesheetResponse {
	segments := make([]timesheet.SegmentResponse, 0, len(ts.Segments))
	for _, seg := range ts.Segments {
		segments = append(segments, timesheet.SegmentResponse{
			Start:       seg.StartClock().String(),
			End:         seg.EndClock().String(),
			Kind:        string(seg.Kind),
			Minutes:     seg.Duration(),
			EndsNextDay: seg.End > timeutil.MinutesPerDay,
		})
	}

	var approvedAt *string
	if ts.ApprovedAt != nil {
		formatted := ts.ApprovedAt.Format("2006-01-02 15:04:05")
		approvedAt = &formatted
	}

	return timesheet.TimesheetResponse{
		ID:                      ts.ID,
		EmployeeID:              ts.EmployeeID,
		Date:                    ts.Date.Format("2006-01-02"),
		RuleSetID:               ts.RuleSetID,
		Segments:                segments,
		TotalHours:              ts.TotalHours,
		RegularHours:            ts.RegularHours,
		OvertimeHours:           ts.OvertimeHours,
		NightDiffHours:          ts.NightDiffHours,
		LateMinutes:             ts.LateMinutes,
		UndertimeMinutes:        ts.UndertimeMinutes,
		Status:                  string(ts.Status),
		OvertimePendingApproval: ts.OvertimePendingApproval,
		Incomplete:              ts.Incomplete,
		ApprovedBy:              ts.ApprovedBy,
		ApprovedAt:              approvedAt,
		CreatedAt:               ts.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:               ts.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
