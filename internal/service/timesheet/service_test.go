package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronohr/timesheet-backend-go/internal/domain/attendance"
	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/domain/shift"
	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
	"github.com/chronohr/timesheet-backend-go/internal/repository/memory"
)

type fixture struct {
	service    timesheet.TimesheetService
	rulesets   *memory.RuleSetRepository
	shifts     *memory.ShiftTemplateRepository
	employees  *memory.EmployeeRepository
	events     *memory.EventRepository
	timesheets *memory.TimesheetRepository
	ruleSetID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		rulesets:   memory.NewRuleSetRepository(),
		shifts:     memory.NewShiftTemplateRepository(),
		employees:  memory.NewEmployeeRepository(),
		events:     memory.NewEventRepository(),
		timesheets: memory.NewTimesheetRepository(),
	}
	f.service = NewTimesheetService(f.timesheets, f.rulesets, f.shifts, f.employees, f.events)

	rs, err := f.rulesets.Create(context.Background(), ruleset.AttendanceRuleSet{
		Name:                "Standard Office",
		StandardHoursPerDay: 8,
		GraceMinutes:        10,
		RoundingPolicy:      ruleset.RoundingNone,
		NightDiffStart:      timeutil.MustClock("22:00"),
		NightDiffEnd:        timeutil.MustClock("06:00"),
		HolidayMultiplier:   1,
	})
	require.NoError(t, err)
	f.ruleSetID = rs.ID

	f.employees.Seed(employee.Employee{ID: "emp-1", FullName: "Dewi Lestari", Active: true})
	f.employees.Seed(employee.Employee{ID: "emp-2", FullName: "Budi Santoso", Active: true})
	f.employees.Seed(employee.Employee{ID: "emp-3", FullName: "Retired Person", Active: false})

	return f
}

func strPtr(s string) *string { return &s }

func computeRequest(f *fixture, employeeID, date string) timesheet.ComputeTimesheetRequest {
	return timesheet.ComputeTimesheetRequest{
		EmployeeID: employeeID,
		Date:       date,
		RuleSetID:  f.ruleSetID,
		CheckIn:    strPtr("08:00"),
		CheckOut:   strPtr("17:00"),
	}
}

func TestComputeCreatesTimesheet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, string(timesheet.StatusComputed), resp.Status)
	assert.Equal(t, "8", resp.TotalHours.String())
}

func TestComputeRejectsDuplicateKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)

	_, err = f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	assert.ErrorIs(t, err, timesheet.ErrDuplicateKey)

	// A different date is a different slot.
	_, err = f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-03"))
	assert.NoError(t, err)
}

func TestComputeUnknownRuleSet(t *testing.T) {
	f := newFixture(t)

	req := computeRequest(f, "emp-1", "2026-03-02")
	req.RuleSetID = "0195e000-0000-7000-8000-000000000000"

	_, err := f.service.Compute(context.Background(), req)
	assert.ErrorIs(t, err, ruleset.ErrRuleSetNotFound)
}

func TestComputeRefusesDeletedRuleSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.rulesets.SoftDelete(ctx, f.ruleSetID))

	_, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	assert.ErrorIs(t, err, ruleset.ErrRuleSetDeleted)

	_, err = f.service.BulkCompute(ctx, timesheet.BulkComputeRequest{RuleSetID: f.ruleSetID})
	assert.ErrorIs(t, err, ruleset.ErrRuleSetDeleted)
}

func TestComputeFallsBackToAttendanceLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checkIn := timeutil.MustClock("08:30")
	checkOut := timeutil.MustClock("17:30")
	f.events.Seed(attendance.Event{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Status:     attendance.StatusPresent,
	})

	req := computeRequest(f, "emp-1", "2026-03-02")
	req.CheckIn = nil
	req.CheckOut = nil

	resp, err := f.service.Compute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "8", resp.TotalHours.String())
	assert.Equal(t, 20, resp.LateMinutes)
}

func TestComputeFillsCheckOutFromAttendanceLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checkIn := timeutil.MustClock("08:00")
	checkOut := timeutil.MustClock("17:00")
	f.events.Seed(attendance.Event{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Status:     attendance.StatusPresent,
	})

	// Only the check-in is overridden; the checkout comes from the log.
	req := computeRequest(f, "emp-1", "2026-03-02")
	req.CheckIn = strPtr("08:30")
	req.CheckOut = nil

	resp, err := f.service.Compute(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.Incomplete)
	assert.Equal(t, "7.5", resp.TotalHours.String())
	assert.Equal(t, 20, resp.LateMinutes)
}

func TestComputeWithoutAttendanceLog(t *testing.T) {
	f := newFixture(t)

	req := computeRequest(f, "emp-1", "2026-03-02")
	req.CheckIn = nil
	req.CheckOut = nil

	_, err := f.service.Compute(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrNoAttendanceLog)
}

func TestComputeUsesAssignedShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	night, err := f.shifts.Create(ctx, shift.ShiftTemplate{
		Name:      "Night Shift",
		StartTime: timeutil.MustClock("21:00"),
		EndTime:   timeutil.MustClock("05:00"),
		WorkDays:  []int{1, 2, 3, 4, 5},
	})
	require.NoError(t, err)
	require.NoError(t, f.employees.AssignShift(ctx, "emp-1", night.ID))

	req := timesheet.ComputeTimesheetRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		RuleSetID:  f.ruleSetID,
		CheckIn:    strPtr("21:00"),
		CheckOut:   strPtr("05:00"),
	}

	resp, err := f.service.Compute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "8", resp.TotalHours.String())
	assert.Equal(t, "7", resp.NightDiffHours.String())
}

func TestBulkComputeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := timeutil.MustClock("08:00")
	out := timeutil.MustClock("17:00")

	f.events.Seed(attendance.Event{EmployeeID: "emp-1", Date: date, CheckIn: &in, CheckOut: &out, Status: attendance.StatusPresent})
	f.events.Seed(attendance.Event{EmployeeID: "emp-2", Date: date, CheckIn: &in, CheckOut: &out, Status: attendance.StatusPresent})
	// Skipped: inactive employee, absence, and a present day with no check-in.
	f.events.Seed(attendance.Event{EmployeeID: "emp-3", Date: date, CheckIn: &in, CheckOut: &out, Status: attendance.StatusPresent})
	f.events.Seed(attendance.Event{EmployeeID: "emp-1", Date: date.AddDate(0, 0, 1), Status: attendance.StatusAbsent})
	f.events.Seed(attendance.Event{EmployeeID: "emp-2", Date: date.AddDate(0, 0, 1), Status: attendance.StatusPresent})

	resp, err := f.service.BulkCompute(ctx, timesheet.BulkComputeRequest{RuleSetID: f.ruleSetID})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	// Second run finds every computable slot occupied.
	resp, err = f.service.BulkCompute(ctx, timesheet.BulkComputeRequest{RuleSetID: f.ruleSetID})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
}

func TestBulkComputeSkipsOccupiedSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := timeutil.MustClock("09:00")
	out := timeutil.MustClock("18:00")
	f.events.Seed(attendance.Event{EmployeeID: "emp-1", Date: date, CheckIn: &in, CheckOut: &out, Status: attendance.StatusPresent})

	resp, err := f.service.BulkCompute(ctx, timesheet.BulkComputeRequest{RuleSetID: f.ruleSetID})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)

	// The earlier computation is untouched.
	stored, err := f.timesheets.GetByEmployeeAndDate(ctx, "emp-1", date)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.LateMinutes)
}

func TestWorkflowSubmitApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)

	// Approval straight from computed is refused.
	err = f.service.Approve(ctx, resp.ID, "mgr-1")
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)

	require.NoError(t, f.service.Submit(ctx, resp.ID))
	require.NoError(t, f.service.Approve(ctx, resp.ID, "mgr-1"))

	approved, err := f.service.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(timesheet.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "mgr-1", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// Approved records are immutable.
	assert.ErrorIs(t, f.service.Submit(ctx, resp.ID), timesheet.ErrInvalidTransition)
	assert.ErrorIs(t, f.service.Reject(ctx, resp.ID, "mgr-1"), timesheet.ErrInvalidTransition)
}

func TestWorkflowRejectAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)

	require.NoError(t, f.service.Submit(ctx, resp.ID))
	require.NoError(t, f.service.Reject(ctx, resp.ID, "mgr-1"))

	// The rejected record still blocks the slot.
	_, err = f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	assert.ErrorIs(t, err, timesheet.ErrDuplicateKey)

	require.NoError(t, f.service.ClearRejected(ctx, resp.ID))

	// After clearing, the slot is free again.
	_, err = f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	assert.NoError(t, err)
}

func TestClearRejectedRefusesOtherStatuses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.ClearRejected(ctx, resp.ID), timesheet.ErrNotRejected)

	require.NoError(t, f.service.Submit(ctx, resp.ID))
	assert.ErrorIs(t, f.service.ClearRejected(ctx, resp.ID), timesheet.ErrNotRejected)
}

func TestGetPendingApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Compute(ctx, computeRequest(f, "emp-1", "2026-03-02"))
	require.NoError(t, err)
	second, err := f.service.Compute(ctx, computeRequest(f, "emp-2", "2026-03-02"))
	require.NoError(t, err)

	require.NoError(t, f.service.Submit(ctx, first.ID))

	pending, err := f.service.GetPendingApproval(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	require.NoError(t, f.service.Submit(ctx, second.ID))

	pending, err = f.service.GetPendingApproval(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, day := range []string{"2026-03-02", "2026-03-03", "2026-03-04"} {
		_, err := f.service.Compute(ctx, computeRequest(f, "emp-1", day))
		require.NoError(t, err)
	}
	_, err := f.service.Compute(ctx, computeRequest(f, "emp-2", "2026-03-02"))
	require.NoError(t, err)

	byEmployee, err := f.service.List(ctx, timesheet.TimesheetFilter{EmployeeID: strPtr("emp-1")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), byEmployee.TotalCount)

	paged, err := f.service.List(ctx, timesheet.TimesheetFilter{EmployeeID: strPtr("emp-1"), Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged.Timesheets, 2)
	assert.Equal(t, 2, paged.TotalPages)

	ranged, err := f.service.List(ctx, timesheet.TimesheetFilter{
		StartDate: strPtr("2026-03-03"),
		EndDate:   strPtr("2026-03-04"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), ranged.TotalCount)
}
