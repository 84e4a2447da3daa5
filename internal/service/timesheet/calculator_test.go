package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

func testRules() ruleset.AttendanceRuleSet {
	return ruleset.AttendanceRuleSet{
		ID:                  "rs-1",
		Name:                "Standard Office",
		StandardHoursPerDay: 8,
		GraceMinutes:        0,
		RoundingPolicy:      ruleset.RoundingNone,
		NightDiffStart:      timeutil.MustClock("22:00"),
		NightDiffEnd:        timeutil.MustClock("06:00"),
		HolidayMultiplier:   1,
	}
}

func clock(t *testing.T, s string) *timeutil.ClockTime {
	t.Helper()
	c, err := timeutil.ParseClock(s)
	require.NoError(t, err)
	return &c
}

func dayShiftInput(t *testing.T, checkIn, checkOut string) CalcInput {
	t.Helper()
	in := CalcInput{
		EmployeeID:   "emp-1",
		Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ShiftStart:   timeutil.MustClock("08:00"),
		ShiftEnd:     timeutil.MustClock("17:00"),
		BreakMinutes: 60,
	}
	if checkIn != "" {
		in.CheckIn = clock(t, checkIn)
	}
	if checkOut != "" {
		in.CheckOut = clock(t, checkOut)
	}
	return in
}

func TestCalculateStandardDay(t *testing.T) {
	ts, err := Calculate(dayShiftInput(t, "08:00", "17:00"), testRules())
	require.NoError(t, err)

	assert.Equal(t, "8", ts.TotalHours.String())
	assert.Equal(t, "8", ts.RegularHours.String())
	assert.True(t, ts.OvertimeHours.IsZero())
	assert.True(t, ts.NightDiffHours.IsZero())
	assert.Equal(t, 0, ts.LateMinutes)
	assert.Equal(t, 0, ts.UndertimeMinutes)
	assert.Equal(t, timesheet.StatusComputed, ts.Status)
	assert.False(t, ts.Incomplete)
	assert.False(t, ts.OvertimePendingApproval)
}

func TestCalculateMissingCheckIn(t *testing.T) {
	_, err := Calculate(dayShiftInput(t, "", "17:00"), testRules())
	assert.ErrorIs(t, err, timesheet.ErrMissingCheckIn)
}

func TestCalculateMissingCheckOutSubstitutesShiftEnd(t *testing.T) {
	ts, err := Calculate(dayShiftInput(t, "08:00", ""), testRules())
	require.NoError(t, err)

	assert.True(t, ts.Incomplete)
	assert.Equal(t, "8", ts.TotalHours.String())
	assert.Equal(t, 0, ts.UndertimeMinutes)
}

func TestCalculateCheckOutBeforeCheckIn(t *testing.T) {
	_, err := Calculate(dayShiftInput(t, "09:00", "08:00"), testRules())
	assert.ErrorIs(t, err, timesheet.ErrCheckOutBeforeCheckIn)
}

func TestCalculateGraceBoundary(t *testing.T) {
	rules := testRules()
	rules.GraceMinutes = 10

	tests := []struct {
		name     string
		checkIn  string
		wantLate int
	}{
		{name: "inside grace", checkIn: "08:09", wantLate: 0},
		{name: "at grace boundary", checkIn: "08:10", wantLate: 0},
		{name: "one minute past grace", checkIn: "08:11", wantLate: 1},
		{name: "well past grace", checkIn: "09:00", wantLate: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := Calculate(dayShiftInput(t, tt.checkIn, "17:00"), rules)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLate, ts.LateMinutes)
		})
	}
}

func TestCalculateRoundingNearest15(t *testing.T) {
	rules := testRules()
	rules.RoundingPolicy = ruleset.RoundingNearest15

	ts, err := Calculate(dayShiftInput(t, "08:07", "17:07"), rules)
	require.NoError(t, err)

	// Check-in rounds up to 08:15, check-out rounds down to 17:00.
	assert.Equal(t, "7.75", ts.TotalHours.String())
	assert.Equal(t, 15, ts.LateMinutes)
	assert.Equal(t, 0, ts.UndertimeMinutes)
}

func TestCalculateUndertime(t *testing.T) {
	ts, err := Calculate(dayShiftInput(t, "08:00", "15:30"), testRules())
	require.NoError(t, err)

	assert.Equal(t, 30, ts.UndertimeMinutes)
	assert.Equal(t, "6.5", ts.TotalHours.String())
	assert.True(t, ts.OvertimeHours.IsZero())
}

func TestCalculateOvertime(t *testing.T) {
	rules := testRules()
	rules.OvertimeRequiresApproval = true

	ts, err := Calculate(dayShiftInput(t, "08:00", "19:00"), rules)
	require.NoError(t, err)

	assert.Equal(t, "10", ts.TotalHours.String())
	assert.Equal(t, "8", ts.RegularHours.String())
	assert.Equal(t, "2", ts.OvertimeHours.String())
	assert.True(t, ts.OvertimePendingApproval)
}

func TestCalculateOvertimeApprovalNotRequired(t *testing.T) {
	ts, err := Calculate(dayShiftInput(t, "08:00", "19:00"), testRules())
	require.NoError(t, err)

	assert.Equal(t, "2", ts.OvertimeHours.String())
	assert.False(t, ts.OvertimePendingApproval)
}

func TestCalculateNightShiftAcrossMidnight(t *testing.T) {
	in := CalcInput{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:    clock(t, "21:00"),
		CheckOut:   clock(t, "07:00"),
		ShiftStart: timeutil.MustClock("21:00"),
		ShiftEnd:   timeutil.MustClock("07:00"),
	}

	ts, err := Calculate(in, testRules())
	require.NoError(t, err)

	// 21:00 to 07:00 next day with no break: ten hours worked, of which
	// 22:00 to 06:00 falls inside the night window.
	assert.Equal(t, "10", ts.TotalHours.String())
	assert.Equal(t, "8", ts.RegularHours.String())
	assert.Equal(t, "2", ts.OvertimeHours.String())
	assert.Equal(t, "8", ts.NightDiffHours.String())
	assert.Equal(t, 0, ts.UndertimeMinutes)
}

func TestCalculateNightShiftWithBreak(t *testing.T) {
	in := CalcInput{
		EmployeeID:   "emp-1",
		Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:      clock(t, "21:00"),
		CheckOut:     clock(t, "07:00"),
		ShiftStart:   timeutil.MustClock("21:00"),
		ShiftEnd:     timeutil.MustClock("07:00"),
		BreakMinutes: 60,
	}

	ts, err := Calculate(in, testRules())
	require.NoError(t, err)

	// The break at 05:00 is unpaid, so only 22:00 to 05:00 counts as
	// night time.
	assert.Equal(t, "9", ts.TotalHours.String())
	assert.Equal(t, "7", ts.NightDiffHours.String())
}

func TestCalculateSegmentsPartitionWorkedTime(t *testing.T) {
	inputs := []CalcInput{
		dayShiftInput(t, "08:00", "17:00"),
		dayShiftInput(t, "08:23", "19:42"),
		{
			EmployeeID:   "emp-1",
			Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			CheckIn:      clock(t, "22:30"),
			CheckOut:     clock(t, "08:15"),
			ShiftStart:   timeutil.MustClock("22:00"),
			ShiftEnd:     timeutil.MustClock("06:00"),
			BreakMinutes: 30,
		},
	}

	for _, in := range inputs {
		ts, err := Calculate(in, testRules())
		require.NoError(t, err)

		sum := 0
		prevEnd := -1
		for _, seg := range ts.Segments {
			assert.Greater(t, seg.End, seg.Start)
			assert.GreaterOrEqual(t, seg.Start, prevEnd)
			prevEnd = seg.End
			sum += seg.Duration()
		}

		total := ts.RegularHours.Add(ts.OvertimeHours)
		assert.True(t, ts.TotalHours.Equal(total), "regular + overtime must equal total")
		assert.True(t, minutesToHours(sum).Equal(ts.TotalHours), "segments must sum to total hours")
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := dayShiftInput(t, "08:07", "19:42")
	rules := testRules()
	rules.RoundingPolicy = ruleset.RoundingNearest15
	rules.GraceMinutes = 5

	first, err := Calculate(in, rules)
	require.NoError(t, err)
	second, err := Calculate(in, rules)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
