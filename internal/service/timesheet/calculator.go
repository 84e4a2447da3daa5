package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

// CalcInput is one day's raw material for the segment calculator: the
// check-in/out pair and the shift window it is judged against. All times are
// local clock times on the work date; a shift whose end is at or before its
// start runs past midnight.
type CalcInput struct {
	EmployeeID   string
	Date         time.Time
	CheckIn      *timeutil.ClockTime
	CheckOut     *timeutil.ClockTime
	ShiftStart   timeutil.ClockTime
	ShiftEnd     timeutil.ClockTime
	BreakMinutes int
}

var sixty = decimal.NewFromInt(60)

func minutesToHours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(sixty)
}

// Calculate converts one day's check-in/out pair into a computed Timesheet.
// Pure and deterministic: identical inputs always produce identical output.
//
// A missing check-in is fatal to the computation. A missing check-out is
// substituted with the scheduled shift end and the record is flagged
// incomplete. Rounding is applied to each timestamp before any duration
// math: check-ins round up to the quantum boundary and check-outs round
// down, so quantization never pays for unworked minutes.
func Calculate(in CalcInput, rules ruleset.AttendanceRuleSet) (timesheet.Timesheet, error) {
	if in.CheckIn == nil {
		return timesheet.Timesheet{}, timesheet.ErrMissingCheckIn
	}

	incomplete := false
	checkOut := in.CheckOut
	if checkOut == nil {
		end := in.ShiftEnd
		checkOut = &end
		incomplete = true
	}

	quantum := rules.RoundingPolicy.Quantum()
	inMin := timeutil.CeilTo(in.CheckIn.Minutes(), quantum)
	outMin := timeutil.FloorTo(checkOut.Minutes(), quantum)

	shiftCrossesMidnight := in.ShiftEnd <= in.ShiftStart

	// Project the checkout onto the 48-hour timeline anchored at the work
	// date. A checkout clock earlier than the check-in means the shift ran
	// past midnight; on a same-day shift it is a data error.
	outAbs := outMin
	if outAbs < inMin {
		if !shiftCrossesMidnight {
			return timesheet.Timesheet{}, timesheet.ErrCheckOutBeforeCheckIn
		}
		outAbs += timeutil.MinutesPerDay
	}

	worked := outAbs - inMin - in.BreakMinutes
	if worked < 0 {
		worked = 0
	}

	late := inMin - in.ShiftStart.Minutes() - rules.GraceMinutes
	if late < 0 {
		late = 0
	}

	standard := rules.StandardMinutes()

	undertime := in.ShiftStart.Minutes() + standard - outAbs
	if undertime < 0 {
		undertime = 0
	}

	regular := worked
	if regular > standard {
		regular = standard
	}
	overtime := worked - regular

	segments, nightMinutes := buildSegments(inMin, outAbs, regular, overtime, in.BreakMinutes, rules)

	return timesheet.Timesheet{
		EmployeeID:              in.EmployeeID,
		Date:                    in.Date,
		RuleSetID:               rules.ID,
		Segments:                segments,
		TotalHours:              minutesToHours(worked),
		RegularHours:            minutesToHours(regular),
		OvertimeHours:           minutesToHours(overtime),
		NightDiffHours:          minutesToHours(nightMinutes),
		LateMinutes:             late,
		UndertimeMinutes:        undertime,
		Status:                  timesheet.StatusComputed,
		OvertimePendingApproval: overtime > 0 && rules.OvertimeRequiresApproval,
		Incomplete:              incomplete,
	}, nil
}

// buildSegments partitions the paid working time into ordered audit
// segments. Minutes inside the rule set's night window carry the night kind,
// the rest keep their regular/overtime label, so segment durations always
// sum to the total worked minutes. The break sits between the regular and
// overtime portions and is never paid.
func buildSegments(inMin, outAbs, regular, overtime, breakMinutes int, rules ruleset.AttendanceRuleSet) ([]timesheet.Segment, int) {
	type interval struct {
		start, end int
		kind       timesheet.SegmentKind
	}

	var paid []interval
	if regular > 0 {
		paid = append(paid, interval{start: inMin, end: inMin + regular, kind: timesheet.SegmentRegular})
	}
	if overtime > 0 {
		paid = append(paid, interval{start: inMin + regular + breakMinutes, end: outAbs, kind: timesheet.SegmentOvertime})
	}

	segments := make([]timesheet.Segment, 0, len(paid))
	nightMinutes := 0

	for _, iv := range paid {
		nights := nightRanges(iv.start, iv.end, rules.NightDiffStart, rules.NightDiffEnd)
		cursor := iv.start
		for _, n := range nights {
			if n.start > cursor {
				segments = append(segments, timesheet.Segment{Start: cursor, End: n.start, Kind: iv.kind})
			}
			segments = append(segments, timesheet.Segment{Start: n.start, End: n.end, Kind: timesheet.SegmentNight})
			nightMinutes += n.end - n.start
			cursor = n.end
		}
		if cursor < iv.end {
			segments = append(segments, timesheet.Segment{Start: cursor, End: iv.end, Kind: iv.kind})
		}
	}

	return segments, nightMinutes
}

type span struct {
	start, end int
}

// nightRanges returns the disjoint, ordered intersections of [start, end)
// with the daily night window on the 48-hour timeline. The window may wrap
// past midnight; an equal start and end is an empty window.
func nightRanges(start, end int, winStart, winEnd timeutil.ClockTime) []span {
	ws := winStart.Minutes()
	we := winEnd.Minutes()
	if ws == we {
		return nil
	}
	if we < ws {
		we += timeutil.MinutesPerDay
	}

	var ranges []span
	for k := -1; k <= 1; k++ {
		shift := k * timeutil.MinutesPerDay
		lo := max(start, ws+shift)
		hi := min(end, we+shift)
		if hi > lo {
			ranges = append(ranges, span{start: lo, end: hi})
		}
	}
	return ranges
}
