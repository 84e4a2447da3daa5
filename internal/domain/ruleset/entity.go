package ruleset

import (
	"math"
	"time"

	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

// RoundingPolicy is the quantization applied to clock-in/out timestamps
// before duration math. Check-ins round up to the boundary and check-outs
// round down, so rounding never works in the employee's favor.
type RoundingPolicy string

const (
	RoundingNone      RoundingPolicy = "none"
	RoundingNearest15 RoundingPolicy = "nearest_15"
	RoundingNearest30 RoundingPolicy = "nearest_30"
)

var RoundingPolicyValues = []string{
	string(RoundingNone),
	string(RoundingNearest15),
	string(RoundingNearest30),
}

// Quantum returns the rounding step in minutes, 0 when no rounding applies.
func (p RoundingPolicy) Quantum() int {
	switch p {
	case RoundingNearest15:
		return 15
	case RoundingNearest30:
		return 30
	default:
		return 0
	}
}

// AttendanceRuleSet is a named policy governing how raw check-in/out times
// convert to payable hour buckets. Referenced by ID from timesheets; deletion
// is a soft delete so historical references stay resolvable.
type AttendanceRuleSet struct {
	ID                       string
	Name                     string
	StandardHoursPerDay      float64
	GraceMinutes             int
	RoundingPolicy           RoundingPolicy
	OvertimeRequiresApproval bool
	NightDiffStart           timeutil.ClockTime
	NightDiffEnd             timeutil.ClockTime
	HolidayMultiplier        float64
	CreatedAt                time.Time
	UpdatedAt                time.Time
	DeletedAt                *time.Time
}

// StandardMinutes is the standard working day in whole minutes.
func (r AttendanceRuleSet) StandardMinutes() int {
	return int(math.Round(r.StandardHoursPerDay * 60))
}
