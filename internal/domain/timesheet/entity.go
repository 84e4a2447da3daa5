package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

type SegmentKind string

const (
	SegmentRegular  SegmentKind = "regular"
	SegmentOvertime SegmentKind = "overtime"
	SegmentNight    SegmentKind = "night"
)

// Segment is one audit sub-interval of the paid working time. Start and End
// are minutes on a 48-hour timeline anchored at the work date midnight, so a
// shift running past midnight stays a contiguous range. Segment durations
// always sum to the timesheet's total hours.
type Segment struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Kind  SegmentKind `json:"kind"`
}

func (s Segment) Duration() int {
	return s.End - s.Start
}

// StartClock and EndClock fold the 48-hour minute back onto the clock face
// for display.
func (s Segment) StartClock() timeutil.ClockTime {
	return timeutil.ClockTime(s.Start % timeutil.MinutesPerDay)
}

func (s Segment) EndClock() timeutil.ClockTime {
	return timeutil.ClockTime(s.End % timeutil.MinutesPerDay)
}

// Timesheet is the derived record of one employee's worked time on one date.
// At most one timesheet exists per (EmployeeID, Date); the ledger enforces
// the invariant.
type Timesheet struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	RuleSetID        string
	Segments         []Segment
	TotalHours       decimal.Decimal
	RegularHours     decimal.Decimal
	OvertimeHours    decimal.Decimal
	NightDiffHours   decimal.Decimal
	LateMinutes      int
	UndertimeMinutes int
	Status           Status

	// OvertimePendingApproval marks overtime that is computed and stored
	// but not payable until a separate overtime approval exists. Payroll
	// consumes the flag, never a zeroed value.
	OvertimePendingApproval bool

	// Incomplete marks a record whose checkout was substituted from the
	// scheduled shift end because no checkout was captured.
	Incomplete bool

	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key identifies the at-most-one-per-employee-per-date slot.
type Key struct {
	EmployeeID string
	Date       string // "2006-01-02"
}

func (t *Timesheet) Key() Key {
	return Key{EmployeeID: t.EmployeeID, Date: t.Date.Format("2006-01-02")}
}

// Submit moves a computed timesheet into the approval queue.
func (t *Timesheet) Submit() error {
	if !t.Status.CanTransitionTo(StatusSubmitted) {
		return ErrInvalidTransition
	}
	t.Status = StatusSubmitted
	return nil
}

// Approve finalizes a submitted timesheet. Payroll may treat the record as
// payable from this point.
func (t *Timesheet) Approve(approverID string, at time.Time) error {
	if !t.Status.CanTransitionTo(StatusApproved) {
		return ErrInvalidTransition
	}
	t.Status = StatusApproved
	t.ApprovedBy = &approverID
	t.ApprovedAt = &at
	return nil
}

// Reject terminally rejects a submitted timesheet. The slot stays occupied
// until an operator explicitly clears it.
func (t *Timesheet) Reject(approverID string, at time.Time) error {
	if !t.Status.CanTransitionTo(StatusRejected) {
		return ErrInvalidTransition
	}
	t.Status = StatusRejected
	t.ApprovedBy = &approverID
	t.ApprovedAt = &at
	return nil
}
