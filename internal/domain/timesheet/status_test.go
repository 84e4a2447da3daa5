package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusComputed, StatusSubmitted, true},
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusComputed, StatusApproved, false},
		{StatusComputed, StatusRejected, false},
		{StatusApproved, StatusSubmitted, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusSubmitted, false},
		{StatusRejected, StatusComputed, false},
		{StatusSubmitted, StatusComputed, false},
	}
	for _, c := range cases {
		got := c.from.CanTransitionTo(c.to)
		assert.Equal(t, c.allowed, got, "%s -> %s", c.from, c.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusComputed.Terminal())
	assert.False(t, StatusSubmitted.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, Status("bogus").Terminal())
}

func TestTimesheetWorkflow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	ts := Timesheet{Status: StatusComputed}

	// approving before submission is refused
	err := ts.Approve("mgr-1", now)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusComputed, ts.Status)
	assert.Nil(t, ts.ApprovedBy)

	require.NoError(t, ts.Submit())
	assert.Equal(t, StatusSubmitted, ts.Status)

	// double submission is refused
	require.ErrorIs(t, ts.Submit(), ErrInvalidTransition)

	require.NoError(t, ts.Approve("mgr-1", now))
	assert.Equal(t, StatusApproved, ts.Status)
	require.NotNil(t, ts.ApprovedBy)
	assert.Equal(t, "mgr-1", *ts.ApprovedBy)
	require.NotNil(t, ts.ApprovedAt)
	assert.Equal(t, now, *ts.ApprovedAt)

	// approved records are immutable to further workflow calls
	require.ErrorIs(t, ts.Submit(), ErrInvalidTransition)
	require.ErrorIs(t, ts.Reject("mgr-2", now), ErrInvalidTransition)
	assert.Equal(t, "mgr-1", *ts.ApprovedBy)
}

func TestTimesheetReject(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	ts := Timesheet{Status: StatusSubmitted}
	require.NoError(t, ts.Reject("mgr-9", now))
	assert.Equal(t, StatusRejected, ts.Status)
	require.NotNil(t, ts.ApprovedBy)
	assert.Equal(t, "mgr-9", *ts.ApprovedBy)

	// rejected is terminal
	require.ErrorIs(t, ts.Submit(), ErrInvalidTransition)
	require.ErrorIs(t, ts.Approve("mgr-9", now), ErrInvalidTransition)
}

func TestKey(t *testing.T) {
	ts := Timesheet{
		EmployeeID: "emp-1",
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, Key{EmployeeID: "emp-1", Date: "2024-03-15"}, ts.Key())
}
