package timesheet

// Status is the approval workflow state of a timesheet. The zero-value
// string is not a valid status; records always start as computed.
type Status string

const (
	StatusComputed  Status = "computed"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var StatusValues = []string{
	string(StatusComputed),
	string(StatusSubmitted),
	string(StatusApproved),
	string(StatusRejected),
}

// transitions is the closed state machine: computed -> submitted ->
// {approved | rejected}. Approved and rejected are terminal.
var transitions = map[Status][]Status{
	StatusComputed:  {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusApproved:  {},
	StatusRejected:  {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
