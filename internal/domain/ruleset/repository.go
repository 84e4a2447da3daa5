package ruleset

import (
	"context"
)

// RuleSetRepository defines data access for attendance rule sets.
type RuleSetRepository interface {
	// Create creates a new rule set
	Create(ctx context.Context, rs AttendanceRuleSet) (AttendanceRuleSet, error)

	// GetByID retrieves a rule set by ID, including soft-deleted ones so
	// historical timesheets keep resolving their policy
	GetByID(ctx context.Context, id string) (AttendanceRuleSet, error)

	// List retrieves all non-deleted rule sets
	List(ctx context.Context) ([]AttendanceRuleSet, error)

	// Update updates an existing rule set
	Update(ctx context.Context, rs AttendanceRuleSet) error

	// SoftDelete marks a rule set deleted without removing the row
	SoftDelete(ctx context.Context, id string) error
}
