package ruleset

import (
	"context"
)

// RuleSetService defines business logic for attendance rule set management.
type RuleSetService interface {
	AddRuleSet(ctx context.Context, req CreateRuleSetRequest) (RuleSetResponse, error)
	GetRuleSet(ctx context.Context, id string) (RuleSetResponse, error)
	ListRuleSets(ctx context.Context) ([]RuleSetResponse, error)
	UpdateRuleSet(ctx context.Context, req UpdateRuleSetRequest) error
	DeleteRuleSet(ctx context.Context, id string) error
}
