package ruleset

import "errors"

// Rule set domain errors
var (
	ErrRuleSetNotFound   = errors.New("attendance rule set not found")
	ErrRuleSetNameExists = errors.New("attendance rule set with this name already exists")
	ErrRuleSetDeleted    = errors.New("attendance rule set has been deleted")
)
