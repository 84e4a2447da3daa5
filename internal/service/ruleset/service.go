package ruleset

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

type RuleSetServiceImpl struct {
	rulesetRepo ruleset.RuleSetRepository
}

func NewRuleSetService(rulesetRepo ruleset.RuleSetRepository) ruleset.RuleSetService {
	return &RuleSetServiceImpl{rulesetRepo: rulesetRepo}
}

// AddRuleSet implements ruleset.RuleSetService.
func (s *RuleSetServiceImpl) AddRuleSet(ctx context.Context, req ruleset.CreateRuleSetRequest) (ruleset.RuleSetResponse, error) {
	if err := req.Validate(); err != nil {
		return ruleset.RuleSetResponse{}, err
	}

	nightStart, _ := timeutil.ParseClock(req.NightDiffStart)
	nightEnd, _ := timeutil.ParseClock(req.NightDiffEnd)

	rs := ruleset.AttendanceRuleSet{
		Name:                     req.Name,
		StandardHoursPerDay:      req.StandardHoursPerDay,
		GraceMinutes:             req.GraceMinutes,
		RoundingPolicy:           ruleset.RoundingPolicy(req.RoundingPolicy),
		OvertimeRequiresApproval: req.OvertimeRequiresApproval,
		NightDiffStart:           nightStart,
		NightDiffEnd:             nightEnd,
		HolidayMultiplier:        req.HolidayMultiplier,
	}

	created, err := s.rulesetRepo.Create(ctx, rs)
	if err != nil {
		if errors.Is(err, ruleset.ErrRuleSetNameExists) {
			return ruleset.RuleSetResponse{}, ruleset.ErrRuleSetNameExists
		}
		return ruleset.RuleSetResponse{}, fmt.Errorf("failed to create rule set: %w", err)
	}

	return mapRuleSetToResponse(created), nil
}

// GetRuleSet implements ruleset.RuleSetService.
func (s *RuleSetServiceImpl) GetRuleSet(ctx context.Context, id string) (ruleset.RuleSetResponse, error) {
	rs, err := s.rulesetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleset.ErrRuleSetNotFound) {
			return ruleset.RuleSetResponse{}, ruleset.ErrRuleSetNotFound
		}
		return ruleset.RuleSetResponse{}, fmt.Errorf("failed to get rule set: %w", err)
	}
	return mapRuleSetToResponse(rs), nil
}

// ListRuleSets implements ruleset.RuleSetService.
func (s *RuleSetServiceImpl) ListRuleSets(ctx context.Context) ([]ruleset.RuleSetResponse, error) {
	sets, err := s.rulesetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule sets: %w", err)
	}

	responses := make([]ruleset.RuleSetResponse, 0, len(sets))
	for _, rs := range sets {
		responses = append(responses, mapRuleSetToResponse(rs))
	}
	return responses, nil
}

// UpdateRuleSet implements ruleset.RuleSetService.
func (s *RuleSetServiceImpl) UpdateRuleSet(ctx context.Context, req ruleset.UpdateRuleSetRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	rs, err := s.rulesetRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, ruleset.ErrRuleSetNotFound) {
			return ruleset.ErrRuleSetNotFound
		}
		return fmt.Errorf("failed to get rule set: %w", err)
	}
	if rs.DeletedAt != nil {
		return ruleset.ErrRuleSetDeleted
	}

	if req.Name != nil {
		rs.Name = *req.Name
	}
	if req.StandardHoursPerDay != nil {
		rs.StandardHoursPerDay = *req.StandardHoursPerDay
	}
	if req.GraceMinutes != nil {
		rs.GraceMinutes = *req.GraceMinutes
	}
	if req.RoundingPolicy != nil {
		rs.RoundingPolicy = ruleset.RoundingPolicy(*req.RoundingPolicy)
	}
	if req.OvertimeRequiresApproval != nil {
		rs.OvertimeRequiresApproval = *req.OvertimeRequiresApproval
	}
	if req.NightDiffStart != nil {
		rs.NightDiffStart, _ = timeutil.ParseClock(*req.NightDiffStart)
	}
	if req.NightDiffEnd != nil {
		rs.NightDiffEnd, _ = timeutil.ParseClock(*req.NightDiffEnd)
	}
	if req.HolidayMultiplier != nil {
		rs.HolidayMultiplier = *req.HolidayMultiplier
	}

	if err := s.rulesetRepo.Update(ctx, rs); err != nil {
		if errors.Is(err, ruleset.ErrRuleSetNameExists) {
			return ruleset.ErrRuleSetNameExists
		}
		if errors.Is(err, ruleset.ErrRuleSetNotFound) {
			return ruleset.ErrRuleSetNotFound
		}
		return fmt.Errorf("failed to update rule set: %w", err)
	}
	return nil
}

// DeleteRuleSet implements ruleset.RuleSetService. The record is soft
// deleted: existing timesheets keep resolving the policy by ID, but new
// computations and listings no longer see it.
func (s *RuleSetServiceImpl) DeleteRuleSet(ctx context.Context, id string) error {
	if err := s.rulesetRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, ruleset.ErrRuleSetNotFound) {
			return ruleset.ErrRuleSetNotFound
		}
		return fmt.Errorf("failed to delete rule set: %w", err)
	}
	return nil
}

// mapRuleSetToResponse converts an AttendanceRuleSet entity to RuleSetResponse
func mapRuleSetToResponse(rs ruleset.AttendanceRuleSet) ruleset.RuleSetResponse {
	return ruleset.RuleSetResponse{
		ID:                       rs.ID,
		Name:                     rs.Name,
		StandardHoursPerDay:      rs.StandardHoursPerDay,
		GraceMinutes:             rs.GraceMinutes,
		RoundingPolicy:           string(rs.RoundingPolicy),
		OvertimeRequiresApproval: rs.OvertimeRequiresApproval,
		NightDiffStart:           rs.NightDiffStart.String(),
		NightDiffEnd:             rs.NightDiffEnd.String(),
		HolidayMultiplier:        rs.HolidayMultiplier,
		CreatedAt:                rs.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:                rs.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
