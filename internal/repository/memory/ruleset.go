package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
)

// RuleSetRepository is an in-memory AttendanceRuleSet store.
type RuleSetRepository struct {
	mu   sync.RWMutex
	byID map[string]ruleset.AttendanceRuleSet
}

func NewRuleSetRepository() *RuleSetRepository {
	return &RuleSetRepository{byID: make(map[string]ruleset.AttendanceRuleSet)}
}

func (r *RuleSetRepository) Create(ctx context.Context, rs ruleset.AttendanceRuleSet) (ruleset.AttendanceRuleSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.DeletedAt == nil && existing.Name == rs.Name {
			return ruleset.AttendanceRuleSet{}, ruleset.ErrRuleSetNameExists
		}
	}

	if rs.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return ruleset.AttendanceRuleSet{}, err
		}
		rs.ID = id.String()
	}

	now := time.Now().UTC()
	rs.CreatedAt = now
	rs.UpdatedAt = now

	r.byID[rs.ID] = rs
	return rs, nil
}

func (r *RuleSetRepository) GetByID(ctx context.Context, id string) (ruleset.AttendanceRuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.byID[id]
	if !ok {
		return ruleset.AttendanceRuleSet{}, ruleset.ErrRuleSetNotFound
	}
	return rs, nil
}

func (r *RuleSetRepository) List(ctx context.Context) ([]ruleset.AttendanceRuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sets := make([]ruleset.AttendanceRuleSet, 0, len(r.byID))
	for _, rs := range r.byID {
		if rs.DeletedAt != nil {
			continue
		}
		sets = append(sets, rs)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets, nil
}

func (r *RuleSetRepository) Update(ctx context.Context, rs ruleset.AttendanceRuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[rs.ID]
	if !ok || stored.DeletedAt != nil {
		return ruleset.ErrRuleSetNotFound
	}

	for _, existing := range r.byID {
		if existing.ID != rs.ID && existing.DeletedAt == nil && existing.Name == rs.Name {
			return ruleset.ErrRuleSetNameExists
		}
	}

	rs.CreatedAt = stored.CreatedAt
	rs.UpdatedAt = time.Now().UTC()
	r.byID[rs.ID] = rs
	return nil
}

func (r *RuleSetRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.byID[id]
	if !ok || rs.DeletedAt != nil {
		return ruleset.ErrRuleSetNotFound
	}

	now := time.Now().UTC()
	rs.DeletedAt = &now
	rs.UpdatedAt = now
	r.byID[id] = rs
	return nil
}
