package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chronohr/timesheet-backend-go/internal/domain/shift"
)

// ShiftTemplateRepository is an in-memory ShiftTemplate store.
type ShiftTemplateRepository struct {
	mu   sync.RWMutex
	byID map[string]shift.ShiftTemplate
}

func NewShiftTemplateRepository() *ShiftTemplateRepository {
	return &ShiftTemplateRepository{byID: make(map[string]shift.ShiftTemplate)}
}

func (r *ShiftTemplateRepository) Create(ctx context.Context, template shift.ShiftTemplate) (shift.ShiftTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if template.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return shift.ShiftTemplate{}, err
		}
		template.ID = id.String()
	}

	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	r.byID[template.ID] = template
	return template, nil
}

func (r *ShiftTemplateRepository) GetByID(ctx context.Context, id string) (shift.ShiftTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	template, ok := r.byID[id]
	if !ok {
		return shift.ShiftTemplate{}, shift.ErrShiftNotFound
	}
	return template, nil
}

func (r *ShiftTemplateRepository) List(ctx context.Context) ([]shift.ShiftTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates := make([]shift.ShiftTemplate, 0, len(r.byID))
	for _, template := range r.byID {
		templates = append(templates, template)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

func (r *ShiftTemplateRepository) Update(ctx context.Context, template shift.ShiftTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[template.ID]
	if !ok {
		return shift.ErrShiftNotFound
	}

	template.CreatedAt = stored.CreatedAt
	template.UpdatedAt = time.Now().UTC()
	r.byID[template.ID] = template
	return nil
}

func (r *ShiftTemplateRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.byID, id)
	return nil
}
