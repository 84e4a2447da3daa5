package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chronohr/timesheet-backend-go/internal/domain/shift"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) shift.ShiftTemplateRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftTemplateRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, template shift.ShiftTemplate) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_templates (
			id, name, start_time, end_time, grace_period_minutes,
			break_duration_minutes, work_days, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		template.Name, int(template.StartTime), int(template.EndTime),
		template.GracePeriodMinutes, template.BreakDurationMinutes,
		workDaysToInt32(template.WorkDays),
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.ShiftTemplate{}, shift.ErrShiftNameExists
		}
		return shift.ShiftTemplate{}, err
	}

	return template, nil
}

// GetByID implements shift.ShiftTemplateRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, grace_period_minutes,
			   break_duration_minutes, work_days, created_at, updated_at
		FROM shift_templates
		WHERE id = $1
	`

	template, err := scanShiftTemplate(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftTemplate{}, shift.ErrShiftNotFound
		}
		return shift.ShiftTemplate{}, err
	}
	return template, nil
}

// List implements shift.ShiftTemplateRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, grace_period_minutes,
			   break_duration_minutes, work_days, created_at, updated_at
		FROM shift_templates
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []shift.ShiftTemplate
	for rows.Next() {
		template, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update implements shift.ShiftTemplateRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, template shift.ShiftTemplate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET name = $2, start_time = $3, end_time = $4, grace_period_minutes = $5,
			break_duration_minutes = $6, work_days = $7, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		template.ID, template.Name, int(template.StartTime), int(template.EndTime),
		template.GracePeriodMinutes, template.BreakDurationMinutes,
		workDaysToInt32(template.WorkDays),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.ErrShiftNameExists
		}
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Delete implements shift.ShiftTemplateRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shift_templates
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func scanShiftTemplate(row pgx.Row) (shift.ShiftTemplate, error) {
	var template shift.ShiftTemplate
	var startTime, endTime int
	var workDays []int32

	err := row.Scan(
		&template.ID, &template.Name, &startTime, &endTime,
		&template.GracePeriodMinutes, &template.BreakDurationMinutes,
		&workDays, &template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		return shift.ShiftTemplate{}, err
	}

	template.StartTime = timeutil.ClockTime(startTime)
	template.EndTime = timeutil.ClockTime(endTime)
	template.WorkDays = make([]int, 0, len(workDays))
	for _, day := range workDays {
		template.WorkDays = append(template.WorkDays, int(day))
	}
	return template, nil
}

func workDaysToInt32(days []int) []int32 {
	converted := make([]int32, 0, len(days))
	for _, day := range days {
		converted = append(converted, int32(day))
	}
	return converted
}
