package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

type rulesetRepositoryImpl struct {
	db *database.DB
}

func NewRuleSetRepository(db *database.DB) ruleset.RuleSetRepository {
	return &rulesetRepositoryImpl{db: db}
}

// Create implements ruleset.RuleSetRepository.
func (r *rulesetRepositoryImpl) Create(ctx context.Context, rs ruleset.AttendanceRuleSet) (ruleset.AttendanceRuleSet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_rule_sets (
			id, name, standard_hours_per_day, grace_minutes, rounding_policy,
			overtime_requires_approval, night_diff_start, night_diff_end,
			holiday_multiplier, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rs.Name, rs.StandardHoursPerDay, rs.GraceMinutes, string(rs.RoundingPolicy),
		rs.OvertimeRequiresApproval, int(rs.NightDiffStart), int(rs.NightDiffEnd),
		rs.HolidayMultiplier,
	).Scan(&rs.ID, &rs.CreatedAt, &rs.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ruleset.AttendanceRuleSet{}, ruleset.ErrRuleSetNameExists
		}
		return ruleset.AttendanceRuleSet{}, err
	}

	return rs, nil
}

// GetByID implements ruleset.RuleSetRepository. Soft-deleted rows are
// returned too, so timesheets referencing a retired policy keep resolving.
func (r *rulesetRepositoryImpl) GetByID(ctx context.Context, id string) (ruleset.AttendanceRuleSet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, standard_hours_per_day, grace_minutes, rounding_policy,
			   overtime_requires_approval, night_diff_start, night_diff_end,
			   holiday_multiplier, created_at, updated_at, deleted_at
		FROM attendance_rule_sets
		WHERE id = $1
	`

	rs, err := scanRuleSet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ruleset.AttendanceRuleSet{}, ruleset.ErrRuleSetNotFound
		}
		return ruleset.AttendanceRuleSet{}, err
	}
	return rs, nil
}

// List implements ruleset.RuleSetRepository.
func (r *rulesetRepositoryImpl) List(ctx context.Context) ([]ruleset.AttendanceRuleSet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, standard_hours_per_day, grace_minutes, rounding_policy,
			   overtime_requires_approval, night_diff_start, night_diff_end,
			   holiday_multiplier, created_at, updated_at, deleted_at
		FROM attendance_rule_sets
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []ruleset.AttendanceRuleSet
	for rows.Next() {
		rs, err := scanRuleSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// Update implements ruleset.RuleSetRepository.
func (r *rulesetRepositoryImpl) Update(ctx context.Context, rs ruleset.AttendanceRuleSet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_rule_sets
		SET name = $2, standard_hours_per_day = $3, grace_minutes = $4,
			rounding_policy = $5, overtime_requires_approval = $6,
			night_diff_start = $7, night_diff_end = $8, holiday_multiplier = $9,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		rs.ID, rs.Name, rs.StandardHoursPerDay, rs.GraceMinutes,
		string(rs.RoundingPolicy), rs.OvertimeRequiresApproval,
		int(rs.NightDiffStart), int(rs.NightDiffEnd), rs.HolidayMultiplier,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ruleset.ErrRuleSetNameExists
		}
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return ruleset.ErrRuleSetNotFound
	}
	return nil
}

// SoftDelete implements ruleset.RuleSetRepository.
func (r *rulesetRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_rule_sets
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return ruleset.ErrRuleSetNotFound
	}
	return nil
}

func scanRuleSet(row pgx.Row) (ruleset.AttendanceRuleSet, error) {
	var rs ruleset.AttendanceRuleSet
	var policy string
	var nightStart, nightEnd int

	err := row.Scan(
		&rs.ID, &rs.Name, &rs.StandardHoursPerDay, &rs.GraceMinutes, &policy,
		&rs.OvertimeRequiresApproval, &nightStart, &nightEnd,
		&rs.HolidayMultiplier, &rs.CreatedAt, &rs.UpdatedAt, &rs.DeletedAt,
	)
	if err != nil {
		return ruleset.AttendanceRuleSet{}, err
	}

	rs.RoundingPolicy = ruleset.RoundingPolicy(policy)
	rs.NightDiffStart = timeutil.ClockTime(nightStart)
	rs.NightDiffEnd = timeutil.ClockTime(nightEnd)
	return rs, nil
}
