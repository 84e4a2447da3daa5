package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

// Create implements timesheet.TimesheetRepository. The unique index on
// (employee_id, date) is the authoritative guard for the one-record-per-day
// invariant; a violation maps to ErrDuplicateKey.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	segmentsJSON, _ := json.Marshal(ts.Segments)

	query := `
		INSERT INTO timesheets (
			id, employee_id, date, rule_set_id, segments,
			total_hours, regular_hours, overtime_hours, night_diff_hours,
			late_minutes, undertime_minutes, status,
			overtime_pending_approval, incomplete,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ts.EmployeeID, ts.Date.Format("2006-01-02"), ts.RuleSetID, segmentsJSON,
		ts.TotalHours, ts.RegularHours, ts.OvertimeHours, ts.NightDiffHours,
		ts.LateMinutes, ts.UndertimeMinutes, string(ts.Status),
		ts.OvertimePendingApproval, ts.Incomplete,
	).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timesheet.Timesheet{}, timesheet.ErrDuplicateKey
		}
		return timesheet.Timesheet{}, err
	}

	return ts, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := timesheetSelect + ` WHERE id = $1`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, err
	}
	return ts, nil
}

// GetByEmployeeAndDate implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := timesheetSelect + ` WHERE employee_id = $1 AND date = $2`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, err
	}
	return ts, nil
}

// Update implements timesheet.TimesheetRepository. Only the workflow fields
// change after creation; the computed buckets are immutable.
func (r *timesheetRepositoryImpl) Update(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, ts.ID, string(ts.Status), ts.ApprovedBy, ts.ApprovedAt)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM timesheets` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := timesheetSelect + where +
		fmt.Sprintf(" ORDER BY date DESC, employee_id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, err
		}
		sheets = append(sheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

// ListByStatus implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByStatus(ctx context.Context, status timesheet.Status) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := timesheetSelect + ` WHERE status = $1 ORDER BY date, employee_id`

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sheets, nil
}

// ExistingKeys implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ExistingKeys(ctx context.Context) (map[timesheet.Key]timesheet.Status, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, status
		FROM timesheets
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[timesheet.Key]timesheet.Status)
	for rows.Next() {
		var employeeID, status string
		var date time.Time
		if err := rows.Scan(&employeeID, &date, &status); err != nil {
			return nil, err
		}
		key := timesheet.Key{EmployeeID: employeeID, Date: date.Format("2006-01-02")}
		keys[key] = timesheet.Status(status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Delete implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM timesheets
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

const timesheetSelect = `
	SELECT id, employee_id, date, rule_set_id, segments,
		   total_hours, regular_hours, overtime_hours, night_diff_hours,
		   late_minutes, undertime_minutes, status,
		   overtime_pending_approval, incomplete,
		   approved_by, approved_at, created_at, updated_at
	FROM timesheets`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	var status string
	var segmentsJSON []byte

	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.RuleSetID, &segmentsJSON,
		&ts.TotalHours, &ts.RegularHours, &ts.OvertimeHours, &ts.NightDiffHours,
		&ts.LateMinutes, &ts.UndertimeMinutes, &status,
		&ts.OvertimePendingApproval, &ts.Incomplete,
		&ts.ApprovedBy, &ts.ApprovedAt, &ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	ts.Status = timesheet.Status(status)
	if segmentsJSON != nil {
		_ = json.Unmarshal(segmentsJSON, &ts.Segments)
	}
	return ts, nil
}
