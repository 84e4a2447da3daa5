package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chronohr/timesheet-backend-go/internal/domain/attendance"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepositoryImpl{db: db}
}

// List implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, check_in, check_out, status
		FROM attendance_events
		ORDER BY date, employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByEmployeeAndDate implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, check_in, check_out, status
		FROM attendance_events
		WHERE employee_id = $1 AND date = $2
	`

	event, err := scanEvent(q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrNoAttendanceLog
		}
		return attendance.Event{}, err
	}
	return event, nil
}

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var event attendance.Event
	var status string
	var checkIn, checkOut *int

	err := row.Scan(&event.EmployeeID, &event.Date, &checkIn, &checkOut, &status)
	if err != nil {
		return attendance.Event{}, err
	}

	event.Status = attendance.EventStatus(status)
	if checkIn != nil {
		c := timeutil.ClockTime(*checkIn)
		event.CheckIn = &c
	}
	if checkOut != nil {
		c := timeutil.ClockTime(*checkOut)
		event.CheckOut = &c
	}
	return event, nil
}
