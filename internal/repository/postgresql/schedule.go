package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Save implements schedule.ScheduleRepository. The unique constraint on
// (employee_id, date) turns a repeated save into an in-place update.
func (r *scheduleRepository) Save(ctx context.Context, s schedule.ScheduledShift) (schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO scheduled_shifts (employee_id, date, start_time, end_time, is_canceled, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_canceled = EXCLUDED.is_canceled,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID,
		s.Date,
		s.StartTime,
		s.EndTime,
		s.IsCanceled,
		s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return schedule.ScheduledShift{}, fmt.Errorf("failed to save scheduled shift: %w", err)
	}

	return s, nil
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, start_time, end_time, is_canceled, notes, created_at, updated_at
		FROM scheduled_shifts
		WHERE employee_id = $1
		  AND date = $2
		  AND is_canceled = FALSE
		LIMIT 1
	`

	var s schedule.ScheduledShift
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime, &s.IsCanceled, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scheduled shift by employee and date: %w", err)
	}

	return &s, nil
}

// ListUpcoming implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListUpcoming(ctx context.Context, from time.Time, employeeID *string, limit int) ([]schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "s.date >= $1"
	args := []interface{}{from}
	argIdx := 2

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.date, s.start_time, s.end_time, s.is_canceled, s.notes,
			   s.created_at, s.updated_at,
			   e.full_name AS employee_name
		FROM scheduled_shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.date ASC, s.start_time ASC
		LIMIT $%d
	`, baseWhere, argIdx)
	args = append(args, limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled shifts: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.ScheduledShift
	for rows.Next() {
		var s schedule.ScheduledShift
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime, &s.IsCanceled, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled shift: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, nil
}
