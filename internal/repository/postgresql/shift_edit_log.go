package postgresql

import (
	"context"
	"fmt"

	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
)

type shiftEditLogRepository struct {
	db *database.DB
}

func NewShiftEditLogRepository(db *database.DB) shift.ShiftEditLogRepository {
	return &shiftEditLogRepository{db: db}
}

// Create implements shift.ShiftEditLogRepository.
func (r *shiftEditLogRepository) Create(ctx context.Context, l shift.ShiftEditLog) (shift.ShiftEditLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_edit_logs (work_shift_id, edited_by, edited_at, reason, field_name, old_value, new_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		l.WorkShiftID,
		l.EditedBy,
		l.EditedAt,
		l.Reason,
		l.FieldName,
		l.OldValue,
		l.NewValue,
	).Scan(&l.ID)

	if err != nil {
		return shift.ShiftEditLog{}, fmt.Errorf("failed to create shift edit log: %w", err)
	}

	return l, nil
}

// ListByShift implements shift.ShiftEditLogRepository.
func (r *shiftEditLogRepository) ListByShift(ctx context.Context, workShiftID string) ([]shift.ShiftEditLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_shift_id, edited_by, edited_at, reason, field_name, old_value, new_value
		FROM shift_edit_logs
		WHERE work_shift_id = $1
		ORDER BY edited_at DESC, field_name ASC
	`

	rows, err := q.Query(ctx, query, workShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift edit logs: %w", err)
	}
	defer rows.Close()

	var logs []shift.ShiftEditLog
	for rows.Next() {
		var l shift.ShiftEditLog
		if err := rows.Scan(
			&l.ID, &l.WorkShiftID, &l.EditedBy, &l.EditedAt, &l.Reason,
			&l.FieldName, &l.OldValue, &l.NewValue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift edit log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, nil
}
