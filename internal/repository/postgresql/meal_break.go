package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
)

type mealBreakRepository struct {
	db *database.DB
}

func NewMealBreakRepository(db *database.DB) shift.MealBreakRepository {
	return &mealBreakRepository{db: db}
}

// Create implements shift.MealBreakRepository.
func (r *mealBreakRepository) Create(ctx context.Context, b shift.MealBreak) (shift.MealBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO meal_breaks (shift_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		b.ShiftID,
		b.StartTime,
		b.EndTime,
	).Scan(&b.ID, &b.CreatedAt)

	if err != nil {
		return shift.MealBreak{}, fmt.Errorf("failed to create meal break: %w", err)
	}

	return b, nil
}

// GetOpenByShift implements shift.MealBreakRepository.
func (r *mealBreakRepository) GetOpenByShift(ctx context.Context, shiftID string) (*shift.MealBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, start_time, end_time, created_at
		FROM meal_breaks
		WHERE shift_id = $1
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var b shift.MealBreak
	err := q.QueryRow(ctx, query, shiftID).Scan(
		&b.ID, &b.ShiftID, &b.StartTime, &b.EndTime, &b.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open meal break: %w", err)
	}

	return &b, nil
}

// Update implements shift.MealBreakRepository.
func (r *mealBreakRepository) Update(ctx context.Context, b shift.MealBreak) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE meal_breaks
		SET end_time = $1
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, b.EndTime, b.ID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("meal break not found: %w", err)
		}
		return fmt.Errorf("failed to update meal break: %w", err)
	}

	return nil
}

// ListByShift implements shift.MealBreakRepository.
func (r *mealBreakRepository) ListByShift(ctx context.Context, shiftID string) ([]shift.MealBreak, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, start_time, end_time, created_at
		FROM meal_breaks
		WHERE shift_id = $1
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal breaks: %w", err)
	}
	defer rows.Close()

	var breaks []shift.MealBreak
	for rows.Next() {
		var b shift.MealBreak
		if err := rows.Scan(&b.ID, &b.ShiftID, &b.StartTime, &b.EndTime, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal break: %w", err)
		}
		breaks = append(breaks, b)
	}

	return breaks, nil
}
