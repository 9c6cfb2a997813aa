package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
)

type workShiftRepository struct {
	db *database.DB
}

func NewWorkShiftRepository(db *database.DB) shift.WorkShiftRepository {
	return &workShiftRepository{db: db}
}

const workShiftColumns = `
	w.id, w.employee_id, w.scheduled_shift_id, w.clock_in, w.clock_out,
	w.status, w.edited_by, w.edit_reason, w.created_at,
	e.full_name AS employee_name
`

// Create implements shift.WorkShiftRepository.
func (r *workShiftRepository) Create(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_shifts (employee_id, scheduled_shift_id, clock_in, clock_out, status, edit_reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID,
		s.ScheduledShiftID,
		s.ClockIn,
		s.ClockOut,
		s.Status,
		s.EditReason,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return shift.WorkShift{}, fmt.Errorf("failed to create work shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.WorkShiftRepository.
func (r *workShiftRepository) GetByID(ctx context.Context, id string) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workShiftColumns + `
		FROM work_shifts w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.id = $1
	`

	var s shift.WorkShift
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.EmployeeID, &s.ScheduledShiftID, &s.ClockIn, &s.ClockOut,
		&s.Status, &s.EditedBy, &s.EditReason, &s.CreatedAt,
		&s.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.WorkShift{}, shift.ErrShiftNotFound
		}
		return shift.WorkShift{}, fmt.Errorf("failed to get work shift by ID: %w", err)
	}

	if err := r.loadBreaks(ctx, []*shift.WorkShift{&s}); err != nil {
		return shift.WorkShift{}, err
	}

	return s, nil
}

// GetOpenByEmployee implements shift.WorkShiftRepository.
func (r *workShiftRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workShiftColumns + `
		FROM work_shifts w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.employee_id = $1
		  AND w.clock_out IS NULL
		ORDER BY w.clock_in DESC
		LIMIT 1
	`

	var s shift.WorkShift
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.ID, &s.EmployeeID, &s.ScheduledShiftID, &s.ClockIn, &s.ClockOut,
		&s.Status, &s.EditedBy, &s.EditReason, &s.CreatedAt,
		&s.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open work shift: %w", err)
	}

	if err := r.loadBreaks(ctx, []*shift.WorkShift{&s}); err != nil {
		return nil, err
	}

	return &s, nil
}

// Update implements shift.WorkShiftRepository.
func (r *workShiftRepository) Update(ctx context.Context, s shift.WorkShift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_shifts
		SET clock_in = $1,
			clock_out = $2,
			status = $3,
			edited_by = $4,
			edit_reason = $5
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		s.ClockIn,
		s.ClockOut,
		s.Status,
		s.EditedBy,
		s.EditReason,
		s.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update work shift: %w", err)
	}

	return nil
}

// ListByEmployee implements shift.WorkShiftRepository.
func (r *workShiftRepository) ListByEmployee(ctx context.Context, employeeID string, filter shift.Filter) ([]shift.WorkShift, int64, error) {
	scoped := filter
	scoped.EmployeeID = &employeeID
	return r.List(ctx, scoped)
}

// List implements shift.WorkShiftRepository.
func (r *workShiftRepository) List(ctx context.Context, filter shift.Filter) ([]shift.WorkShift, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND w.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND w.clock_in >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		// End date is inclusive of the whole day.
		baseWhere += fmt.Sprintf(" AND w.clock_in < $%d + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND w.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM work_shifts w WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work shifts: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+workShiftColumns+`
		FROM work_shifts w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE %s
		ORDER BY w.clock_in DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query work shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.WorkShift
	for rows.Next() {
		var s shift.WorkShift
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.ScheduledShiftID, &s.ClockIn, &s.ClockOut,
			&s.Status, &s.EditedBy, &s.EditReason, &s.CreatedAt,
			&s.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan work shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	refs := make([]*shift.WorkShift, len(shifts))
	for i := range shifts {
		refs[i] = &shifts[i]
	}
	if err := r.loadBreaks(ctx, refs); err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

// loadBreaks attaches meal breaks to the given shifts with a single query.
func (r *workShiftRepository) loadBreaks(ctx context.Context, shifts []*shift.WorkShift) error {
	if len(shifts) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(shifts))
	byID := make(map[string]*shift.WorkShift, len(shifts))
	for _, s := range shifts {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	query := `
		SELECT id, shift_id, start_time, end_time, created_at
		FROM meal_breaks
		WHERE shift_id = ANY($1)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query meal breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b shift.MealBreak
		if err := rows.Scan(&b.ID, &b.ShiftID, &b.StartTime, &b.EndTime, &b.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan meal break: %w", err)
		}
		if s, ok := byID[b.ShiftID]; ok {
			s.Breaks = append(s.Breaks, b)
		}
	}

	return nil
}
