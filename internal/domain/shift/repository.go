package shift

import (
	"context"
	"time"
)

// WorkShiftRepository defines data access for worked shifts.
type WorkShiftRepository interface {
	// Create persists a new shift and returns it with generated fields set.
	Create(ctx context.Context, s WorkShift) (WorkShift, error)

	// GetByID retrieves a shift with its meal breaks loaded.
	GetByID(ctx context.Context, id string) (WorkShift, error)

	// GetOpenByEmployee returns the employee's open shift, or nil when none
	// exists. Used by every lifecycle operation's check-then-act sequence.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*WorkShift, error)

	// Update persists clock out, status and edit metadata changes.
	Update(ctx context.Context, s WorkShift) error

	// ListByEmployee retrieves one employee's shifts filtered by clock-in
	// date range, newest first.
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]WorkShift, int64, error)

	// List retrieves shifts across employees for administrative review.
	List(ctx context.Context, filter Filter) ([]WorkShift, int64, error)
}

// MealBreakRepository defines data access for meal breaks.
type MealBreakRepository interface {
	Create(ctx context.Context, b MealBreak) (MealBreak, error)

	// GetOpenByShift returns the shift's open break, or nil when none exists.
	GetOpenByShift(ctx context.Context, shiftID string) (*MealBreak, error)

	// Update persists the end time of a break.
	Update(ctx context.Context, b MealBreak) error

	ListByShift(ctx context.Context, shiftID string) ([]MealBreak, error)
}

// ShiftEditLogRepository is append-only: audit rows are created and listed,
// never updated or deleted.
type ShiftEditLogRepository interface {
	Create(ctx context.Context, l ShiftEditLog) (ShiftEditLog, error)
	ListByShift(ctx context.Context, workShiftID string) ([]ShiftEditLog, error)
}

// Filter narrows shift listings. Dates apply to the clock-in day.
type Filter struct {
	EmployeeID *string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *string
	Page       int
	Limit      int
}
