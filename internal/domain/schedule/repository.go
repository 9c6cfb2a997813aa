package schedule

import (
	"context"
	"time"
)

// ScheduleRepository defines data access for planned shifts.
type ScheduleRepository interface {
	// Save creates the schedule, or updates the existing row in place when
	// one already exists for the same (employee, date).
	Save(ctx context.Context, s ScheduledShift) (ScheduledShift, error)

	// GetByEmployeeAndDate returns the non-canceled schedule for the
	// employee on the given day, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ScheduledShift, error)

	// ListUpcoming lists schedules on or after the given day, soonest
	// first, optionally restricted to one employee.
	ListUpcoming(ctx context.Context, from time.Time, employeeID *string, limit int) ([]ScheduledShift, error)
}
