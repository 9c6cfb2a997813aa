package shift

import "context"

// TimeclockService is the shift lifecycle engine: the only writer of shifts
// and meal breaks on the employee path. Expected business rejections come
// back as a Result with Accepted=false; errors are reserved for storage and
// integrity faults.
type TimeclockService interface {
	// ClockIn opens a shift for the employee, enforcing schedule policy and
	// the grace window, flagging unscheduled shifts.
	ClockIn(ctx context.Context, employeeID string) (Result, error)

	// ClockOut closes the employee's open shift. FLAGGED and EDITED shifts
	// keep their status.
	ClockOut(ctx context.Context, employeeID string) (Result, error)

	// StartMealBreak opens a break on the employee's open shift.
	StartMealBreak(ctx context.Context, employeeID string) (Result, error)

	// EndMealBreak closes the open break, flagging the shift when the break
	// ran shorter than the legal minimum.
	EndMealBreak(ctx context.Context, employeeID string) (Result, error)

	// Status reports the employee's open shift and open break, if any.
	Status(ctx context.Context, employeeID string) (StatusResponse, error)

	// MyShifts lists the caller's shifts with durations.
	MyShifts(ctx context.Context, employeeID string, filter Filter) (ListResponse, error)
}

// ShiftEditService validates and applies administrative time edits,
// producing one audit row per changed field.
type ShiftEditService interface {
	EditTimes(ctx context.Context, req EditTimesRequest) (Result, error)
	ListEditLogs(ctx context.Context, workShiftID string) ([]EditLogResponse, error)
}

// ShiftQueryService serves administrative review listings.
type ShiftQueryService interface {
	Get(ctx context.Context, id string) (WorkShiftResponse, error)
	List(ctx context.Context, filter Filter) (ListResponse, error)
}
