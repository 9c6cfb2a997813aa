package schedule

import "context"

// ScheduleService defines schedule administration operations.
type ScheduleService interface {
	// Save upserts the schedule for (employee, date).
	Save(ctx context.Context, req SaveScheduleRequest) (ScheduleResponse, error)

	// ListUpcoming lists planned shifts from a given day forward.
	ListUpcoming(ctx context.Context, req ListUpcomingRequest) ([]ScheduleResponse, error)
}
