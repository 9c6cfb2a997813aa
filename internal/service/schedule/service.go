package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
)

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	clk          clock.Clock
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		clk:          clk,
	}
}

// Save implements schedule.ScheduleService. A second save for the same
// (employee, date) updates the existing row in place.
func (s *ScheduleServiceImpl) Save(ctx context.Context, req schedule.SaveScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	// The employee must exist; a dangling reference is an integrity fault.
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	start, end := req.ParsedTimes()
	saved, err := s.scheduleRepo.Save(ctx, schedule.ScheduledShift{
		EmployeeID: req.EmployeeID,
		Date:       req.ParsedDate(),
		StartTime:  start,
		EndTime:    end,
		IsCanceled: req.IsCanceled,
		Notes:      req.Notes,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to save schedule: %w", err)
	}

	return schedule.MapToResponse(saved), nil
}

// ListUpcoming implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListUpcoming(ctx context.Context, req schedule.ListUpcomingRequest) ([]schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from := s.clk.Now().Truncate(24 * time.Hour)
	if req.From != "" {
		parsed, _ := time.Parse("2006-01-02", req.From)
		from = parsed
	}

	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	schedules, err := s.scheduleRepo.ListUpcoming(ctx, from, req.EmployeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		responses = append(responses, schedule.MapToResponse(sc))
	}

	return responses, nil
}
