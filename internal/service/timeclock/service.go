package timeclock

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/keylock"
)

// minBreakDuration is the legal meal break minimum. Shorter breaks flag the
// shift for administrative review.
const minBreakDuration = 30 * time.Minute

type TimeclockServiceImpl struct {
	policyRepo   policy.PolicyRepository
	scheduleRepo schedule.ScheduleRepository
	shiftRepo    shift.WorkShiftRepository
	breakRepo    shift.MealBreakRepository
	clk          clock.Clock
	locks        *keylock.KeyLock
}

func NewTimeclockService(
	policyRepo policy.PolicyRepository,
	scheduleRepo schedule.ScheduleRepository,
	shiftRepo shift.WorkShiftRepository,
	breakRepo shift.MealBreakRepository,
	clk clock.Clock,
) shift.TimeclockService {
	return &TimeclockServiceImpl{
		policyRepo:   policyRepo,
		scheduleRepo: scheduleRepo,
		shiftRepo:    shiftRepo,
		breakRepo:    breakRepo,
		clk:          clk,
		locks:        keylock.New(),
	}
}

// ClockIn implements shift.TimeclockService.
func (t *TimeclockServiceImpl) ClockIn(ctx context.Context, employeeID string) (shift.Result, error) {
	t.locks.Lock(employeeID)
	defer t.locks.Unlock(employeeID)

	// Server clock is read once and reused for every comparison and the
	// persisted value.
	now := t.clk.Now()

	open, err := t.shiftRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open != nil {
		return shift.Rejected("You already have an open shift."), nil
	}

	pol, err := t.policyRepo.GetSolo(ctx)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to load timeclock policy: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sched, err := t.scheduleRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up schedule: %w", err)
	}

	if pol.StrictScheduleEnforced {
		// Strict mode requires a schedule for today.
		if sched == nil {
			return shift.Rejected("No scheduled shift today. Clock in not allowed."), nil
		}

		// Window enforcement only applies when at least one grace value is
		// configured; both at zero disables the check entirely.
		if pol.WindowEnforced() {
			start := sched.StartOn(now, time.UTC)
			earlyOK := start.Add(-time.Duration(pol.GraceMinutesBeforeStart) * time.Minute)
			lateOK := start.Add(time.Duration(pol.GraceMinutesAfterStart) * time.Minute)

			if now.Before(earlyOK) || now.After(lateOK) {
				return shift.Rejected("Clock in outside allowed time window."), nil
			}
		}
	} else {
		// Non strict mode can still block unscheduled clock in by policy.
		if sched == nil && !pol.AllowUnscheduledClockInWhenNotStrict {
			return shift.Rejected("Unscheduled clock in not allowed by policy."), nil
		}
	}

	newShift := shift.WorkShift{
		EmployeeID: employeeID,
		ClockIn:    now,
		Status:     shift.StatusOpen,
		CreatedAt:  now,
	}
	if sched != nil {
		newShift.ScheduledShiftID = &sched.ID
	} else {
		// The only path that creates a shift without a schedule, and it
		// always flags it for admin review.
		newShift.Status = shift.StatusFlagged
	}

	created, err := t.shiftRepo.Create(ctx, newShift)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to create work shift: %w", err)
	}

	resp := shift.MapToResponse(created)
	if sched == nil {
		return shift.Result{
			Accepted: true,
			Message:  "Clocked in. No schedule found so this shift was flagged as unscheduled.",
			Shift:    &resp,
		}, nil
	}

	return shift.Result{Accepted: true, Message: "Clocked in successfully.", Shift: &resp}, nil
}

// ClockOut implements shift.TimeclockService.
func (t *TimeclockServiceImpl) ClockOut(ctx context.Context, employeeID string) (shift.Result, error) {
	t.locks.Lock(employeeID)
	defer t.locks.Unlock(employeeID)

	now := t.clk.Now()

	open, err := t.shiftRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return shift.Rejected("No open shift to clock out from."), nil
	}

	openBreak, err := t.breakRepo.GetOpenByShift(ctx, open.ID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open meal break: %w", err)
	}
	if openBreak != nil {
		return shift.Rejected("End your meal break before clocking out."), nil
	}

	open.ClockOut = &now

	// FLAGGED and EDITED shifts keep their status so the review signal is
	// not lost on clock out.
	if open.Status == shift.StatusOpen {
		open.Status = shift.StatusClosed
	}

	if err := t.shiftRepo.Update(ctx, *open); err != nil {
		return shift.Result{}, fmt.Errorf("failed to close work shift: %w", err)
	}

	resp := shift.MapToResponse(*open)
	return shift.Result{Accepted: true, Message: "Clocked out successfully.", Shift: &resp}, nil
}

// StartMealBreak implements shift.TimeclockService.
func (t *TimeclockServiceImpl) StartMealBreak(ctx context.Context, employeeID string) (shift.Result, error) {
	t.locks.Lock(employeeID)
	defer t.locks.Unlock(employeeID)

	now := t.clk.Now()

	open, err := t.shiftRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return shift.Rejected("Clock in first."), nil
	}

	openBreak, err := t.breakRepo.GetOpenByShift(ctx, open.ID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open meal break: %w", err)
	}
	if openBreak != nil {
		return shift.Rejected("A meal break is already active."), nil
	}

	if _, err := t.breakRepo.Create(ctx, shift.MealBreak{
		ShiftID:   open.ID,
		StartTime: now,
		CreatedAt: now,
	}); err != nil {
		return shift.Result{}, fmt.Errorf("failed to create meal break: %w", err)
	}

	return shift.Result{Accepted: true, Message: "Meal break started."}, nil
}

// EndMealBreak implements shift.TimeclockService.
func (t *TimeclockServiceImpl) EndMealBreak(ctx context.Context, employeeID string) (shift.Result, error) {
	t.locks.Lock(employeeID)
	defer t.locks.Unlock(employeeID)

	now := t.clk.Now()

	open, err := t.shiftRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return shift.Rejected("Clock in first."), nil
	}

	openBreak, err := t.breakRepo.GetOpenByShift(ctx, open.ID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to look up open meal break: %w", err)
	}
	if openBreak == nil {
		return shift.Rejected("No active meal break."), nil
	}

	openBreak.EndTime = &now
	if err := t.breakRepo.Update(ctx, *openBreak); err != nil {
		return shift.Result{}, fmt.Errorf("failed to end meal break: %w", err)
	}

	if now.Sub(openBreak.StartTime) < minBreakDuration {
		open.Status = shift.StatusFlagged
		if err := t.shiftRepo.Update(ctx, *open); err != nil {
			return shift.Result{}, fmt.Errorf("failed to flag short break: %w", err)
		}
		return shift.Result{
			Accepted: true,
			Message:  "Meal break ended. Break was under 30 minutes so this shift was flagged.",
		}, nil
	}

	return shift.Result{Accepted: true, Message: "Meal break ended."}, nil
}

// Status implements shift.TimeclockService.
func (t *TimeclockServiceImpl) Status(ctx context.Context, employeeID string) (shift.StatusResponse, error) {
	open, err := t.shiftRepo.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return shift.StatusResponse{}, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return shift.StatusResponse{}, nil
	}

	resp := shift.MapToResponse(*open)
	status := shift.StatusResponse{OnShift: true, Shift: &resp}

	openBreak, err := t.breakRepo.GetOpenByShift(ctx, open.ID)
	if err != nil {
		return shift.StatusResponse{}, fmt.Errorf("failed to look up open meal break: %w", err)
	}
	if openBreak != nil {
		started := openBreak.StartTime.Format(time.RFC3339)
		status.OnBreak = true
		status.BreakStart = &started
	}

	return status, nil
}

// MyShifts implements shift.TimeclockService.
func (t *TimeclockServiceImpl) MyShifts(ctx context.Context, employeeID string, filter shift.Filter) (shift.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListResponse{}, err
	}

	shifts, total, err := t.shiftRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return shift.ListResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.WorkShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		responses = append(responses, shift.MapToResponse(s))
	}

	return shift.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Shifts:     responses,
	}, nil
}
