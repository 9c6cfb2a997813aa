package timeclock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/fixtures"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeclockFixture struct {
	service   shift.TimeclockService
	policies  *fixtures.MemoryPolicyRepository
	schedules *fixtures.MemoryScheduleRepository
	shifts    *fixtures.MemoryWorkShiftRepository
	breaks    *fixtures.MemoryMealBreakRepository
	clk       *clock.Fixed
}

// newTimeclockFixture pins the clock to a Monday 09:00 UTC.
func newTimeclockFixture() *timeclockFixture {
	breaks := fixtures.NewMemoryMealBreakRepository()
	shifts := fixtures.NewMemoryWorkShiftRepository(breaks)
	policies := fixtures.NewMemoryPolicyRepository()
	schedules := fixtures.NewMemoryScheduleRepository()
	clk := clock.NewFixed(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	return &timeclockFixture{
		service:   NewTimeclockService(policies, schedules, shifts, breaks, clk),
		policies:  policies,
		schedules: schedules,
		shifts:    shifts,
		breaks:    breaks,
		clk:       clk,
	}
}

func (f *timeclockFixture) setPolicy(t *testing.T, mutate func(*policy.Policy)) {
	t.Helper()
	ctx := context.Background()

	current, err := f.policies.GetSolo(ctx)
	require.NoError(t, err)
	mutate(&current)
	_, err = f.policies.Update(ctx, current)
	require.NoError(t, err)
}

// scheduleToday plans a 09:00-17:00 shift on the fixture's pinned day.
func (f *timeclockFixture) scheduleToday(t *testing.T, employeeID string) schedule.ScheduledShift {
	t.Helper()

	saved, err := f.schedules.Save(context.Background(), schedule.ScheduledShift{
		EmployeeID: employeeID,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return saved
}

func TestTimeclockService_ClockIn_Scheduled_Success(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	sched := f.scheduleToday(t, "emp-1")

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "Clocked in successfully.", result.Message)
	require.NotNil(t, result.Shift)
	assert.Equal(t, string(shift.StatusOpen), result.Shift.Status)
	require.NotNil(t, result.Shift.ScheduledShiftID)
	assert.Equal(t, sched.ID, *result.Shift.ScheduledShiftID)
}

func TestTimeclockService_ClockIn_StrictNoSchedule_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "No scheduled shift today. Clock in not allowed.", result.Message)
}

func TestTimeclockService_ClockIn_AlreadyOpen_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	first, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	require.True(t, first.Accepted)

	second, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, second.Accepted)
	assert.Equal(t, "You already have an open shift.", second.Message)
}

func TestTimeclockService_ClockIn_WithinGraceWindow(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")
	f.setPolicy(t, func(p *policy.Policy) {
		p.GraceMinutesBeforeStart = 15
		p.GraceMinutesAfterStart = 15
	})

	// Exactly on the late edge: boundaries are inclusive.
	f.clk.Advance(15 * time.Minute)

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestTimeclockService_ClockIn_OutsideGraceWindow_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")
	f.setPolicy(t, func(p *policy.Policy) {
		p.GraceMinutesBeforeStart = 15
		p.GraceMinutesAfterStart = 15
	})

	f.clk.Advance(16 * time.Minute)

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "Clock in outside allowed time window.", result.Message)
}

func TestTimeclockService_ClockIn_GraceDisabled_AnyTime(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	// Both grace values at zero disable the window check, so even a clock in
	// hours late goes through.
	f.clk.Advance(5 * time.Hour)

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestTimeclockService_ClockIn_NonStrictUnscheduled_Flagged(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.setPolicy(t, func(p *policy.Policy) {
		p.StrictScheduleEnforced = false
		p.AllowUnscheduledClockInWhenNotStrict = true
	})

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "Clocked in. No schedule found so this shift was flagged as unscheduled.", result.Message)
	require.NotNil(t, result.Shift)
	assert.Equal(t, string(shift.StatusFlagged), result.Shift.Status)
	assert.Nil(t, result.Shift.ScheduledShiftID)
}

func TestTimeclockService_ClockIn_NonStrictUnscheduledDisallowed_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.setPolicy(t, func(p *policy.Policy) {
		p.StrictScheduleEnforced = false
		p.AllowUnscheduledClockInWhenNotStrict = false
	})

	result, err := f.service.ClockIn(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "Unscheduled clock in not allowed by policy.", result.Message)
}

func TestTimeclockService_ClockOut_NoOpenShift_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()

	result, err := f.service.ClockOut(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "No open shift to clock out from.", result.Message)
}

func TestTimeclockService_ClockOut_OpenBreak_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	_, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	_, err = f.service.StartMealBreak(ctx, "emp-1")
	require.NoError(t, err)

	result, err := f.service.ClockOut(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "End your meal break before clocking out.", result.Message)
}

// Full working day: 09:00 in, 12:00-12:30 meal break, 17:00 out.
func TestTimeclockService_FullDay_Durations(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	clockIn, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	require.True(t, clockIn.Accepted)

	f.clk.Advance(3 * time.Hour)
	started, err := f.service.StartMealBreak(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Meal break started.", started.Message)

	f.clk.Advance(30 * time.Minute)
	ended, err := f.service.EndMealBreak(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, ended.Accepted)
	assert.Equal(t, "Meal break ended.", ended.Message)

	f.clk.Advance(4*time.Hour + 30*time.Minute)
	result, err := f.service.ClockOut(ctx, "emp-1")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "Clocked out successfully.", result.Message)
	require.NotNil(t, result.Shift)
	assert.Equal(t, string(shift.StatusClosed), result.Shift.Status)
	assert.Equal(t, "8:00", result.Shift.TotalHHMM)
	assert.Equal(t, "0:30", result.Shift.BreaksHHMM)
	assert.Equal(t, "7:30", result.Shift.WorkedHHMM)
}

func TestTimeclockService_EndMealBreak_ShortBreakFlagsShift(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	_, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	_, err = f.service.StartMealBreak(ctx, "emp-1")
	require.NoError(t, err)

	f.clk.Advance(10 * time.Minute)
	result, err := f.service.EndMealBreak(ctx, "emp-1")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "Meal break ended. Break was under 30 minutes so this shift was flagged.", result.Message)

	open, err := f.shifts.GetOpenByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, shift.StatusFlagged, open.Status)
}

// A flagged shift must stay flagged through clock out so the review signal
// survives.
func TestTimeclockService_ClockOut_KeepsFlaggedStatus(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.setPolicy(t, func(p *policy.Policy) {
		p.StrictScheduleEnforced = false
	})

	_, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)

	f.clk.Advance(8 * time.Hour)
	result, err := f.service.ClockOut(ctx, "emp-1")

	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, string(shift.StatusFlagged), result.Shift.Status)
}

func TestTimeclockService_StartMealBreak_NoShift_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()

	result, err := f.service.StartMealBreak(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "Clock in first.", result.Message)
}

func TestTimeclockService_StartMealBreak_AlreadyActive_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	_, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	_, err = f.service.StartMealBreak(ctx, "emp-1")
	require.NoError(t, err)

	result, err := f.service.StartMealBreak(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "A meal break is already active.", result.Message)
}

func TestTimeclockService_EndMealBreak_NoneActive_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	_, err := f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)

	result, err := f.service.EndMealBreak(ctx, "emp-1")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "No active meal break.", result.Message)
}

func TestTimeclockService_Status_ReportsOpenShiftAndBreak(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.scheduleToday(t, "emp-1")

	idle, err := f.service.Status(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, idle.OnShift)
	assert.False(t, idle.OnBreak)

	_, err = f.service.ClockIn(ctx, "emp-1")
	require.NoError(t, err)
	_, err = f.service.StartMealBreak(ctx, "emp-1")
	require.NoError(t, err)

	status, err := f.service.Status(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, status.OnShift)
	assert.True(t, status.OnBreak)
	require.NotNil(t, status.Shift)
	require.NotNil(t, status.BreakStart)
}

// Concurrent clock ins for the same employee must open exactly one shift.
func TestTimeclockService_ClockIn_Concurrent_OnlyOneOpens(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.setPolicy(t, func(p *policy.Policy) {
		p.StrictScheduleEnforced = false
	})

	const workers = 8
	results := make([]shift.Result, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.service.ClockIn(ctx, "emp-1")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	accepted := 0
	for _, r := range results {
		if r.Accepted {
			accepted++
		} else {
			assert.Equal(t, "You already have an open shift.", r.Message)
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestTimeclockService_MyShifts_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newTimeclockFixture()
	f.setPolicy(t, func(p *policy.Policy) {
		p.StrictScheduleEnforced = false
	})

	for day := 0; day < 3; day++ {
		_, err := f.service.ClockIn(ctx, "emp-1")
		require.NoError(t, err)
		f.clk.Advance(8 * time.Hour)
		_, err = f.service.ClockOut(ctx, "emp-1")
		require.NoError(t, err)
		f.clk.Advance(16 * time.Hour)
	}

	list, err := f.service.MyShifts(ctx, "emp-1", shift.Filter{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), list.TotalCount)
	require.Len(t, list.Shifts, 3)
	assert.True(t, list.Shifts[0].ClockIn > list.Shifts[1].ClockIn)
	assert.True(t, list.Shifts[1].ClockIn > list.Shifts[2].ClockIn)
}
