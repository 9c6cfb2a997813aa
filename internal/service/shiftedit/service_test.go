package shiftedit

import (
	"context"
	"testing"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/fixtures"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editFixture struct {
	service  shift.ShiftEditService
	policies *fixtures.MemoryPolicyRepository
	shifts   *fixtures.MemoryWorkShiftRepository
	logs     *fixtures.MemoryShiftEditLogRepository
	clk      *clock.Fixed
}

func newEditFixture() *editFixture {
	breaks := fixtures.NewMemoryMealBreakRepository()
	shifts := fixtures.NewMemoryWorkShiftRepository(breaks)
	policies := fixtures.NewMemoryPolicyRepository()
	logs := fixtures.NewMemoryShiftEditLogRepository()
	clk := clock.NewFixed(time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC))

	return &editFixture{
		service:  NewShiftEditService(policies, shifts, logs, fixtures.NoopTransactor{}, clk),
		policies: policies,
		shifts:   shifts,
		logs:     logs,
		clk:      clk,
	}
}

func (f *editFixture) setPolicy(t *testing.T, mutate func(*policy.Policy)) {
	t.Helper()
	ctx := context.Background()

	current, err := f.policies.GetSolo(ctx)
	require.NoError(t, err)
	mutate(&current)
	_, err = f.policies.Update(ctx, current)
	require.NoError(t, err)
}

// closedShift seeds a 09:00-17:00 shift from the day before the fixture's
// pinned instant.
func (f *editFixture) closedShift(t *testing.T, employeeID string) shift.WorkShift {
	t.Helper()

	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)
	created, err := f.shifts.Create(context.Background(), shift.WorkShift{
		EmployeeID: employeeID,
		ClockIn:    clockIn,
		ClockOut:   &clockOut,
		Status:     shift.StatusClosed,
		CreatedAt:  clockIn,
	})
	require.NoError(t, err)
	return created
}

func TestShiftEditService_EditTimes_Success(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")

	newOut := "2025-03-10T18:00:00Z"
	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T08:30:00Z",
		ClockOut: &newOut,
		Reason:   "Forgot badge, times confirmed by supervisor",
	})

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "Shift times updated.", result.Message)
	require.NotNil(t, result.Shift)
	assert.Equal(t, string(shift.StatusEdited), result.Shift.Status)
	require.NotNil(t, result.Shift.EditedBy)
	assert.Equal(t, "admin-1", *result.Shift.EditedBy)

	// One audit row per changed field.
	logs, err := f.logs.ListByShift(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	byField := map[string]shift.ShiftEditLog{}
	for _, l := range logs {
		byField[l.FieldName] = l
	}
	in, ok := byField["clock_in"]
	require.True(t, ok)
	assert.Equal(t, "2025-03-10 09:00:00", in.OldValue)
	assert.Equal(t, "2025-03-10 08:30:00", in.NewValue)
	out, ok := byField["clock_out"]
	require.True(t, ok)
	assert.Equal(t, "2025-03-10 17:00:00", out.OldValue)
	assert.Equal(t, "2025-03-10 18:00:00", out.NewValue)
}

func TestShiftEditService_EditTimes_SingleFieldSingleLog(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")

	sameOut := "2025-03-10T17:00:00Z"
	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T09:15:00Z",
		ClockOut: &sameOut,
		Reason:   "Late badge scan",
	})

	require.NoError(t, err)
	require.True(t, result.Accepted)

	logs, err := f.logs.ListByShift(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "clock_in", logs[0].FieldName)
}

func TestShiftEditService_EditTimes_OutNotAfterIn_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")

	equalOut := "2025-03-10T09:00:00Z"
	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T09:00:00Z",
		ClockOut: &equalOut,
		Reason:   "typo",
	})

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "Clock out must be after clock in.", result.Message)

	logs, err := f.logs.ListByShift(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestShiftEditService_EditTimes_NoChanges_NoAudit(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")

	sameOut := "2025-03-10T17:00:00Z"
	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T09:00:00Z",
		ClockOut: &sameOut,
		Reason:   "nothing actually changed",
	})

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "No time changes detected.", result.Message)

	// Status stays as it was and no audit rows appear.
	stored, err := f.shifts.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.StatusClosed, stored.Status)

	logs, err := f.logs.ListByShift(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestShiftEditService_EditTimes_DisabledByPolicy_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")
	f.setPolicy(t, func(p *policy.Policy) {
		p.AllowAdminTimeEdits = false
	})

	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T08:00:00Z",
		Reason:   "should not matter",
	})

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "Admin time edits are disabled by policy.", result.Message)
}

func TestShiftEditService_EditTimes_MissingReason_Rejected(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")

	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T08:00:00Z",
		Reason:   "   ",
	})

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "Edit reason is required when changing times.", result.Message)
}

func TestShiftEditService_EditTimes_OptionalReason_FallbackOnAudit(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")
	f.setPolicy(t, func(p *policy.Policy) {
		p.RequireAdminEditReason = false
	})

	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T08:00:00Z",
	})

	require.NoError(t, err)
	require.True(t, result.Accepted)

	logs, err := f.logs.ListByShift(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, "Admin edit", l.Reason)
	}
}

func TestShiftEditService_EditTimes_ReopenShift(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()
	seeded := f.closedShift(t, "emp-1")

	// Omitting clock_out reopens the shift; the old value is logged against
	// an empty new value.
	result, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  seeded.ID,
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T09:00:00Z",
		Reason:   "clock out recorded in error",
	})

	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Nil(t, result.Shift.ClockOut)

	logs, err := f.logs.ListByShift(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "clock_out", logs[0].FieldName)
	assert.Equal(t, "2025-03-10 17:00:00", logs[0].OldValue)
	assert.Equal(t, "", logs[0].NewValue)
}

func TestShiftEditService_EditTimes_UnknownShift(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()

	_, err := f.service.EditTimes(ctx, shift.EditTimesRequest{
		ShiftID:  "00000000-0000-0000-0000-000000000000",
		EditorID: "admin-1",
		ClockIn:  "2025-03-10T08:00:00Z",
		Reason:   "whatever",
	})

	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestShiftEditService_ListEditLogs_UnknownShift(t *testing.T) {
	ctx := context.Background()
	f := newEditFixture()

	_, err := f.service.ListEditLogs(ctx, "00000000-0000-0000-0000-000000000000")

	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}
