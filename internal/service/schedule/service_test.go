package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/fixtures"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleFixture(t *testing.T) (schedule.ScheduleService, string) {
	t.Helper()

	employees := fixtures.NewMemoryEmployeeRepository()
	schedules := fixtures.NewMemoryScheduleRepository()
	clk := clock.NewFixed(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	emp, err := employees.Create(context.Background(), employee.Employee{
		Username: "jdoe",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	return NewScheduleService(schedules, employees, clk), emp.ID
}

func TestScheduleService_Save_Success(t *testing.T) {
	ctx := context.Background()
	service, employeeID := newScheduleFixture(t)

	saved, err := service.Save(ctx, schedule.SaveScheduleRequest{
		EmployeeID: employeeID,
		Date:       "2025-03-11",
		StartTime:  "09:00",
		EndTime:    "17:00",
		Notes:      "front desk",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "2025-03-11", saved.Date)
	assert.Equal(t, "09:00", saved.StartTime)
	assert.Equal(t, "17:00", saved.EndTime)
}

// A second save for the same employee and date updates in place rather than
// creating a duplicate.
func TestScheduleService_Save_UpsertsSameDay(t *testing.T) {
	ctx := context.Background()
	service, employeeID := newScheduleFixture(t)

	first, err := service.Save(ctx, schedule.SaveScheduleRequest{
		EmployeeID: employeeID,
		Date:       "2025-03-11",
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	second, err := service.Save(ctx, schedule.SaveScheduleRequest{
		EmployeeID: employeeID,
		Date:       "2025-03-11",
		StartTime:  "10:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "10:00", second.StartTime)
}

func TestScheduleService_Save_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	service, _ := newScheduleFixture(t)

	_, err := service.Save(ctx, schedule.SaveScheduleRequest{
		EmployeeID: "00000000-0000-0000-0000-000000000000",
		Date:       "2025-03-11",
		StartTime:  "09:00",
		EndTime:    "17:00",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestScheduleService_Save_EndBeforeStart_Invalid(t *testing.T) {
	ctx := context.Background()
	service, employeeID := newScheduleFixture(t)

	_, err := service.Save(ctx, schedule.SaveScheduleRequest{
		EmployeeID: employeeID,
		Date:       "2025-03-11",
		StartTime:  "17:00",
		EndTime:    "09:00",
	})

	assert.Error(t, err)
}

func TestScheduleService_ListUpcoming_SkipsPast(t *testing.T) {
	ctx := context.Background()
	service, employeeID := newScheduleFixture(t)

	for _, date := range []string{"2025-03-08", "2025-03-10", "2025-03-12"} {
		_, err := service.Save(ctx, schedule.SaveScheduleRequest{
			EmployeeID: employeeID,
			Date:       date,
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
		require.NoError(t, err)
	}

	upcoming, err := service.ListUpcoming(ctx, schedule.ListUpcomingRequest{})

	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "2025-03-10", upcoming[0].Date)
	assert.Equal(t, "2025-03-12", upcoming[1].Date)
}
