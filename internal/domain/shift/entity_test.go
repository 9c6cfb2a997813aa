package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatHHMM(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:00"},
		{60, "0:01"},
		{1800, "0:30"},
		{3600, "1:00"},
		{27000, "7:30"},
		{30600, "8:30"},
		{90000, "25:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHHMM(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestWorkShift_Durations(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)
	breakStart := clockIn.Add(3 * time.Hour)
	breakEnd := breakStart.Add(30 * time.Minute)

	s := WorkShift{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []MealBreak{
			{StartTime: breakStart, EndTime: &breakEnd},
		},
	}

	assert.Equal(t, 8*3600, s.TotalSeconds())
	assert.Equal(t, 1800, s.BreakSeconds())
	assert.Equal(t, 8*3600-1800, s.WorkedSeconds())
}

func TestWorkShift_Durations_OpenShift(t *testing.T) {
	s := WorkShift{ClockIn: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}

	assert.True(t, s.IsOpen())
	assert.Equal(t, 0, s.TotalSeconds())
	assert.Equal(t, 0, s.WorkedSeconds())
}

// An open break contributes nothing until it ends.
func TestWorkShift_BreakSeconds_OpenBreak(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)

	s := WorkShift{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []MealBreak{
			{StartTime: clockIn.Add(3 * time.Hour)},
		},
	}

	assert.Equal(t, 0, s.BreakSeconds())
	assert.Equal(t, 8*3600, s.WorkedSeconds())
}

// Breaks longer than the shift itself must not produce a negative worked
// duration.
func TestWorkShift_WorkedSeconds_Clamped(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(time.Hour)
	breakEnd := clockIn.Add(2 * time.Hour)

	s := WorkShift{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []MealBreak{
			{StartTime: clockIn, EndTime: &breakEnd},
		},
	}

	assert.Equal(t, 0, s.WorkedSeconds())
}

func TestMealBreak_DurationSeconds(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	open := MealBreak{StartTime: start}
	assert.True(t, open.IsOpen())
	assert.Equal(t, 0, open.DurationSeconds())

	closed := MealBreak{StartTime: start, EndTime: &end}
	assert.False(t, closed.IsOpen())
	assert.Equal(t, 2700, closed.DurationSeconds())
}
