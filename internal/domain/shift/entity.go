package shift

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusEdited  Status = "EDITED"
	StatusFlagged Status = "FLAGGED"
)

var StatusValues = []string{
	string(StatusOpen),
	string(StatusClosed),
	string(StatusEdited),
	string(StatusFlagged),
}

// WorkShift is an actual worked shift produced by clock in and clock out.
// A shift is open while ClockOut is nil. At most one open shift exists per
// employee at any time.
type WorkShift struct {
	ID               string
	EmployeeID       string
	ScheduledShiftID *string
	ClockIn          time.Time
	ClockOut         *time.Time
	Status           Status
	EditedBy         *string
	EditReason       string
	CreatedAt        time.Time

	// Loaded alongside the shift for duration math and display.
	Breaks []MealBreak

	// DTO
	EmployeeName *string
}

func (s *WorkShift) IsOpen() bool {
	return s.ClockOut == nil
}

// TotalSeconds returns clock out minus clock in, or 0 while the shift is open.
func (s *WorkShift) TotalSeconds() int {
	if s.ClockOut == nil {
		return 0
	}
	return int(s.ClockOut.Sub(s.ClockIn).Seconds())
}

// BreakSeconds sums completed meal breaks only. Open breaks contribute 0.
func (s *WorkShift) BreakSeconds() int {
	total := 0
	for _, b := range s.Breaks {
		total += b.DurationSeconds()
	}
	return total
}

// WorkedSeconds is total minus breaks, clamped so malformed data never
// yields a negative duration.
func (s *WorkShift) WorkedSeconds() int {
	total := s.TotalSeconds()
	if total <= 0 {
		return 0
	}
	worked := total - s.BreakSeconds()
	if worked < 0 {
		return 0
	}
	return worked
}

// MealBreak belongs to exactly one WorkShift. A break is open while EndTime
// is nil; at most one open break exists per shift.
type MealBreak struct {
	ID        string
	ShiftID   string
	StartTime time.Time
	EndTime   *time.Time
	CreatedAt time.Time
}

func (b *MealBreak) IsOpen() bool {
	return b.EndTime == nil
}

func (b *MealBreak) DurationSeconds() int {
	if b.EndTime == nil {
		return 0
	}
	return int(b.EndTime.Sub(b.StartTime).Seconds())
}

// ShiftEditLog is one append-only audit row per changed field of an
// administrative time edit. Rows are never updated or deleted.
type ShiftEditLog struct {
	ID          string
	WorkShiftID string
	EditedBy    string
	EditedAt    time.Time
	Reason      string
	FieldName   string
	OldValue    string
	NewValue    string
}

// FormatHHMM renders a non-negative duration as "H:MM" with unbounded hours
// and zero-padded minutes.
func FormatHHMM(seconds int) string {
	totalMinutes := seconds / 60
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}
