package schedule

import "time"

// ScheduledShift is a planned shift for an employee on a calendar date.
// StartTime and EndTime carry only a time of day; the uniqueness constraint
// on (employee, date) makes saves behave as upserts.
type ScheduledShift struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	IsCanceled bool
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// StartOn anchors the scheduled start time-of-day onto the given calendar
// day in the given location. Used for grace window math.
func (s *ScheduledShift) StartOn(day time.Time, loc *time.Location) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0,
		loc,
	)
}
