package schedule

import (
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/pkg/validator"
)

type SaveScheduleRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	IsCanceled bool   `json:"is_canceled"`
	Notes      string `json:"notes"`
}

func (r *SaveScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	start, okStart := validator.IsValidTimeOfDay(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	end, okEnd := validator.IsValidTimeOfDay(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if okStart && okEnd && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if len(r.Notes) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListUpcomingRequest struct {
	From       string  `json:"from"`
	EmployeeID *string `json:"employee_id"`
	Limit      int     `json:"limit"`
}

func (r *ListUpcomingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.From != "" {
		if _, ok := validator.IsValidDate(r.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Limit < 0 || r.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 0 and 200",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	IsCanceled   bool    `json:"is_canceled"`
	Notes        string  `json:"notes,omitempty"`
}

func MapToResponse(s ScheduledShift) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Date:         s.Date.Format("2006-01-02"),
		StartTime:    s.StartTime.Format("15:04"),
		EndTime:      s.EndTime.Format("15:04"),
		IsCanceled:   s.IsCanceled,
		Notes:        s.Notes,
	}
}

// ParsedDate returns the schedule day as a UTC midnight timestamp. Validate
// must have accepted the request first.
func (r *SaveScheduleRequest) ParsedDate() time.Time {
	t, _ := validator.IsValidDate(r.Date)
	return t
}

// ParsedTimes returns the start and end times of day.
func (r *SaveScheduleRequest) ParsedTimes() (time.Time, time.Time) {
	start, _ := validator.IsValidTimeOfDay(r.StartTime)
	end, _ := validator.IsValidTimeOfDay(r.EndTime)
	return start, end
}
