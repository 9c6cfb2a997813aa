package shift

import (
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/pkg/validator"
)

// Result is the outcome contract of lifecycle and edit operations. Accepted
// reports whether the transition was applied; Message is surfaced to the
// caller as-is either way.
type Result struct {
	Accepted bool               `json:"accepted"`
	Message  string             `json:"message"`
	Shift    *WorkShiftResponse `json:"shift,omitempty"`
}

// Rejected builds the rejection outcome for an expected business rule.
func Rejected(message string) Result {
	return Result{Accepted: false, Message: message}
}

type WorkShiftResponse struct {
	ID               string              `json:"id"`
	EmployeeID       string              `json:"employee_id"`
	EmployeeName     *string             `json:"employee_name,omitempty"`
	ScheduledShiftID *string             `json:"scheduled_shift_id,omitempty"`
	ClockIn          string              `json:"clock_in"`
	ClockOut         *string             `json:"clock_out,omitempty"`
	Status           string              `json:"status"`
	EditedBy         *string             `json:"edited_by,omitempty"`
	EditReason       string              `json:"edit_reason,omitempty"`
	TotalHHMM        string              `json:"total_hhmm"`
	BreaksHHMM       string              `json:"breaks_hhmm"`
	WorkedHHMM       string              `json:"worked_hhmm"`
	Breaks           []MealBreakResponse `json:"breaks,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

type MealBreakResponse struct {
	ID        string  `json:"id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
}

type StatusResponse struct {
	OnShift    bool               `json:"on_shift"`
	OnBreak    bool               `json:"on_break"`
	Shift      *WorkShiftResponse `json:"shift,omitempty"`
	BreakStart *string            `json:"break_start,omitempty"`
}

type ListResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Shifts     []WorkShiftResponse `json:"shifts"`
}

type EditLogResponse struct {
	ID          string `json:"id"`
	WorkShiftID string `json:"work_shift_id"`
	EditedBy    string `json:"edited_by"`
	EditedAt    string `json:"edited_at"`
	Reason      string `json:"reason"`
	FieldName   string `json:"field_name"`
	OldValue    string `json:"old_value"`
	NewValue    string `json:"new_value"`
}

// EditTimesRequest is an administrative proposal of new clock times for an
// existing shift. EditorID comes from the caller's claims, never the body.
type EditTimesRequest struct {
	ShiftID  string  `json:"-"`
	EditorID string  `json:"-"`
	ClockIn  string  `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Reason   string  `json:"reason"`
}

func (r *EditTimesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if validator.IsEmpty(r.ClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.ClockIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be an ISO8601 timestamp",
		})
	}

	if r.ClockOut != nil && *r.ClockOut != "" {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedClockIn returns the proposed clock in as UTC. Validate must have
// accepted the request first.
func (r *EditTimesRequest) ParsedClockIn() time.Time {
	t, _ := validator.IsValidDateTime(r.ClockIn)
	return t.UTC()
}

// ParsedClockOut returns the proposed clock out as UTC, or nil when the
// proposal leaves the shift open.
func (r *EditTimesRequest) ParsedClockOut() *time.Time {
	if r.ClockOut == nil || *r.ClockOut == "" {
		return nil
	}
	t, _ := validator.IsValidDateTime(*r.ClockOut)
	u := t.UTC()
	return &u
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 20
	}

	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of OPEN, CLOSED, EDITED, FLAGGED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MapToResponse converts a WorkShift entity to its response shape with
// formatted durations.
func MapToResponse(s WorkShift) WorkShiftResponse {
	breaks := make([]MealBreakResponse, 0, len(s.Breaks))
	for _, b := range s.Breaks {
		breaks = append(breaks, MealBreakResponse{
			ID:        b.ID,
			StartTime: b.StartTime.Format(time.RFC3339),
			EndTime:   timePtrToString(b.EndTime),
		})
	}

	return WorkShiftResponse{
		ID:               s.ID,
		EmployeeID:       s.EmployeeID,
		EmployeeName:     s.EmployeeName,
		ScheduledShiftID: s.ScheduledShiftID,
		ClockIn:          s.ClockIn.Format(time.RFC3339),
		ClockOut:         timePtrToString(s.ClockOut),
		Status:           string(s.Status),
		EditedBy:         s.EditedBy,
		EditReason:       s.EditReason,
		TotalHHMM:        FormatHHMM(s.TotalSeconds()),
		BreaksHHMM:       FormatHHMM(s.BreakSeconds()),
		WorkedHHMM:       FormatHHMM(s.WorkedSeconds()),
		Breaks:           breaks,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
	}
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
