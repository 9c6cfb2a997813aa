package policy

import (
	"github.com/shiftline/timeclock-backend-go/internal/pkg/validator"
)

type PolicyResponse struct {
	StrictScheduleEnforced               bool `json:"strict_schedule_enforced"`
	AllowUnscheduledClockInWhenNotStrict bool `json:"allow_unscheduled_clock_in_when_not_strict"`
	GraceMinutesBeforeStart              int  `json:"grace_minutes_before_start"`
	GraceMinutesAfterStart               int  `json:"grace_minutes_after_start"`
	AllowAdminTimeEdits                  bool `json:"allow_admin_time_edits"`
	RequireAdminEditReason               bool `json:"require_admin_edit_reason"`
}

type UpdatePolicyRequest struct {
	StrictScheduleEnforced               bool `json:"strict_schedule_enforced"`
	AllowUnscheduledClockInWhenNotStrict bool `json:"allow_unscheduled_clock_in_when_not_strict"`
	GraceMinutesBeforeStart              int  `json:"grace_minutes_before_start"`
	GraceMinutesAfterStart               int  `json:"grace_minutes_after_start"`
	AllowAdminTimeEdits                  bool `json:"allow_admin_time_edits"`
	RequireAdminEditReason               bool `json:"require_admin_edit_reason"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GraceMinutesBeforeStart < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes_before_start",
			Message: "grace minutes must not be negative",
		})
	}
	if r.GraceMinutesAfterStart < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes_after_start",
			Message: "grace minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func MapToResponse(p Policy) PolicyResponse {
	return PolicyResponse{
		StrictScheduleEnforced:               p.StrictScheduleEnforced,
		AllowUnscheduledClockInWhenNotStrict: p.AllowUnscheduledClockInWhenNotStrict,
		GraceMinutesBeforeStart:              p.GraceMinutesBeforeStart,
		GraceMinutesAfterStart:               p.GraceMinutesAfterStart,
		AllowAdminTimeEdits:                  p.AllowAdminTimeEdits,
		RequireAdminEditReason:               p.RequireAdminEditReason,
	}
}
