package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("scheduled shift not found")
)
