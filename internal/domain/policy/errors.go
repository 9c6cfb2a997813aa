package policy

import "errors"

var (
	ErrPolicyNotFound = errors.New("timeclock policy not found")
)
