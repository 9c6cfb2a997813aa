package shift

import "errors"

// Shift domain errors. These are integrity faults surfaced to the caller;
// expected business rejections travel as Result values, not errors.
var (
	ErrShiftNotFound   = errors.New("work shift not found")
	ErrShiftNotOpen    = errors.New("work shift is not open")
	ErrEditLogNotFound = errors.New("shift edit log not found")
)
