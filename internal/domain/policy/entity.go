package policy

import "time"

// SingletonID is the fixed primary key of the one policy row. Lookups
// create the row with defaults when it is absent.
const SingletonID = 1

// Policy is the global timeclock enforcement configuration. Exactly one
// record exists at all times.
type Policy struct {
	ID                                   int
	StrictScheduleEnforced               bool
	AllowUnscheduledClockInWhenNotStrict bool
	GraceMinutesBeforeStart              int
	GraceMinutesAfterStart               int
	AllowAdminTimeEdits                  bool
	RequireAdminEditReason               bool
	UpdatedAt                            time.Time
}

// Default returns the policy values applied when the singleton row is
// first created.
func Default() Policy {
	return Policy{
		ID:                                   SingletonID,
		StrictScheduleEnforced:               true,
		AllowUnscheduledClockInWhenNotStrict: true,
		GraceMinutesBeforeStart:              0,
		GraceMinutesAfterStart:               0,
		AllowAdminTimeEdits:                  true,
		RequireAdminEditReason:               true,
	}
}

// WindowEnforced reports whether the clock-in grace window applies. Both
// grace values at zero means the window check is disabled entirely, not a
// zero-width window.
func (p *Policy) WindowEnforced() bool {
	return p.GraceMinutesBeforeStart > 0 || p.GraceMinutesAfterStart > 0
}
