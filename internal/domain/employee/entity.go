package employee

import "time"

// Employee is a timeclock user. IsAdmin marks portal administrators who
// manage schedules, policy and shift edits.
type Employee struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
