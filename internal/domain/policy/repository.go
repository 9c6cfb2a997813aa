package policy

import "context"

// PolicyRepository persists the singleton policy row.
type PolicyRepository interface {
	// GetSolo returns the singleton policy, creating it with defaults when
	// it does not exist yet.
	GetSolo(ctx context.Context) (Policy, error)

	// Update overwrites the singleton's values.
	Update(ctx context.Context, p Policy) (Policy, error)
}
