package policy

import "context"

// PolicyService exposes the policy singleton to transports and to the
// lifecycle engine.
type PolicyService interface {
	Get(ctx context.Context) (PolicyResponse, error)
	Update(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
}
