package policy

import (
	"context"
	"fmt"

	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
)

type PolicyServiceImpl struct {
	policyRepo policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{policyRepo: policyRepo}
}

// Get implements policy.PolicyService.
func (s *PolicyServiceImpl) Get(ctx context.Context) (policy.PolicyResponse, error) {
	pol, err := s.policyRepo.GetSolo(ctx)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to load timeclock policy: %w", err)
	}
	return policy.MapToResponse(pol), nil
}

// Update implements policy.PolicyService.
func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	// GetSolo first so an update always lands on the lazily created row.
	current, err := s.policyRepo.GetSolo(ctx)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to load timeclock policy: %w", err)
	}

	current.StrictScheduleEnforced = req.StrictScheduleEnforced
	current.AllowUnscheduledClockInWhenNotStrict = req.AllowUnscheduledClockInWhenNotStrict
	current.GraceMinutesBeforeStart = req.GraceMinutesBeforeStart
	current.GraceMinutesAfterStart = req.GraceMinutesAfterStart
	current.AllowAdminTimeEdits = req.AllowAdminTimeEdits
	current.RequireAdminEditReason = req.RequireAdminEditReason

	updated, err := s.policyRepo.Update(ctx, current)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to update timeclock policy: %w", err)
	}

	return policy.MapToResponse(updated), nil
}
