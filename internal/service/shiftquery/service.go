package shiftquery

import (
	"context"
	"fmt"
	"math"

	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
)

// ShiftQueryServiceImpl serves the administrative review listings: single
// shifts and cross-employee filtered lists.
type ShiftQueryServiceImpl struct {
	shiftRepo shift.WorkShiftRepository
}

func NewShiftQueryService(shiftRepo shift.WorkShiftRepository) shift.ShiftQueryService {
	return &ShiftQueryServiceImpl{shiftRepo: shiftRepo}
}

// Get implements shift.ShiftQueryService.
func (s *ShiftQueryServiceImpl) Get(ctx context.Context, id string) (shift.WorkShiftResponse, error) {
	found, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.WorkShiftResponse{}, err
	}
	return shift.MapToResponse(found), nil
}

// List implements shift.ShiftQueryService.
func (s *ShiftQueryServiceImpl) List(ctx context.Context, filter shift.Filter) (shift.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListResponse{}, err
	}

	shifts, total, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return shift.ListResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.WorkShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.MapToResponse(sh))
	}

	return shift.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Shifts:     responses,
	}, nil
}
