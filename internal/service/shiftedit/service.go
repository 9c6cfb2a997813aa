package shiftedit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
)

// fallbackReason is recorded on audit rows when policy does not require an
// explicit reason and none was supplied.
const fallbackReason = "Admin edit"

type ShiftEditServiceImpl struct {
	policyRepo policy.PolicyRepository
	shiftRepo  shift.WorkShiftRepository
	logRepo    shift.ShiftEditLogRepository
	tx         database.Transactor
	clk        clock.Clock
}

func NewShiftEditService(
	policyRepo policy.PolicyRepository,
	shiftRepo shift.WorkShiftRepository,
	logRepo shift.ShiftEditLogRepository,
	tx database.Transactor,
	clk clock.Clock,
) shift.ShiftEditService {
	return &ShiftEditServiceImpl{
		policyRepo: policyRepo,
		shiftRepo:  shiftRepo,
		logRepo:    logRepo,
		tx:         tx,
		clk:        clk,
	}
}

// EditTimes implements shift.ShiftEditService. Admin edits bypass the
// lifecycle engine but are strict because they affect payroll accuracy:
// chronological order always holds, policy may forbid edits or demand a
// reason, and every changed field lands in the audit log.
func (s *ShiftEditServiceImpl) EditTimes(ctx context.Context, req shift.EditTimesRequest) (shift.Result, error) {
	if err := req.Validate(); err != nil {
		return shift.Result{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.Result{}, err
	}

	newClockIn := req.ParsedClockIn()
	newClockOut := req.ParsedClockOut()

	// Chronological-order invariant: equal timestamps are invalid too.
	if newClockOut != nil && !newClockOut.After(newClockIn) {
		return shift.Rejected("Clock out must be after clock in."), nil
	}

	inChanged := !newClockIn.Equal(current.ClockIn)
	outChanged := !timePtrEqual(current.ClockOut, newClockOut)

	if !inChanged && !outChanged {
		resp := shift.MapToResponse(current)
		return shift.Result{Accepted: true, Message: "No time changes detected.", Shift: &resp}, nil
	}

	pol, err := s.policyRepo.GetSolo(ctx)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to load timeclock policy: %w", err)
	}

	if !pol.AllowAdminTimeEdits {
		return shift.Rejected("Admin time edits are disabled by policy."), nil
	}

	reason := strings.TrimSpace(req.Reason)
	if pol.RequireAdminEditReason && reason == "" {
		return shift.Rejected("Edit reason is required when changing times."), nil
	}

	now := s.clk.Now()

	// One audit row per changed field, captured before the shift mutates.
	logReason := reason
	if logReason == "" {
		logReason = fallbackReason
	}

	var logs []shift.ShiftEditLog
	if inChanged {
		logs = append(logs, shift.ShiftEditLog{
			WorkShiftID: current.ID,
			EditedBy:    req.EditorID,
			EditedAt:    now,
			Reason:      logReason,
			FieldName:   "clock_in",
			OldValue:    formatTimeValue(&current.ClockIn),
			NewValue:    formatTimeValue(&newClockIn),
		})
	}
	if outChanged {
		logs = append(logs, shift.ShiftEditLog{
			WorkShiftID: current.ID,
			EditedBy:    req.EditorID,
			EditedAt:    now,
			Reason:      logReason,
			FieldName:   "clock_out",
			OldValue:    formatTimeValue(current.ClockOut),
			NewValue:    formatTimeValue(newClockOut),
		})
	}

	current.ClockIn = newClockIn
	current.ClockOut = newClockOut
	current.Status = shift.StatusEdited
	current.EditedBy = &req.EditorID
	current.EditReason = reason

	// The shift update and its audit rows land together or not at all.
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.shiftRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update work shift: %w", err)
		}
		for _, l := range logs {
			if _, err := s.logRepo.Create(ctx, l); err != nil {
				return fmt.Errorf("failed to write shift edit log: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return shift.Result{}, err
	}

	resp := shift.MapToResponse(current)
	return shift.Result{Accepted: true, Message: "Shift times updated.", Shift: &resp}, nil
}

// ListEditLogs implements shift.ShiftEditService.
func (s *ShiftEditServiceImpl) ListEditLogs(ctx context.Context, workShiftID string) ([]shift.EditLogResponse, error) {
	// Surface ErrShiftNotFound for dangling IDs rather than an empty list.
	if _, err := s.shiftRepo.GetByID(ctx, workShiftID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByShift(ctx, workShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift edit logs: %w", err)
	}

	responses := make([]shift.EditLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, shift.EditLogResponse{
			ID:          l.ID,
			WorkShiftID: l.WorkShiftID,
			EditedBy:    l.EditedBy,
			EditedAt:    l.EditedAt.Format(time.RFC3339),
			Reason:      l.Reason,
			FieldName:   l.FieldName,
			OldValue:    l.OldValue,
			NewValue:    l.NewValue,
		})
	}

	return responses, nil
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// formatTimeValue stringifies a timestamp for audit rows; nil renders as
// the empty string.
func formatTimeValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
