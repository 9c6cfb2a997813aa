package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

// GetSolo implements policy.PolicyRepository. The row is created lazily with
// defaults on first read; the fixed primary key keeps it a singleton even
// under concurrent first reads.
func (r *policyRepository) GetSolo(ctx context.Context) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, strict_schedule_enforced, allow_unscheduled_clock_in_when_not_strict,
			   grace_minutes_before_start, grace_minutes_after_start,
			   allow_admin_time_edits, require_admin_edit_reason, updated_at
		FROM timeclock_policies
		WHERE id = $1
	`

	var p policy.Policy
	err := q.QueryRow(ctx, query, policy.SingletonID).Scan(
		&p.ID, &p.StrictScheduleEnforced, &p.AllowUnscheduledClockInWhenNotStrict,
		&p.GraceMinutesBeforeStart, &p.GraceMinutesAfterStart,
		&p.AllowAdminTimeEdits, &p.RequireAdminEditReason, &p.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return r.createDefault(ctx)
		}
		return policy.Policy{}, fmt.Errorf("failed to get timeclock policy: %w", err)
	}

	return p, nil
}

func (r *policyRepository) createDefault(ctx context.Context) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	def := policy.Default()

	query := `
		INSERT INTO timeclock_policies (
			id, strict_schedule_enforced, allow_unscheduled_clock_in_when_not_strict,
			grace_minutes_before_start, grace_minutes_after_start,
			allow_admin_time_edits, require_admin_edit_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, strict_schedule_enforced, allow_unscheduled_clock_in_when_not_strict,
				  grace_minutes_before_start, grace_minutes_after_start,
				  allow_admin_time_edits, require_admin_edit_reason, updated_at
	`

	var p policy.Policy
	err := q.QueryRow(ctx, query,
		def.ID,
		def.StrictScheduleEnforced,
		def.AllowUnscheduledClockInWhenNotStrict,
		def.GraceMinutesBeforeStart,
		def.GraceMinutesAfterStart,
		def.AllowAdminTimeEdits,
		def.RequireAdminEditReason,
	).Scan(
		&p.ID, &p.StrictScheduleEnforced, &p.AllowUnscheduledClockInWhenNotStrict,
		&p.GraceMinutesBeforeStart, &p.GraceMinutesAfterStart,
		&p.AllowAdminTimeEdits, &p.RequireAdminEditReason, &p.UpdatedAt,
	)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to create default timeclock policy: %w", err)
	}

	return p, nil
}

// Update implements policy.PolicyRepository.
func (r *policyRepository) Update(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timeclock_policies
		SET strict_schedule_enforced = $1,
			allow_unscheduled_clock_in_when_not_strict = $2,
			grace_minutes_before_start = $3,
			grace_minutes_after_start = $4,
			allow_admin_time_edits = $5,
			require_admin_edit_reason = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.StrictScheduleEnforced,
		p.AllowUnscheduledClockInWhenNotStrict,
		p.GraceMinutesBeforeStart,
		p.GraceMinutesAfterStart,
		p.AllowAdminTimeEdits,
		p.RequireAdminEditReason,
		p.ID,
	).Scan(&p.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.Policy{}, policy.ErrPolicyNotFound
		}
		return policy.Policy{}, fmt.Errorf("failed to update timeclock policy: %w", err)
	}

	return p, nil
}
