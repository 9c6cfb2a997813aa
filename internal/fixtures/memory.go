// Package fixtures provides in-memory repository implementations used by
// service tests, so lifecycle rules can be exercised without a database.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftline/timeclock-backend-go/internal/domain/policy"
	"github.com/shiftline/timeclock-backend-go/internal/domain/schedule"
	"github.com/shiftline/timeclock-backend-go/internal/domain/shift"
)

// ==========================================
// TRANSACTIONS
// ==========================================

// NoopTransactor runs the function directly; the memory repositories commit
// each write immediately.
type NoopTransactor struct{}

// WithinTransaction implements database.Transactor.
func (NoopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ==========================================
// EMPLOYEES
// ==========================================

type MemoryEmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{employees: make(map[string]employee.Employee)}
}

// Create implements employee.EmployeeRepository.
func (r *MemoryEmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.employees {
		if existing.Username == e.Username {
			return employee.Employee{}, employee.ErrUsernameExists
		}
	}

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	r.employees[e.ID] = e
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *MemoryEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// GetByUsername implements employee.EmployeeRepository.
func (r *MemoryEmployeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// List implements employee.EmployeeRepository.
func (r *MemoryEmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].FullName < employees[j].FullName })
	return employees, nil
}

// ==========================================
// POLICY
// ==========================================

type MemoryPolicyRepository struct {
	mu      sync.Mutex
	created bool
	policy  policy.Policy
}

func NewMemoryPolicyRepository() *MemoryPolicyRepository {
	return &MemoryPolicyRepository{}
}

// GetSolo implements policy.PolicyRepository.
func (r *MemoryPolicyRepository) GetSolo(ctx context.Context) (policy.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.created {
		r.policy = policy.Default()
		r.policy.UpdatedAt = time.Now().UTC()
		r.created = true
	}
	return r.policy, nil
}

// Update implements policy.PolicyRepository.
func (r *MemoryPolicyRepository) Update(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.created {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	r.policy = p
	return p, nil
}

// ==========================================
// SCHEDULES
// ==========================================

type MemoryScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]schedule.ScheduledShift
}

func NewMemoryScheduleRepository() *MemoryScheduleRepository {
	return &MemoryScheduleRepository{schedules: make(map[string]schedule.ScheduledShift)}
}

// Save implements schedule.ScheduleRepository.
func (r *MemoryScheduleRepository) Save(ctx context.Context, s schedule.ScheduledShift) (schedule.ScheduledShift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, existing := range r.schedules {
		if existing.EmployeeID == s.EmployeeID && sameDay(existing.Date, s.Date) {
			s.ID = id
			s.CreatedAt = existing.CreatedAt
			s.UpdatedAt = now
			r.schedules[id] = s
			return s, nil
		}
	}

	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.schedules[s.ID] = s
	return s, nil
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *MemoryScheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*schedule.ScheduledShift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.schedules {
		if s.EmployeeID == employeeID && sameDay(s.Date, date) && !s.IsCanceled {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

// ListUpcoming implements schedule.ScheduleRepository.
func (r *MemoryScheduleRepository) ListUpcoming(ctx context.Context, from time.Time, employeeID *string, limit int) ([]schedule.ScheduledShift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var schedules []schedule.ScheduledShift
	for _, s := range r.schedules {
		if s.Date.Before(from) {
			continue
		}
		if employeeID != nil && *employeeID != "" && s.EmployeeID != *employeeID {
			continue
		}
		schedules = append(schedules, s)
	}
	sort.Slice(schedules, func(i, j int) bool {
		if !schedules[i].Date.Equal(schedules[j].Date) {
			return schedules[i].Date.Before(schedules[j].Date)
		}
		return schedules[i].StartTime.Before(schedules[j].StartTime)
	})
	if limit > 0 && len(schedules) > limit {
		schedules = schedules[:limit]
	}
	return schedules, nil
}

// ==========================================
// WORK SHIFTS
// ==========================================

type MemoryWorkShiftRepository struct {
	mu     sync.RWMutex
	shifts map[string]shift.WorkShift

	// Breaks are attached on read the way the SQL repository joins them.
	breaks *MemoryMealBreakRepository
}

func NewMemoryWorkShiftRepository(breaks *MemoryMealBreakRepository) *MemoryWorkShiftRepository {
	return &MemoryWorkShiftRepository{
		shifts: make(map[string]shift.WorkShift),
		breaks: breaks,
	}
}

// Create implements shift.WorkShiftRepository.
func (r *MemoryWorkShiftRepository) Create(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	s.Breaks = nil
	r.shifts[s.ID] = s
	return s, nil
}

// GetByID implements shift.WorkShiftRepository.
func (r *MemoryWorkShiftRepository) GetByID(ctx context.Context, id string) (shift.WorkShift, error) {
	r.mu.RLock()
	s, ok := r.shifts[id]
	r.mu.RUnlock()

	if !ok {
		return shift.WorkShift{}, shift.ErrShiftNotFound
	}
	return r.withBreaks(ctx, s)
}

// GetOpenByEmployee implements shift.WorkShiftRepository.
func (r *MemoryWorkShiftRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*shift.WorkShift, error) {
	r.mu.RLock()
	var open *shift.WorkShift
	for _, s := range r.shifts {
		if s.EmployeeID == employeeID && s.ClockOut == nil {
			found := s
			if open == nil || found.ClockIn.After(open.ClockIn) {
				open = &found
			}
		}
	}
	r.mu.RUnlock()

	if open == nil {
		return nil, nil
	}
	loaded, err := r.withBreaks(ctx, *open)
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// Update implements shift.WorkShiftRepository.
func (r *MemoryWorkShiftRepository) Update(ctx context.Context, s shift.WorkShift) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.shifts[s.ID]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.CreatedAt = existing.CreatedAt
	s.Breaks = nil
	r.shifts[s.ID] = s
	return nil
}

// ListByEmployee implements shift.WorkShiftRepository.
func (r *MemoryWorkShiftRepository) ListByEmployee(ctx context.Context, employeeID string, filter shift.Filter) ([]shift.WorkShift, int64, error) {
	scoped := filter
	scoped.EmployeeID = &employeeID
	return r.List(ctx, scoped)
}

// List implements shift.WorkShiftRepository.
func (r *MemoryWorkShiftRepository) List(ctx context.Context, filter shift.Filter) ([]shift.WorkShift, int64, error) {
	r.mu.RLock()
	var matched []shift.WorkShift
	for _, s := range r.shifts {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && s.ClockIn.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !s.ClockIn.Before(filter.EndDate.Add(24*time.Hour)) {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(s.Status) != *filter.Status {
			continue
		}
		matched = append(matched, s)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ClockIn.After(matched[j].ClockIn) })
	total := int64(len(matched))

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	pageShifts := make([]shift.WorkShift, 0, end-start)
	for _, s := range matched[start:end] {
		loaded, err := r.withBreaks(ctx, s)
		if err != nil {
			return nil, 0, err
		}
		pageShifts = append(pageShifts, loaded)
	}
	return pageShifts, total, nil
}

func (r *MemoryWorkShiftRepository) withBreaks(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	if r.breaks == nil {
		return s, nil
	}
	breaks, err := r.breaks.ListByShift(ctx, s.ID)
	if err != nil {
		return shift.WorkShift{}, err
	}
	s.Breaks = breaks
	return s, nil
}

// ==========================================
// MEAL BREAKS
// ==========================================

type MemoryMealBreakRepository struct {
	mu     sync.RWMutex
	breaks map[string]shift.MealBreak
}

func NewMemoryMealBreakRepository() *MemoryMealBreakRepository {
	return &MemoryMealBreakRepository{breaks: make(map[string]shift.MealBreak)}
}

// Create implements shift.MealBreakRepository.
func (r *MemoryMealBreakRepository) Create(ctx context.Context, b shift.MealBreak) (shift.MealBreak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	r.breaks[b.ID] = b
	return b, nil
}

// GetOpenByShift implements shift.MealBreakRepository.
func (r *MemoryMealBreakRepository) GetOpenByShift(ctx context.Context, shiftID string) (*shift.MealBreak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.breaks {
		if b.ShiftID == shiftID && b.EndTime == nil {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

// Update implements shift.MealBreakRepository.
func (r *MemoryMealBreakRepository) Update(ctx context.Context, b shift.MealBreak) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.breaks[b.ID]
	if !ok {
		return shift.ErrShiftNotFound
	}
	b.CreatedAt = existing.CreatedAt
	r.breaks[b.ID] = b
	return nil
}

// ListByShift implements shift.MealBreakRepository.
func (r *MemoryMealBreakRepository) ListByShift(ctx context.Context, shiftID string) ([]shift.MealBreak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var breaks []shift.MealBreak
	for _, b := range r.breaks {
		if b.ShiftID == shiftID {
			breaks = append(breaks, b)
		}
	}
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].StartTime.Before(breaks[j].StartTime) })
	return breaks, nil
}

// ==========================================
// SHIFT EDIT LOGS
// ==========================================

type MemoryShiftEditLogRepository struct {
	mu   sync.RWMutex
	logs []shift.ShiftEditLog
}

func NewMemoryShiftEditLogRepository() *MemoryShiftEditLogRepository {
	return &MemoryShiftEditLogRepository{}
}

// Create implements shift.ShiftEditLogRepository.
func (r *MemoryShiftEditLogRepository) Create(ctx context.Context, l shift.ShiftEditLog) (shift.ShiftEditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l.ID = uuid.NewString()
	r.logs = append(r.logs, l)
	return l, nil
}

// ListByShift implements shift.ShiftEditLogRepository.
func (r *MemoryShiftEditLogRepository) ListByShift(ctx context.Context, workShiftID string) ([]shift.ShiftEditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var logs []shift.ShiftEditLog
	for _, l := range r.logs {
		if l.WorkShiftID == workShiftID {
			logs = append(logs, l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].EditedAt.After(logs[j].EditedAt) })
	return logs, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
