package attendance

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

// passThroughTransactor runs fn directly. The fakes below are not transactional,
// so rollback is simulated by snapshotting the ledger.
type passThroughTransactor struct {
	days *fakeDayRepo
}

func (t passThroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var saved map[dayKey]attendance.DayRecord
	if t.days != nil {
		saved = t.days.snapshot()
	}
	if err := fn(ctx); err != nil {
		if t.days != nil {
			t.days.restore(saved)
		}
		return err
	}
	return nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[int64]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[int64]employee.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = int64(len(r.employees) + 1)
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeEmployeeRepo) UpdateDepartment(_ context.Context, id int64, department string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.Department = department
	r.employees[id] = e
	return e, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeMonthlyRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]attendance.MonthlyRecord
	updates int
	// afterGet runs after every GetByID, outside the mutex
	afterGet func(id int64)
}

func newFakeMonthlyRepo() *fakeMonthlyRepo {
	return &fakeMonthlyRepo{records: make(map[int64]attendance.MonthlyRecord)}
}

func (r *fakeMonthlyRepo) Create(_ context.Context, m attendance.MonthlyRecord) (attendance.MonthlyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.EmployeeID == m.EmployeeID && existing.Month == m.Month && existing.Year == m.Year {
			return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordExists
		}
	}
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.records[m.ID] = m
	return m, nil
}

func (r *fakeMonthlyRepo) Update(_ context.Context, m attendance.MonthlyRecord) (attendance.MonthlyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[m.ID]; !ok {
		return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordNotFound
	}
	r.updates++
	m.UpdatedAt = time.Now()
	r.records[m.ID] = m
	return m, nil
}

func (r *fakeMonthlyRepo) GetByID(_ context.Context, id int64) (attendance.MonthlyRecord, error) {
	r.mu.Lock()
	m, ok := r.records[id]
	r.mu.Unlock()
	if r.afterGet != nil {
		r.afterGet(id)
	}
	if !ok {
		return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordNotFound
	}
	return m, nil
}

func (r *fakeMonthlyRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID int64, month, year int) (attendance.MonthlyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.records {
		if m.EmployeeID == employeeID && m.Month == month && m.Year == year {
			return m, nil
		}
	}
	return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordNotFound
}

func (r *fakeMonthlyRepo) list(keep func(attendance.MonthlyRecord) bool) []attendance.MonthlyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]attendance.MonthlyRecord, 0, len(r.records))
	for _, m := range r.records {
		if keep(m) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *fakeMonthlyRepo) ListByEmployee(_ context.Context, employeeID int64) ([]attendance.MonthlyRecord, error) {
	return r.list(func(m attendance.MonthlyRecord) bool { return m.EmployeeID == employeeID }), nil
}

func (r *fakeMonthlyRepo) ListAll(_ context.Context) ([]attendance.MonthlyRecord, error) {
	return r.list(func(attendance.MonthlyRecord) bool { return true }), nil
}

func (r *fakeMonthlyRepo) ListByPeriod(_ context.Context, month, year int) ([]attendance.MonthlyRecord, error) {
	return r.list(func(m attendance.MonthlyRecord) bool { return m.Month == month && m.Year == year }), nil
}

func (r *fakeMonthlyRepo) ListWithEmployees(_ context.Context, period *attendance.Period) ([]attendance.EmployeeAttendance, error) {
	records := r.list(func(m attendance.MonthlyRecord) bool {
		return period == nil || (m.Month == period.Month && m.Year == period.Year)
	})
	result := make([]attendance.EmployeeAttendance, 0, len(records))
	for _, m := range records {
		result = append(result, attendance.EmployeeAttendance{
			AttendanceID:     m.ID,
			EmployeeID:       m.EmployeeID,
			Month:            m.Month,
			Year:             m.Year,
			TotalDays:        m.TotalDays,
			TotalWorkingDays: m.TotalWorkingDays,
			WorkedDays:       m.WorkedDays,
			Availability:     m.Availability,
		})
	}
	return result, nil
}

func (r *fakeMonthlyRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return attendance.ErrMonthlyRecordNotFound
	}
	delete(r.records, id)
	return nil
}

type dayKey struct {
	employeeID int64
	date       string
}

type fakeDayRepo struct {
	mu   sync.Mutex
	days map[dayKey]attendance.DayRecord
	// failCreate makes Create fail once the number of stored rows reaches it.
	failCreate int
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[dayKey]attendance.DayRecord)}
}

func keyOf(employeeID int64, date time.Time) dayKey {
	return dayKey{employeeID: employeeID, date: date.Format("2006-01-02")}
}

func (r *fakeDayRepo) snapshot() map[dayKey]attendance.DayRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[dayKey]attendance.DayRecord, len(r.days))
	for k, v := range r.days {
		saved[k] = v
	}
	return saved
}

func (r *fakeDayRepo) restore(saved map[dayKey]attendance.DayRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.days = saved
}

func (r *fakeDayRepo) Create(_ context.Context, day attendance.DayRecord) (attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate > 0 && len(r.days) >= r.failCreate {
		return attendance.DayRecord{}, errors.New("insert failed")
	}
	k := keyOf(day.EmployeeID, day.Date)
	if _, ok := r.days[k]; ok {
		return attendance.DayRecord{}, errors.New("duplicate day")
	}
	day.ID = int64(len(r.days) + 1)
	r.days[k] = day
	return day, nil
}

func (r *fakeDayRepo) DeleteByDate(_ context.Context, employeeID int64, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.days, keyOf(employeeID, date))
	return nil
}

func (r *fakeDayRepo) each(employeeID int64, start, end time.Time, fn func(dayKey, attendance.DayRecord)) {
	for k, d := range r.days {
		if d.EmployeeID == employeeID && !d.Date.Before(start) && !d.Date.After(end) {
			fn(k, d)
		}
	}
}

func (r *fakeDayRepo) DeleteRange(_ context.Context, employeeID int64, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []dayKey
	r.each(employeeID, start, end, func(k dayKey, _ attendance.DayRecord) { removed = append(removed, k) })
	for _, k := range removed {
		delete(r.days, k)
	}
	return int64(len(removed)), nil
}

func (r *fakeDayRepo) CountInRange(_ context.Context, employeeID int64, start, end time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	r.each(employeeID, start, end, func(dayKey, attendance.DayRecord) { n++ })
	return n, nil
}

func (r *fakeDayRepo) Exists(_ context.Context, employeeID int64, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.days[keyOf(employeeID, date)]
	return ok, nil
}

func (r *fakeDayRepo) ListDates(_ context.Context, employeeID int64, start, end time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var dates []time.Time
	r.each(employeeID, start, end, func(_ dayKey, d attendance.DayRecord) { dates = append(dates, d.Date) })
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

type weekKey struct {
	recordID   int64
	weekNumber int
}

type fakeWeeklyRepo struct {
	mu        sync.Mutex
	snapshots map[weekKey]attendance.WeeklySnapshot
	upserts   int
}

func newFakeWeeklyRepo() *fakeWeeklyRepo {
	return &fakeWeeklyRepo{snapshots: make(map[weekKey]attendance.WeeklySnapshot)}
}

func (r *fakeWeeklyRepo) Upsert(_ context.Context, s attendance.WeeklySnapshot) (attendance.WeeklySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	k := weekKey{recordID: s.MonthlyRecordID, weekNumber: s.WeekNumber}
	if existing, ok := r.snapshots[k]; ok {
		s.ID = existing.ID
	} else {
		s.ID = int64(len(r.snapshots) + 1)
	}
	s.UpdatedAt = time.Now()
	r.snapshots[k] = s
	return s, nil
}

func (r *fakeWeeklyRepo) ListByMonthlyRecord(_ context.Context, monthlyRecordID int64) ([]attendance.WeeklySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []attendance.WeeklySnapshot
	for _, s := range r.snapshots {
		if s.MonthlyRecordID == monthlyRecordID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WeekNumber < result[j].WeekNumber })
	return result, nil
}

func (r *fakeWeeklyRepo) ListByPeriod(_ context.Context, month, year int) ([]attendance.WeeklySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []attendance.WeeklySnapshot
	for _, s := range r.snapshots {
		if s.Month == month && s.Year == year {
			result = append(result, s)
		}
	}
	return result, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []attendance.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event attendance.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}
