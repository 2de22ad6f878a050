package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedula/database/repository"
	"schedula/models"
)

// In-memory repositories. The appointment fake mirrors the transactional
// contract of the Mongo implementation: the overlap check and the insert
// happen under one lock, and a taken interval yields repository.ErrOverlap.

type fakeProviderRepo struct {
	providers map[string]models.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error {
	f.providers[p.ID] = *p
	return nil
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProviderRepo) Update(ctx context.Context, p *models.Provider) error {
	f.providers[p.ID] = *p
	return nil
}

func (f *fakeProviderRepo) UpdateWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error {
	p, ok := f.providers[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.WorkingHours = hours
	f.providers[id] = p
	return nil
}

func (f *fakeProviderRepo) Delete(ctx context.Context, id string) error {
	delete(f.providers, id)
	return nil
}

func (f *fakeProviderRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeCompanyRepo struct {
	companies map[string]models.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *models.Company) error {
	f.companies[c.ID] = *c
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, c *models.Company) error {
	f.companies[c.ID] = *c
	return nil
}

func (f *fakeCompanyRepo) UpdateWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error {
	c, ok := f.companies[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.WorkingHours = hours
	f.companies[id] = c
	return nil
}

func (f *fakeCompanyRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeServiceRepo struct {
	services map[string]models.Service
}

func (f *fakeServiceRepo) Create(ctx context.Context, s *models.Service) error {
	f.services[s.ID] = *s
	return nil
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeServiceRepo) GetByCompanyID(ctx context.Context, companyID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, s *models.Service) error {
	f.services[s.ID] = *s
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id string) error {
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeBlockedRepo struct {
	mu     sync.Mutex
	blocks map[string]models.BlockedTime
}

func (f *fakeBlockedRepo) Create(ctx context.Context, b *models.BlockedTime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[b.ID] = *b
	return nil
}

func (f *fakeBlockedRepo) GetByID(ctx context.Context, id string) (*models.BlockedTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blocks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBlockedRepo) FindInRange(ctx context.Context, providerID string, start, end time.Time) ([]models.BlockedTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeInRange(providerID, start, end), nil
}

func (f *fakeBlockedRepo) activeInRange(providerID string, start, end time.Time) []models.BlockedTime {
	var out []models.BlockedTime
	for _, b := range f.blocks {
		if b.ProviderID == providerID && b.Status == models.BlockedActive &&
			b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeBlockedRepo) SaveTransition(ctx context.Context, b *models.BlockedTime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.blocks[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != models.BlockedActive {
		return repository.ErrStale
	}
	f.blocks[b.ID] = *b
	return nil
}

func (f *fakeBlockedRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blocks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.blocks, id)
	return nil
}

func (f *fakeBlockedRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeAppointmentRepo struct {
	mu      sync.Mutex
	appts   map[string]models.Appointment
	blocked *fakeBlockedRepo
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAppointmentRepo) FindInRange(ctx context.Context, providerID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inRange(providerID, start, end, statuses, ""), nil
}

func (f *fakeAppointmentRepo) inRange(providerID string, start, end time.Time, statuses []models.AppointmentStatus, excludeID string) []models.Appointment {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProviderID != providerID || a.ID == excludeID {
			continue
		}
		if !a.DateTime.Before(end) || !a.EndTime.After(start) {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func (f *fakeAppointmentRepo) FindEndingBefore(ctx context.Context, cutoff time.Time, status models.AppointmentStatus) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Status == status && a.EndTime.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) occupied(a *models.Appointment, checkBlocked bool, excludeID string) bool {
	if len(f.inRange(a.ProviderID, a.DateTime, a.EndTime, models.ActiveStatuses(), excludeID)) > 0 {
		return true
	}
	if checkBlocked && f.blocked != nil {
		f.blocked.mu.Lock()
		defer f.blocked.mu.Unlock()
		if len(f.blocked.activeInRange(a.ProviderID, a.DateTime, a.EndTime)) > 0 {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) BookIfFree(ctx context.Context, a *models.Appointment, checkBlocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.occupied(a, checkBlocked, "") {
		return repository.ErrOverlap
	}
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeAppointmentRepo) RescheduleIfFree(ctx context.Context, a *models.Appointment, entry models.HistoryEntry, checkBlocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appts[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != models.StatusBooked {
		return repository.ErrStale
	}
	if f.occupied(a, checkBlocked, a.ID) {
		return repository.ErrOverlap
	}
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeAppointmentRepo) SaveTransition(ctx context.Context, a *models.Appointment, entry models.HistoryEntry, from models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appts[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != from {
		return repository.ErrStale
	}
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeAppointmentRepo) EnsureIndexes(ctx context.Context) error { return nil }

type testEnv struct {
	svc     *DefaultSchedulingService
	appts   *fakeAppointmentRepo
	blocked *fakeBlockedRepo
}

func newTestEnv(t *testing.T, policy OverlapPolicy, checkBlocked bool) *testEnv {
	t.Helper()

	blocked := &fakeBlockedRepo{blocks: make(map[string]models.BlockedTime)}
	appts := &fakeAppointmentRepo{appts: make(map[string]models.Appointment), blocked: blocked}
	providers := &fakeProviderRepo{providers: map[string]models.Provider{
		"p1": {
			ID:   "p1",
			Name: "Dana",
			WorkingHours: []models.WorkingHour{{
				Day:    "Monday",
				Start:  "09:00",
				End:    "17:00",
				Breaks: []models.BreakPeriod{{Start: "12:00", End: "13:00"}},
			}},
		},
	}}
	companies := &fakeCompanyRepo{companies: make(map[string]models.Company)}
	services := &fakeServiceRepo{services: map[string]models.Service{
		"svc30": {ID: "svc30", Name: "Consultation", Duration: 30, BufferDuration: 10},
		"svc60": {ID: "svc60", Name: "Session", Duration: 60},
	}}

	svc := NewSchedulingService(providers, companies, services, appts, blocked, nil, 0, time.UTC, policy, checkBlocked)
	return &testEnv{svc: svc, appts: appts, blocked: blocked}
}

func bookReq(clock string) models.BookingRequest {
	return models.BookingRequest{
		CustomerID: "cust1",
		ProviderID: "p1",
		ServiceID:  "svc60",
		Date:       "2026-03-02",
		Time:       clock,
	}
}

func TestGetAvailableSlotsStartOnly(t *testing.T) {
	env := newTestEnv(t, OverlapStartOnly, true)

	result, err := env.svc.GetAvailableSlots(context.Background(), "p1", "svc30", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"09:00", "09:40", "10:20", "11:00", "11:40",
		"13:00", "13:40", "14:20", "15:00", "15:40", "16:20",
	}, result.Slots)
	assert.Empty(t, result.Reason)
}

func TestGetAvailableSlotsFullInterval(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	result, err := env.svc.GetAvailableSlots(context.Background(), "p1", "svc30", "2026-03-02")
	require.NoError(t, err)
	// 11:40 is gone: its body crosses into the lunch break.
	assert.Equal(t, []string{
		"09:00", "09:40", "10:20", "11:00",
		"13:00", "13:40", "14:20", "15:00", "15:40", "16:20",
	}, result.Slots)
}

func TestGetAvailableSlotsFiltersAppointmentsPerPolicy(t *testing.T) {
	for _, tc := range []struct {
		policy OverlapPolicy
		want   []string
	}{
		// Legacy: only the exact 09:00 start collides with the 09:00-10:00
		// appointment; 09:40 is still offered.
		{OverlapStartOnly, []string{
			"09:40", "10:20", "11:00", "11:40",
			"13:00", "13:40", "14:20", "15:00", "15:40", "16:20",
		}},
		{OverlapFullInterval, []string{
			"10:20", "11:00",
			"13:00", "13:40", "14:20", "15:00", "15:40", "16:20",
		}},
	} {
		t.Run(string(tc.policy), func(t *testing.T) {
			env := newTestEnv(t, tc.policy, true)
			_, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
			require.NoError(t, err)

			result, err := env.svc.GetAvailableSlots(context.Background(), "p1", "svc30", "2026-03-02")
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Slots)
		})
	}
}

func TestGetAvailableSlotsBlockedTimeIsAlwaysHard(t *testing.T) {
	// Even under the lenient startOnly policy, blocked time removes every
	// slot whose body touches it.
	env := newTestEnv(t, OverlapStartOnly, true)
	_, err := env.svc.BlockTime(context.Background(), models.BlockTimeRequest{
		ProviderID: "p1",
		StartTime:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Reason:     "maintenance",
	})
	require.NoError(t, err)

	result, err := env.svc.GetAvailableSlots(context.Background(), "p1", "svc30", "2026-03-02")
	require.NoError(t, err)
	// 09:00+30m touches 09:30 exactly and survives; 09:40 is inside.
	assert.Contains(t, result.Slots, "09:00")
	assert.NotContains(t, result.Slots, "09:40")
}

func TestGetAvailableSlotsClosedDay(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	// 2026-03-01 is a Sunday with no schedule entry.
	result, err := env.svc.GetAvailableSlots(context.Background(), "p1", "svc30", "2026-03-01")
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, models.ReasonNoWorkingHoursForDay, result.Reason)
}

func TestGetAvailableSlotsUnknownProvider(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	_, err := env.svc.GetAvailableSlots(context.Background(), "ghost", "svc30", "2026-03-02")
	var nfErr NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "PROVIDER_NOT_FOUND", nfErr.Code())
}

func TestGetAvailableSlotsBadDate(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	_, err := env.svc.GetAvailableSlots(context.Background(), "p1", "svc30", "03/02/2026")
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.ReasonInvalidTime, vErr.Code)
}

func TestBookAppointment(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	appt, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, appt.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), appt.DateTime)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), appt.EndTime)

	stored, err := env.appts.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	require.Len(t, stored.History, 1)
}

func TestBookAppointmentOverlapRejected(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	_, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)

	// 09:30 lands inside the existing 09:00-10:00 hold.
	_, err = env.svc.BookAppointment(context.Background(), bookReq("09:30"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)

	// Back-to-back at 10:00 is fine: intervals are half-open.
	_, err = env.svc.BookAppointment(context.Background(), bookReq("10:00"))
	require.NoError(t, err)
}

func TestBookAppointmentBlockedTimeGate(t *testing.T) {
	block := models.BlockTimeRequest{
		ProviderID: "p1",
		StartTime:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	strict := newTestEnv(t, OverlapFullInterval, true)
	_, err := strict.svc.BlockTime(context.Background(), block)
	require.NoError(t, err)
	_, err = strict.svc.BookAppointment(context.Background(), bookReq("09:30"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)

	// With the gate off the blocked time hides the slot from reads but does
	// not stop a direct booking.
	lenient := newTestEnv(t, OverlapFullInterval, false)
	_, err = lenient.svc.BlockTime(context.Background(), block)
	require.NoError(t, err)
	_, err = lenient.svc.BookAppointment(context.Background(), bookReq("09:30"))
	require.NoError(t, err)
}

func TestEditAppointment(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	appt, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)

	moved, err := env.svc.EditAppointment(context.Background(), appt.ID, bookReq("11:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), moved.DateTime)
	require.Len(t, moved.History, 2)
	assert.Equal(t, TransitionEdited, moved.History[1].Status)

	// The vacated 09:00 interval is bookable again.
	_, err = env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
}

func TestEditAppointmentRejectsOccupiedTarget(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	first, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
	_, err = env.svc.BookAppointment(context.Background(), bookReq("11:00"))
	require.NoError(t, err)

	_, err = env.svc.EditAppointment(context.Background(), first.ID, bookReq("11:30"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)

	// Rescheduling onto its own interval is not a self-conflict.
	_, err = env.svc.EditAppointment(context.Background(), first.ID, bookReq("09:00"))
	require.NoError(t, err)
}

func TestCancelAppointmentTwice(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	appt, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)

	cancelled, err := env.svc.CancelAppointment(context.Background(), appt.ID, "customer request")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	_, err = env.svc.CancelAppointment(context.Background(), appt.ID, "again")
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)

	// The slot is free again after the first cancellation.
	_, err = env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
}

func TestCancelBlockedTimeReopensInterval(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	block, err := env.svc.BlockTime(context.Background(), models.BlockTimeRequest{
		ProviderID: "p1",
		StartTime:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)

	_, err = env.svc.CancelBlockedTime(context.Background(), block.ID, "no longer needed")
	require.NoError(t, err)

	_, err = env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)

	_, err = env.svc.CancelBlockedTime(context.Background(), block.ID, "again")
	require.ErrorAs(t, err, &cErr)
}

func TestDeleteBlockedTimeUnknown(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	err := env.svc.DeleteBlockedTime(context.Background(), "ghost")
	var nfErr NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "BLOCKED_TIME_NOT_FOUND", nfErr.Code())
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	const attempts = 12
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var cErr ConflictError
		require.ErrorAs(t, err, &cErr)
		conflicts++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}

func TestConcurrentCancelSingleWinner(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	appt, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)

	const attempts = 12
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := env.svc.CancelAppointment(context.Background(), appt.ID, "race")
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var cErr ConflictError
		require.ErrorAs(t, err, &cErr)
		conflicts++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)

	// Exactly one Cancelled entry landed on top of the Booked one.
	stored, err := env.appts.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	require.Len(t, stored.History, 2)
	assert.Equal(t, string(models.StatusCancelled), stored.History[1].Status)
}

func TestEditCancelledAppointmentIsConflict(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	appt, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
	_, err = env.svc.CancelAppointment(context.Background(), appt.ID, "customer request")
	require.NoError(t, err)

	_, err = env.svc.EditAppointment(context.Background(), appt.ID, bookReq("11:00"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)

	// The terminal record is untouched.
	stored, err := env.appts.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), stored.DateTime)
}

func TestRescheduleIfFreeRejectsNonBookedRecord(t *testing.T) {
	// A writer holding a stale Booked copy must not resurrect a record that
	// was cancelled after the copy was read.
	env := newTestEnv(t, OverlapFullInterval, true)

	appt, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
	stale := *appt

	_, err = env.svc.CancelAppointment(context.Background(), appt.ID, "customer request")
	require.NoError(t, err)

	stale.DateTime = time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	stale.EndTime = stale.DateTime.Add(time.Hour)
	err = env.appts.RescheduleIfFree(context.Background(), &stale, models.HistoryEntry{Status: TransitionEdited}, true)
	assert.ErrorIs(t, err, repository.ErrStale)
}

func TestCompletePastAppointments(t *testing.T) {
	env := newTestEnv(t, OverlapFullInterval, true)

	early, err := env.svc.BookAppointment(context.Background(), bookReq("09:00"))
	require.NoError(t, err)
	late, err := env.svc.BookAppointment(context.Background(), bookReq("15:00"))
	require.NoError(t, err)

	cutoff := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	count, err := env.svc.CompletePastAppointments(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	completed, err := env.appts.GetByID(context.Background(), early.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	untouched, err := env.appts.GetByID(context.Background(), late.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, untouched.Status)

	// A second sweep finds nothing left to move.
	count, err = env.svc.CompletePastAppointments(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
