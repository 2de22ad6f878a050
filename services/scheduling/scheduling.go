package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"schedula/database/repository"
	appointmentRepo "schedula/database/repository/appointment"
	blockedRepo "schedula/database/repository/blocked"
	companyRepo "schedula/database/repository/company"
	providerRepo "schedula/database/repository/provider"
	serviceRepo "schedula/database/repository/service"
	"schedula/models"
	"schedula/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSchedulingService wires the engine pieces together: schedule
// resolution, slot generation, conflict filtering on reads, and the gated
// lifecycle transitions on writes.
type DefaultSchedulingService struct {
	Providers    providerRepo.Repository
	Companies    companyRepo.Repository
	Services     serviceRepo.Repository
	Appointments appointmentRepo.Repository
	Blocked      blockedRepo.Repository

	// Cache may be nil; availability then recomputes on every read.
	Cache    *redis.Client
	CacheTTL time.Duration

	// Loc anchors date and clock strings to absolute instants.
	Loc *time.Location

	// Policy governs how reads filter candidates against appointments and
	// breaks. Writes always gate on full-interval overlap.
	Policy OverlapPolicy

	// CheckBlockedTime extends the write gate to active blocked times.
	CheckBlockedTime bool

	locks providerLocks
}

// NewSchedulingService returns the default engine implementation.
func NewSchedulingService(
	providers providerRepo.Repository,
	companies companyRepo.Repository,
	services serviceRepo.Repository,
	appointments appointmentRepo.Repository,
	blocked blockedRepo.Repository,
	cache *redis.Client,
	cacheTTL time.Duration,
	loc *time.Location,
	policy OverlapPolicy,
	checkBlockedTime bool,
) *DefaultSchedulingService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultSchedulingService{
		Providers:        providers,
		Companies:        companies,
		Services:         services,
		Appointments:     appointments,
		Blocked:          blocked,
		Cache:            cache,
		CacheTTL:         cacheTTL,
		Loc:              loc,
		Policy:           policy,
		CheckBlockedTime: checkBlockedTime,
	}
}

// GetAvailableSlots computes the bookable start times for a provider,
// service and date. A closed day comes back as an empty result with a reason
// code rather than an error.
func (s *DefaultSchedulingService) GetAvailableSlots(ctx context.Context, providerID, serviceID, date string) (*models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	if cached := s.cachedAvailability(ctx, providerID, serviceID, date); cached != nil {
		return cached, nil
	}

	provider, company, svc, err := s.loadActors(ctx, providerID, serviceID)
	if err != nil {
		return nil, err
	}
	day, err := utils.ParseDate(date, s.Loc)
	if err != nil {
		return nil, ValidationError{Field: "date", Code: models.ReasonInvalidTime, Message: "date must be formatted as " + utils.DateLayout}
	}

	sched, reason, err := ResolveDaySchedule(provider, company, day)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return &models.AvailabilityResult{Date: date, Slots: []string{}, Reason: reason}, nil
	}

	duration := time.Duration(svc.Duration) * time.Minute
	bufferMin := svc.BufferDuration
	if sched.Buffer > 0 {
		// A buffer on the matched working-hours entry overrides the
		// service-level buffer.
		bufferMin = sched.Buffer
	}
	step := duration + time.Duration(bufferMin)*time.Minute

	candidates := GenerateSlots(sched, step)
	candidates = ExcludeBreaks(candidates, duration, sched.Breaks, s.Policy)

	busy, err := s.appointmentIntervals(ctx, providerID, sched.Start, sched.End, "")
	if err != nil {
		return nil, err
	}
	candidates = ExcludeBusy(candidates, duration, busy, s.Policy)

	hard, err := s.hardIntervals(ctx, provider, sched.Start, sched.End)
	if err != nil {
		return nil, err
	}
	candidates = ExcludeHard(candidates, duration, hard)

	slots := make([]string, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, utils.FormatClock(c))
	}
	result := &models.AvailabilityResult{Date: date, Slots: slots}

	s.storeAvailability(ctx, providerID, serviceID, date, result)
	logger.Debug("availability computed",
		zap.String("providerId", providerID),
		zap.String("serviceId", serviceID),
		zap.String("date", date),
		zap.Int("slots", len(slots)))
	return result, nil
}

// BookAppointment creates a Booked appointment if the requested interval is
// free. The per-provider lock plus the transactional insert keep concurrent
// requests for the same interval from both succeeding.
func (s *DefaultSchedulingService) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	provider, _, svc, err := s.loadActors(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	start, end, err := s.resolveInterval(req.Date, req.Time, svc)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(req.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkWriteGate(ctx, provider, start, end, ""); err != nil {
		return nil, err
	}

	now := time.Now().In(s.Loc)
	appt, err := NewAppointment(uuid.NewString(), req.CustomerID, req.ProviderID, req.ServiceID, start, end, now)
	if err != nil {
		return nil, err
	}
	if err := s.Appointments.BookIfFree(ctx, appt, s.CheckBlockedTime); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ConflictError{Message: "requested time is no longer available"}
		}
		return nil, err
	}

	s.invalidateAvailability(ctx, req.ProviderID)
	logger.Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("providerId", appt.ProviderID),
		zap.Time("start", appt.DateTime))
	return appt, nil
}

// EditAppointment reschedules a Booked appointment to the requested interval
// under the same conflict gate as booking. The provider cannot change on an
// edit.
func (s *DefaultSchedulingService) EditAppointment(ctx context.Context, appointmentID string, req models.BookingRequest) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if req.ProviderID != "" && req.ProviderID != appt.ProviderID {
		return nil, ValidationError{Field: "providerId", Message: "appointments cannot move between providers"}
	}

	provider, _, svc, err := s.loadActors(ctx, appt.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	start, end, err := s.resolveInterval(req.Date, req.Time, svc)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(appt.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: the first fetch only located the provider and
	// may be stale by the time the lock is held.
	appt, err = s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkWriteGate(ctx, provider, start, end, appt.ID); err != nil {
		return nil, err
	}

	entry, err := Reschedule(appt, req.ServiceID, start, end, time.Now().In(s.Loc))
	if err != nil {
		return nil, err
	}
	if err := s.Appointments.RescheduleIfFree(ctx, appt, entry, s.CheckBlockedTime); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ConflictError{Message: "requested time is no longer available"}
		}
		if errors.Is(err, repository.ErrStale) {
			return nil, ConflictError{Message: "appointment is no longer booked"}
		}
		return nil, err
	}

	s.invalidateAvailability(ctx, appt.ProviderID)
	return appt, nil
}

// CancelAppointment moves a Booked appointment to Cancelled. Cancelling an
// already cancelled appointment is a conflict, and the guarantee holds under
// concurrency: the provider lock serializes racing cancels, and the repo's
// status-guarded write rejects whichever copy lost the race anyway.
func (s *DefaultSchedulingService) CancelAppointment(ctx context.Context, appointmentID, reason string) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(appt.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	appt, err = s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	entry, err := Cancel(appt, reason, time.Now().In(s.Loc))
	if err != nil {
		return nil, err
	}
	if err := s.Appointments.SaveTransition(ctx, appt, entry, models.StatusBooked); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ConflictError{Message: "appointment is no longer booked"}
		}
		return nil, err
	}
	s.invalidateAvailability(ctx, appt.ProviderID)
	return appt, nil
}

// BlockTime creates an active blocked-time record for the provider. Blocked
// time is a hard obstacle on reads; whether it also gates bookings is the
// CheckBlockedTime switch.
func (s *DefaultSchedulingService) BlockTime(ctx context.Context, req models.BlockTimeRequest) (*models.BlockedTime, error) {
	if _, err := s.getProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	lock := s.locks.get(req.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().In(s.Loc)
	block, err := NewBlockedTime(uuid.NewString(), req.ProviderID, req.StartTime, req.EndTime, req.Reason, now)
	if err != nil {
		return nil, err
	}
	if err := s.Blocked.Create(ctx, block); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, req.ProviderID)
	utils.GetLogger().Info("time blocked",
		zap.String("blockedTimeId", block.ID),
		zap.String("providerId", block.ProviderID),
		zap.Time("start", block.StartTime),
		zap.Time("end", block.EndTime))
	return block, nil
}

// CancelBlockedTime moves an active blocked-time record to Cancelled,
// reopening the interval. Serialized per provider like the other writes.
func (s *DefaultSchedulingService) CancelBlockedTime(ctx context.Context, blockedTimeID, reason string) (*models.BlockedTime, error) {
	block, err := s.getBlockedTime(ctx, blockedTimeID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(block.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	block, err = s.getBlockedTime(ctx, blockedTimeID)
	if err != nil {
		return nil, err
	}
	if err := CancelBlock(block, reason, time.Now().In(s.Loc)); err != nil {
		return nil, err
	}
	if err := s.Blocked.SaveTransition(ctx, block); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ConflictError{Message: "blocked time is already cancelled"}
		}
		return nil, err
	}
	s.invalidateAvailability(ctx, block.ProviderID)
	return block, nil
}

// DeleteBlockedTime hard-deletes a blocked-time record. Administrative
// cleanup; cancellation is the normal path.
func (s *DefaultSchedulingService) DeleteBlockedTime(ctx context.Context, blockedTimeID string) error {
	block, err := s.getBlockedTime(ctx, blockedTimeID)
	if err != nil {
		return err
	}
	if err := s.Blocked.Delete(ctx, blockedTimeID); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, block.ProviderID)
	return nil
}

// CompletePastAppointments transitions Booked appointments whose end time has
// passed to Completed. Individual failures are logged and skipped so one bad
// record does not stall the sweep.
func (s *DefaultSchedulingService) CompletePastAppointments(ctx context.Context, now time.Time) (int, error) {
	logger := utils.GetLogger()

	past, err := s.Appointments.FindEndingBefore(ctx, now, models.StatusBooked)
	if err != nil {
		return 0, err
	}
	completed := 0
	for i := range past {
		appt := &past[i]
		entry, err := Complete(appt, now)
		if err != nil {
			logger.Warn("skipping completion", zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		if err := s.Appointments.SaveTransition(ctx, appt, entry, models.StatusBooked); err != nil {
			if errors.Is(err, repository.ErrStale) {
				// Cancelled between the query and the write; nothing to do.
				continue
			}
			logger.Error("failed to complete appointment", zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		completed++
	}
	if completed > 0 {
		logger.Info("completed past appointments", zap.Int("count", completed))
	}
	return completed, nil
}

// loadActors fetches the provider, its company (when it has one) and the
// service, translating missing records to typed not-found errors.
func (s *DefaultSchedulingService) loadActors(ctx context.Context, providerID, serviceID string) (*models.Provider, *models.Company, *models.Service, error) {
	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		return nil, nil, nil, err
	}
	var company *models.Company
	if provider.CompanyID != "" {
		company, err = s.Companies.GetByID(ctx, provider.CompanyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, nil, NotFoundError{Resource: "company", ID: provider.CompanyID}
			}
			return nil, nil, nil, err
		}
	}
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, NotFoundError{Resource: "service", ID: serviceID}
		}
		return nil, nil, nil, err
	}
	if svc.Duration <= 0 {
		return nil, nil, nil, ValidationError{Field: "service.duration", Message: "service duration must be positive"}
	}
	return provider, company, svc, nil
}

func (s *DefaultSchedulingService) getProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError{Resource: "provider", ID: providerID}
		}
		return nil, err
	}
	return provider, nil
}

func (s *DefaultSchedulingService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError{Resource: "appointment", ID: id}
		}
		return nil, err
	}
	return appt, nil
}

func (s *DefaultSchedulingService) getBlockedTime(ctx context.Context, id string) (*models.BlockedTime, error) {
	block, err := s.Blocked.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError{Resource: "blocked time", ID: id}
		}
		return nil, err
	}
	return block, nil
}

// resolveInterval anchors a booking request's date and clock strings and
// derives the appointment interval from the service duration.
func (s *DefaultSchedulingService) resolveInterval(date, clock string, svc *models.Service) (time.Time, time.Time, error) {
	day, err := utils.ParseDate(date, s.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationError{Field: "date", Code: models.ReasonInvalidTime, Message: "date must be formatted as " + utils.DateLayout}
	}
	start, err := utils.AnchorClock(day, clock)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationError{Field: "time", Code: models.ReasonInvalidTime, Message: "time must be formatted as " + utils.ClockLayout}
	}
	end := start.Add(time.Duration(svc.Duration) * time.Minute)
	return start, end, nil
}

// checkWriteGate rejects the interval when an active appointment overlaps it,
// or — per configuration — an active blocked time does. The gate always uses
// full-interval overlap regardless of the read-path policy. excludeID skips
// the appointment being rescheduled.
func (s *DefaultSchedulingService) checkWriteGate(ctx context.Context, provider *models.Provider, start, end time.Time, excludeID string) error {
	busy, err := s.appointmentIntervals(ctx, provider.ID, start, end, excludeID)
	if err != nil {
		return err
	}
	if OverlapsAny(start, end, busy) {
		return ConflictError{Message: "provider already has an appointment in this interval"}
	}
	if s.CheckBlockedTime {
		hard, err := s.hardIntervals(ctx, provider, start, end)
		if err != nil {
			return err
		}
		if OverlapsAny(start, end, hard) {
			return ConflictError{Message: "provider is unavailable in this interval"}
		}
	}
	return nil
}

func (s *DefaultSchedulingService) appointmentIntervals(ctx context.Context, providerID string, start, end time.Time, excludeID string) ([]models.Interval, error) {
	appts, err := s.Appointments.FindInRange(ctx, providerID, start, end, models.ActiveStatuses())
	if err != nil {
		return nil, err
	}
	intervals := make([]models.Interval, 0, len(appts))
	for _, a := range appts {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		intervals = append(intervals, a.Interval())
	}
	return intervals, nil
}

// hardIntervals collects the provider's hard-unavailable intervals in the
// window: active blocked times plus the provider's own unavailable periods.
func (s *DefaultSchedulingService) hardIntervals(ctx context.Context, provider *models.Provider, start, end time.Time) ([]models.Interval, error) {
	blocks, err := s.Blocked.FindInRange(ctx, provider.ID, start, end)
	if err != nil {
		return nil, err
	}
	intervals := make([]models.Interval, 0, len(blocks)+len(provider.UnavailablePeriods))
	for _, b := range blocks {
		intervals = append(intervals, b.Interval())
	}
	for _, u := range provider.UnavailablePeriods {
		if Overlaps(u.Start, u.End, start, end) {
			intervals = append(intervals, models.Interval{Start: u.Start, End: u.End})
		}
	}
	return intervals, nil
}

func (s *DefaultSchedulingService) availabilityKey(providerID, serviceID, date string) string {
	return utils.AvailabilityCachePrefix + providerID + ":" + serviceID + ":" + date
}

func (s *DefaultSchedulingService) cachedAvailability(ctx context.Context, providerID, serviceID, date string) *models.AvailabilityResult {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, s.availabilityKey(providerID, serviceID, date)).Result()
	if err != nil {
		return nil
	}
	var result models.AvailabilityResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultSchedulingService) storeAvailability(ctx context.Context, providerID, serviceID, date string, result *models.AvailabilityResult) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, s.availabilityKey(providerID, serviceID, date), raw, s.CacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability", zap.Error(err))
	}
}

func (s *DefaultSchedulingService) invalidateAvailability(ctx context.Context, providerID string) {
	utils.InvalidateAvailability(ctx, s.Cache, providerID)
}
