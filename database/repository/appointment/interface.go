// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"schedula/models"
)

// Repository defines methods to manage appointment records. Appointments are
// never physically deleted; every change is a status transition persisted
// together with exactly one appended history entry.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)

	// FindInRange returns the provider's appointments whose [dateTime, endTime)
	// interval overlaps [start, end), restricted to the given statuses.
	FindInRange(ctx context.Context, providerID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error)

	// FindEndingBefore returns appointments in the given status whose end
	// time is before cutoff. Used by the completion sweep.
	FindEndingBefore(ctx context.Context, cutoff time.Time, status models.AppointmentStatus) ([]models.Appointment, error)

	// BookIfFree inserts the appointment only if no active appointment (and,
	// when checkBlocked is set, no active blocked time) overlaps its interval.
	// The check and the insert run in one transaction; repository.ErrOverlap
	// is returned when the interval is taken.
	BookIfFree(ctx context.Context, a *models.Appointment, checkBlocked bool) error

	// RescheduleIfFree moves an existing appointment to its new interval
	// under the same transactional no-overlap guarantee, appending entry to
	// its history. The appointment's own record is excluded from the check,
	// and the write only applies while the record is still Booked;
	// repository.ErrStale is returned when it no longer is.
	RescheduleIfFree(ctx context.Context, a *models.Appointment, entry models.HistoryEntry, checkBlocked bool) error

	// SaveTransition persists the fields a lifecycle transition may change
	// and appends exactly the given history entry. The update is guarded on
	// the status the transition started from: when the stored record has
	// already left that status, nothing is written and repository.ErrStale
	// is returned.
	SaveTransition(ctx context.Context, a *models.Appointment, entry models.HistoryEntry, from models.AppointmentStatus) error

	EnsureIndexes(ctx context.Context) error
}
