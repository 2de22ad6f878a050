package scheduling

import (
	"context"
	"time"

	"schedula/models"
)

// Service is the availability & conflict engine. Reads compute bookable
// slots; writes gate on conflicts before a lifecycle transition and hand the
// result to the repositories.
type Service interface {
	GetAvailableSlots(ctx context.Context, providerID, serviceID, date string) (*models.AvailabilityResult, error)

	BookAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	EditAppointment(ctx context.Context, appointmentID string, req models.BookingRequest) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID, reason string) (*models.Appointment, error)

	BlockTime(ctx context.Context, req models.BlockTimeRequest) (*models.BlockedTime, error)
	CancelBlockedTime(ctx context.Context, blockedTimeID, reason string) (*models.BlockedTime, error)
	DeleteBlockedTime(ctx context.Context, blockedTimeID string) error

	// CompletePastAppointments transitions Booked appointments whose end
	// time precedes now to Completed and reports how many were moved.
	CompletePastAppointments(ctx context.Context, now time.Time) (int, error)
}
