package scheduling

import (
	"time"

	"schedula/models"
)

// TransitionEdited is the history label for a reschedule: the appointment
// stays Booked but the edit is recorded.
const TransitionEdited = "Edited"

// NewAppointment builds a Booked appointment with its opening history entry.
func NewAppointment(id, customerID, providerID, serviceID string, start, end, now time.Time) (*models.Appointment, error) {
	if !end.After(start) {
		return nil, ValidationError{Field: "endTime", Message: "end must be after start"}
	}
	return &models.Appointment{
		ID:         id,
		CustomerID: customerID,
		ProviderID: providerID,
		ServiceID:  serviceID,
		DateTime:   start,
		EndTime:    end,
		Status:     models.StatusBooked,
		History: []models.HistoryEntry{
			{Status: string(models.StatusBooked), Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Reschedule moves a Booked appointment to a new interval and returns the
// appended history entry. Cancelled is terminal; any other non-Booked state
// also rejects the edit.
func Reschedule(a *models.Appointment, serviceID string, start, end, now time.Time) (models.HistoryEntry, error) {
	if err := requireBooked(a, "edit"); err != nil {
		return models.HistoryEntry{}, err
	}
	if !end.After(start) {
		return models.HistoryEntry{}, ValidationError{Field: "endTime", Message: "end must be after start"}
	}
	a.ServiceID = serviceID
	a.DateTime = start
	a.EndTime = end
	a.UpdatedAt = now
	entry := models.HistoryEntry{Status: TransitionEdited, Timestamp: now}
	a.History = append(a.History, entry)
	return entry, nil
}

// Cancel moves a Booked appointment to Cancelled, recording the reason, and
// returns the appended history entry. Cancelled is terminal: re-cancelling
// is an explicit conflict, not a silent no-op.
func Cancel(a *models.Appointment, reason string, now time.Time) (models.HistoryEntry, error) {
	if reason == "" {
		return models.HistoryEntry{}, ValidationError{Field: "reason", Message: "cancellation reason is required"}
	}
	if err := requireBooked(a, "cancel"); err != nil {
		return models.HistoryEntry{}, err
	}
	a.Status = models.StatusCancelled
	a.CancellationReason = reason
	ts := now
	a.CancellationTimestamp = &ts
	a.UpdatedAt = now
	entry := models.HistoryEntry{Status: string(models.StatusCancelled), Timestamp: now}
	a.History = append(a.History, entry)
	return entry, nil
}

// Complete moves a Booked appointment whose end time has passed to Completed.
func Complete(a *models.Appointment, now time.Time) (models.HistoryEntry, error) {
	if err := requireBooked(a, "complete"); err != nil {
		return models.HistoryEntry{}, err
	}
	a.Status = models.StatusCompleted
	a.UpdatedAt = now
	entry := models.HistoryEntry{Status: string(models.StatusCompleted), Timestamp: now}
	a.History = append(a.History, entry)
	return entry, nil
}

func requireBooked(a *models.Appointment, op string) error {
	switch a.Status {
	case models.StatusBooked:
		return nil
	case models.StatusCancelled:
		return ConflictError{Message: "appointment is already cancelled"}
	default:
		return ConflictError{Message: "cannot " + op + " appointment in status " + string(a.Status)}
	}
}

// NewBlockedTime builds an Active blocked-time record.
func NewBlockedTime(id, providerID string, start, end time.Time, reason string, now time.Time) (*models.BlockedTime, error) {
	if !end.After(start) {
		return nil, ValidationError{Field: "endTime", Message: "end must be after start"}
	}
	return &models.BlockedTime{
		ID:         id,
		ProviderID: providerID,
		StartTime:  start,
		EndTime:    end,
		Reason:     reason,
		Status:     models.BlockedActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CancelBlock moves an Active blocked-time record to Cancelled. Cancelled is
// terminal here too.
func CancelBlock(b *models.BlockedTime, reason string, now time.Time) error {
	if reason == "" {
		return ValidationError{Field: "reason", Message: "cancellation reason is required"}
	}
	if b.Status == models.BlockedCancelled {
		return ConflictError{Message: "blocked time is already cancelled"}
	}
	b.Status = models.BlockedCancelled
	b.CancellationReason = reason
	ts := now
	b.CancellationTimestamp = &ts
	b.UpdatedAt = now
	return nil
}
