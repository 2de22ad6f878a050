package models

import "time"

// AppointmentStatus enumerates appointment states.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusBlocked   AppointmentStatus = "Blocked"
)

// HistoryEntry records one status transition. The Status field is the
// transition label, not necessarily a value of AppointmentStatus: edits keep
// the appointment Booked but append an "Edited" entry.
type HistoryEntry struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Appointment is a customer's booking with a provider for a service.
// History is an append-only log: entries are added exclusively through the
// lifecycle transitions and persisted with $push; existing entries are never
// rewritten.
type Appointment struct {
	ID                    string            `bson:"id" json:"id"`
	CustomerID            string            `bson:"customerId" json:"customerId"`
	ProviderID            string            `bson:"providerId" json:"providerId"`
	ServiceID             string            `bson:"serviceId" json:"serviceId"`
	DateTime              time.Time         `bson:"dateTime" json:"dateTime"` // start instant
	EndTime               time.Time         `bson:"endTime" json:"endTime"`   // start + service duration; always after DateTime
	Status                AppointmentStatus `bson:"status" json:"status"`
	History               []HistoryEntry    `bson:"history" json:"history"`
	CancellationReason    string            `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationTimestamp *time.Time        `bson:"cancellationTimestamp,omitempty" json:"cancellationTimestamp,omitempty"`
	Review                *Review           `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt             time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// ActiveStatuses are the appointment states that occupy the provider's
// timeline for conflict purposes.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusBooked, StatusBlocked}
}

// Interval returns the appointment's half-open occupancy interval.
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.DateTime, End: a.EndTime}
}
