package models

import "time"

// Reason codes returned by the availability read path. A closed day is a
// successful empty result carrying one of these, not an error.
const (
	ReasonNoWorkingHours       = "NO_WORKING_HOURS"
	ReasonNoWorkingHoursForDay = "NO_WORKING_HOURS_FOR_DAY"
	ReasonInvalidTime          = "INVALID_TIME"
)

// ScheduleSource tags which schedule won the provider→company fallback.
type ScheduleSource string

const (
	SourceProvider ScheduleSource = "provider"
	SourceCompany  ScheduleSource = "company"
)

// DaySchedule is a resolved open window for one calendar day, with break
// periods anchored to absolute instants.
type DaySchedule struct {
	Date    time.Time      `json:"date"` // midnight of the day in the engine location
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Breaks  []Interval     `json:"breaks,omitempty"`
	Buffer  int            `json:"buffer,omitempty"` // provider-level buffer minutes from the matched entry
	Source  ScheduleSource `json:"source"`
}

// AvailabilityResult is the read-path response: ordered bookable start times
// formatted as local clock time.
type AvailabilityResult struct {
	Date   string   `json:"date"`
	Slots  []string `json:"slots"`
	Reason string   `json:"reason,omitempty"` // set when Slots is empty because the day is closed
}

// BookingRequest is the payload for creating or rescheduling an appointment.
type BookingRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	ProviderID string `json:"providerId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
	Date       string `json:"date" binding:"required"` // "2006-01-02"
	Time       string `json:"time" binding:"required"` // "HH:mm"
}

// BlockTimeRequest is the payload for creating a blocked-time record.
type BlockTimeRequest struct {
	ProviderID string    `json:"providerId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	Reason     string    `json:"reason,omitempty"`
}
