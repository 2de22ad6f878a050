package models

import "time"

// WorkingHour defines the open window for one weekday.
type WorkingHour struct {
	Day        string        `bson:"day" json:"day"`                               // Weekday name, e.g. "Monday". Matched case-insensitively.
	Start      string        `bson:"start" json:"start"`                           // "HH:mm", 24h clock.
	End        string        `bson:"end" json:"end"`                               // "HH:mm", 24h clock.
	Breaks     []BreakPeriod `bson:"breaks,omitempty" json:"breaks,omitempty"`     // Sub-intervals during which no slot may start.
	BufferTime int           `bson:"bufferTime,omitempty" json:"bufferTime,omitempty"` // Extra minutes between slots, provider-level.
	IsDayOn    *bool         `bson:"isDayOn,omitempty" json:"isDayOn,omitempty"`   // Company schedules only; nil means on.
}

// BreakPeriod is a clock-time interval within a working day.
type BreakPeriod struct {
	Start string `bson:"start" json:"start"` // "HH:mm"
	End   string `bson:"end" json:"end"`     // "HH:mm"
}

// Interval is a half-open absolute time interval [Start, End).
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Review holds optional customer feedback on a completed appointment.
type Review struct {
	Rating  float64 `bson:"rating" json:"rating"`   // Expected value between 1 and 5.
	Comment string  `bson:"comment" json:"comment"` // Customer's feedback.
}
