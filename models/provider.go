package models

import "time"

// UnavailablePeriod is a provider-declared absolute interval that is never bookable.
type UnavailablePeriod struct {
	Start  time.Time `bson:"start" json:"start"`
	End    time.Time `bson:"end" json:"end"`
	Reason string    `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Provider is a bookable person or resource. A provider belongs to exactly
// one company; when its own WorkingHours list is empty the owning company's
// schedule applies.
type Provider struct {
	ID                 string              `bson:"id" json:"id"`
	CompanyID          string              `bson:"companyId" json:"companyId"`
	Name               string              `bson:"name" json:"name"`
	Email              string              `bson:"email,omitempty" json:"email,omitempty"`
	WorkingHours       []WorkingHour       `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	UnavailablePeriods []UnavailablePeriod `bson:"unavailablePeriods,omitempty" json:"unavailablePeriods,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
