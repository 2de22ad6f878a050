package models

import "time"

// Holiday is a company-wide closed date.
type Holiday struct {
	Date        string `bson:"date" json:"date"` // "2006-01-02"
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category,omitempty" json:"category,omitempty"` // e.g. "public", "company"
}

// Company owns providers and services and carries the fallback schedule
// used when a provider defines no working hours of its own.
type Company struct {
	ID           string        `bson:"id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email,omitempty" json:"email,omitempty"`
	WorkingHours []WorkingHour `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	Holidays     []Holiday     `bson:"holidays,omitempty" json:"holidays,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
