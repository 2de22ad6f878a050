package models

import "time"

// Service is a bookable offering. Duration plus BufferDuration define the
// slot step for availability generation.
type Service struct {
	ID             string    `bson:"id" json:"id"`
	CompanyID      string    `bson:"companyId" json:"companyId"`
	Name           string    `bson:"name" json:"name"`
	Duration       int       `bson:"duration" json:"duration"`             // minutes, must be > 0
	BufferDuration int       `bson:"bufferDuration" json:"bufferDuration"` // minutes, >= 0
	Price          float64   `bson:"price,omitempty" json:"price,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
