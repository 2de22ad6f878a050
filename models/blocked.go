package models

import "time"

// BlockedTimeStatus enumerates blocked-time states.
type BlockedTimeStatus string

const (
	BlockedActive    BlockedTimeStatus = "Active"
	BlockedCancelled BlockedTimeStatus = "Cancelled"
)

// BlockedTime is a provider-declared unavailable interval, independent of
// appointments. EndTime is strictly after StartTime.
type BlockedTime struct {
	ID                    string            `bson:"id" json:"id"`
	ProviderID            string            `bson:"providerId" json:"providerId"`
	StartTime             time.Time         `bson:"startTime" json:"startTime"`
	EndTime               time.Time         `bson:"endTime" json:"endTime"`
	Reason                string            `bson:"reason,omitempty" json:"reason,omitempty"`
	Status                BlockedTimeStatus `bson:"status" json:"status"`
	CancellationReason    string            `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationTimestamp *time.Time        `bson:"cancellationTimestamp,omitempty" json:"cancellationTimestamp,omitempty"`
	CreatedAt             time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the blocked-time's half-open occupancy interval.
func (b *BlockedTime) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}
