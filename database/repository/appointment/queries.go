// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"schedula/models"
)

// overlapFilter matches appointments whose half-open interval intersects
// [start, end): dateTime < end AND endTime > start.
func overlapFilter(providerID string, start, end time.Time, statuses []models.AppointmentStatus) bson.M {
	filter := bson.M{
		"providerId": providerID,
		"dateTime":   bson.M{"$lt": end},
		"endTime":    bson.M{"$gt": start},
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return filter
}

func (r *mongoAppointmentRepo) FindInRange(ctx context.Context, providerID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, overlapFilter(providerID, start, end, statuses), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) FindEndingBefore(ctx context.Context, cutoff time.Time, status models.AppointmentStatus) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":  status,
		"endTime": bson.M{"$lt": cutoff},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}
