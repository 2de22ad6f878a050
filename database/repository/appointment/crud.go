// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"schedula/database"
	"schedula/database/repository"
	"schedula/models"
)

type mongoAppointmentRepo struct {
	coll        *mongo.Collection
	blockedColl *mongo.Collection
}

// NewMongoAppointmentRepo returns a Repository backed by the appointments
// collection. The blocked-times collection is needed for the optional
// cross-check inside booking transactions.
func NewMongoAppointmentRepo() Repository {
	return &mongoAppointmentRepo{
		coll:        database.Collection("appointments"),
		blockedColl: database.Collection("blocked_times"),
	}
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *mongoAppointmentRepo) SaveTransition(ctx context.Context, a *models.Appointment, entry models.HistoryEntry, from models.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":                a.Status,
			"serviceId":             a.ServiceID,
			"dateTime":              a.DateTime,
			"endTime":               a.EndTime,
			"cancellationReason":    a.CancellationReason,
			"cancellationTimestamp": a.CancellationTimestamp,
			"updatedAt":             a.UpdatedAt,
		},
		// History grows by $push only; prior entries are never touched.
		"$push": bson.M{"history": entry},
	}
	// Matching on the prior status makes the transition atomic: a racing
	// writer that already moved the record off `from` leaves nothing to
	// match, so at most one transition out of a status can ever land.
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": a.ID, "status": from}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missingOrStale(ctx, a.ID)
	}
	return nil
}

// missingOrStale disambiguates a zero-match guarded update: the record is
// either gone entirely or has moved to another status.
func (r *mongoAppointmentRepo) missingOrStale(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrStale
}
