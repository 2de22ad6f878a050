// File: database/repository/appointment/transaction.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"schedula/database/repository"
	"schedula/models"
)

// countOccupants counts active appointments overlapping [start, end) for the
// provider, optionally excluding one appointment ID, plus active blocked
// times when checkBlocked is set.
func (r *mongoAppointmentRepo) countOccupants(sc mongo.SessionContext, providerID string, start, end time.Time, excludeID string, checkBlocked bool) (int64, error) {
	filter := overlapFilter(providerID, start, end, models.ActiveStatuses())
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.coll.CountDocuments(sc, filter)
	if err != nil {
		return 0, fmt.Errorf("count overlapping appointments: %w", err)
	}
	if n > 0 || !checkBlocked {
		return n, nil
	}

	blockedFilter := bson.M{
		"providerId": providerID,
		"status":     models.BlockedActive,
		"startTime":  bson.M{"$lt": end},
		"endTime":    bson.M{"$gt": start},
	}
	b, err := r.blockedColl.CountDocuments(sc, blockedFilter)
	if err != nil {
		return 0, fmt.Errorf("count overlapping blocked times: %w", err)
	}
	return b, nil
}

// BookIfFree makes the conflict check and the insert a single transactional
// operation so two concurrent bookings for the same interval cannot both
// succeed.
func (r *mongoAppointmentRepo) BookIfFree(ctx context.Context, a *models.Appointment, checkBlocked bool) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.countOccupants(sc, a.ProviderID, a.DateTime, a.EndTime, "", checkBlocked)
		if err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrOverlap
		}
		if _, err := r.coll.InsertOne(sc, a); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	return runInTransaction(ctx, sess, txnFn)
}

// RescheduleIfFree moves the appointment to its new interval under the same
// guarantee, appending the history entry in the same write.
func (r *mongoAppointmentRepo) RescheduleIfFree(ctx context.Context, a *models.Appointment, entry models.HistoryEntry, checkBlocked bool) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.countOccupants(sc, a.ProviderID, a.DateTime, a.EndTime, a.ID, checkBlocked)
		if err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrOverlap
		}

		a.UpdatedAt = time.Now()
		update := bson.M{
			"$set": bson.M{
				"serviceId": a.ServiceID,
				"dateTime":  a.DateTime,
				"endTime":   a.EndTime,
				"updatedAt": a.UpdatedAt,
			},
			"$push": bson.M{"history": entry},
		}
		// Guarded on Booked: a concurrent cancel or completion leaves no
		// record to match and the reschedule is rejected instead of
		// resurrecting a terminal appointment.
		res, err := r.coll.UpdateOne(sc, bson.M{"id": a.ID, "status": models.StatusBooked}, update)
		if err != nil {
			return fmt.Errorf("reschedule appointment failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return r.missingOrStale(sc, a.ID)
		}
		return nil
	}

	return runInTransaction(ctx, sess, txnFn)
}

func runInTransaction(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	var txnErr error
	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			txnErr = err
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		// Keep sentinel errors recognizable through the session wrapper.
		if txnErr != nil {
			return txnErr
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}
