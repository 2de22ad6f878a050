// File: database/repository/blocked/blocked_mongo.go
package blockedRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"schedula/database"
	"schedula/database/repository"
	"schedula/models"
)

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo returns a Repository backed by the blocked_times collection.
func NewMongoBlockedRepo() Repository {
	return &mongoBlockedRepo{coll: database.Collection("blocked_times")}
}

func (r *mongoBlockedRepo) Create(ctx context.Context, block *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	now := time.Now()
	block.CreatedAt = now
	block.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, block)
	return err
}

func (r *mongoBlockedRepo) GetByID(ctx context.Context, id string) (*models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var block models.BlockedTime
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&block)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *mongoBlockedRepo) FindInRange(ctx context.Context, providerID string, start, end time.Time) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"status":     models.BlockedActive,
		"startTime":  bson.M{"$lt": end},
		"endTime":    bson.M{"$gt": start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedTime
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *mongoBlockedRepo) SaveTransition(ctx context.Context, block *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	block.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":                block.Status,
			"cancellationReason":    block.CancellationReason,
			"cancellationTimestamp": block.CancellationTimestamp,
			"updatedAt":             block.UpdatedAt,
		},
	}
	// Guarded on Active so concurrent cancellations cannot both land.
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": block.ID, "status": models.BlockedActive}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": block.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrStale
	}
	return nil
}

func (r *mongoBlockedRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the range queries rely on.
func (r *mongoBlockedRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "startTime", Value: 1},
			},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}
