// File: database/repository/company/company_mongo.go
package companyRepo

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

type mongoCompanyRepo struct {
	coll *mongo.Collection
}

// NewMongoCompanyRepo returns a Repository backed by the companies collection.
func NewMongoCompanyRepo() Repository {
	return &mongoCompanyRepo{coll: database.Collection("companies")}
}

func (r *mongoCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, company)
	return err
}

func (r *mongoCompanyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var company models.Company
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *mongoCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	company.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": company.ID}, company)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCompanyRepo) UpdateWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"workingHours": hours, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the company queries rely on.
func (r *mongoCompanyRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
