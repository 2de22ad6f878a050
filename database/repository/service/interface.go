// File: database/repository/service/interface.go
package serviceRepo

import (
	"context"

	"schedula/models"
)

// Repository defines methods to manage service records.
type Repository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
