// File: database/repository/provider/interface.go
package providerRepo

import (
	"context"

	"schedula/models"
)

// Repository defines methods to manage provider records.
type Repository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	UpdateWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
