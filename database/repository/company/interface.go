// File: database/repository/company/interface.go
package companyRepo

import (
	"context"

	"schedula/models"
)

// Repository defines methods to manage company records.
type Repository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	UpdateWorkingHours(ctx context.Context, id string, hours []models.WorkingHour) error
	EnsureIndexes(ctx context.Context) error
}
