// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"
	"time"

	"schedula/models"
)

// Repository defines methods to manage blocked-time records. Cancellation is
// the normal lifecycle path; Delete exists as a separate administrative
// cleanup operation.
type Repository interface {
	Create(ctx context.Context, block *models.BlockedTime) error
	GetByID(ctx context.Context, id string) (*models.BlockedTime, error)

	// FindInRange returns the provider's active blocked times whose
	// [startTime, endTime) interval overlaps [start, end).
	FindInRange(ctx context.Context, providerID string, start, end time.Time) ([]models.BlockedTime, error)

	// SaveTransition persists the Active → Cancelled transition. The write
	// only applies while the stored record is still Active;
	// repository.ErrStale is returned when it no longer is.
	SaveTransition(ctx context.Context, block *models.BlockedTime) error

	// Delete hard-deletes the record (administrative path).
	Delete(ctx context.Context, id string) error

	EnsureIndexes(ctx context.Context) error
}
