package dataroom

import (
	"context"

	models "dataroom/internal/domain/models/dataroom"
)

// FileRepository defines data access operations for file records
type FileRepository interface {
	// ListByRooms retrieves every file belonging to any of the given rooms (flat list)
	ListByRooms(ctx context.Context, roomIDs []string) ([]models.File, error)

	// Create inserts a file record and fills in its generated ID
	Create(ctx context.Context, file *models.File) error

	// Update writes name and updated_at
	Update(ctx context.Context, file *models.File) error

	// Delete removes a single file record
	Delete(ctx context.Context, id string) error
}
