package dataroom

import (
	"context"

	models "dataroom/internal/domain/models/dataroom"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// ListByRooms retrieves every folder belonging to any of the given rooms (flat list)
	ListByRooms(ctx context.Context, roomIDs []string) ([]models.Folder, error)

	// Create inserts a folder and fills in its generated ID
	Create(ctx context.Context, folder *models.Folder) error

	// Update writes name and updated_at
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes a single folder record
	Delete(ctx context.Context, id string) error
}
