package dataroom

import (
	"context"

	models "dataroom/internal/domain/models/dataroom"
)

// RoomRepository defines data access operations for data rooms
type RoomRepository interface {
	// ListByOwner retrieves all rooms owned by a user
	ListByOwner(ctx context.Context, ownerID string) ([]models.Room, error)

	// Create inserts a room and fills in its generated ID
	Create(ctx context.Context, room *models.Room) error

	// Update writes name, description and updated_at
	Update(ctx context.Context, room *models.Room) error

	// Delete removes a room. Callers remove its folders and files first
	// (or in the same transaction).
	Delete(ctx context.Context, id string) error
}
