package badger

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	models "dataroom/internal/domain/models/dataroom"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// RoomRepository stores data rooms under "room/<id>"
type RoomRepository struct {
	db *badger.DB
}

// ListByOwner retrieves all rooms of a user, oldest first
func (r *RoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Room, error) {
	var rooms []models.Room
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		rooms, err = scan(txn, prefixRoom, func(room *models.Room) bool {
			return room.OwnerID == ownerID
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list data rooms: %w", err)
	}
	slices.SortFunc(rooms, func(a, b models.Room) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return rooms, nil
}

// Create inserts a room and assigns its ID
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	room.ID = uuid.NewString()
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		return putJSON(txn, prefixRoom+room.ID, room)
	})
	if err != nil {
		return fmt.Errorf("create data room: %w", err)
	}
	return nil
}

// Update writes name, description and updated_at
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		var stored models.Room
		if err := getJSON(txn, prefixRoom+room.ID, &stored); err != nil {
			return err
		}
		stored.Name = room.Name
		stored.Description = room.Description
		stored.UpdatedAt = room.UpdatedAt
		return putJSON(txn, prefixRoom+room.ID, &stored)
	})
	if err != nil {
		return fmt.Errorf("update data room: %w", err)
	}
	return nil
}

// Delete removes a room record
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixRoom + id))
	})
	if err != nil {
		return fmt.Errorf("delete data room: %w", err)
	}
	return nil
}
