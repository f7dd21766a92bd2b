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

// FolderRepository stores folders under "folder/<id>"
type FolderRepository struct {
	db *badger.DB
}

// ListByRooms retrieves a flat list of all folders in the given rooms
func (r *FolderRepository) ListByRooms(ctx context.Context, roomIDs []string) ([]models.Folder, error) {
	var folders []models.Folder
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		folders, err = scan(txn, prefixFolder, func(f *models.Folder) bool {
			return slices.Contains(roomIDs, f.DataRoomID)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	slices.SortFunc(folders, func(a, b models.Folder) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return folders, nil
}

// Create inserts a folder and assigns its ID. The room and parent must exist.
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.NewString()
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		if err := requireParents(txn, folder.DataRoomID, folder.ParentID); err != nil {
			return err
		}
		return putJSON(txn, prefixFolder+folder.ID, folder)
	})
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// Update writes name and updated_at
func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		var stored models.Folder
		if err := getJSON(txn, prefixFolder+folder.ID, &stored); err != nil {
			return err
		}
		stored.Name = folder.Name
		stored.UpdatedAt = folder.UpdatedAt
		return putJSON(txn, prefixFolder+folder.ID, &stored)
	})
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	return nil
}

// Delete removes one folder record
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixFolder + id))
	})
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

// requireParents mirrors the foreign keys of the SQL schema
func requireParents(txn *badger.Txn, roomID string, folderID *string) error {
	ok, err := exists(txn, prefixRoom+roomID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("data room %s does not exist", roomID)
	}
	if folderID == nil {
		return nil
	}
	ok, err = exists(txn, prefixFolder+*folderID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("folder %s does not exist", *folderID)
	}
	return nil
}
