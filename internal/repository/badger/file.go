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

// FileRepository stores file records under "file/<id>"
type FileRepository struct {
	db *badger.DB
}

// ListByRooms retrieves a flat list of all files in the given rooms
func (r *FileRepository) ListByRooms(ctx context.Context, roomIDs []string) ([]models.File, error) {
	var files []models.File
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		files, err = scan(txn, prefixFile, func(f *models.File) bool {
			return slices.Contains(roomIDs, f.DataRoomID)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	slices.SortFunc(files, func(a, b models.File) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return files, nil
}

// Create inserts a file record and assigns its ID
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	file.ID = uuid.NewString()
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		if err := requireParents(txn, file.DataRoomID, file.FolderID); err != nil {
			return err
		}
		return putJSON(txn, prefixFile+file.ID, file)
	})
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// Update writes name and updated_at
func (r *FileRepository) Update(ctx context.Context, file *models.File) error {
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		var stored models.File
		if err := getJSON(txn, prefixFile+file.ID, &stored); err != nil {
			return err
		}
		stored.Name = file.Name
		stored.UpdatedAt = file.UpdatedAt
		return putJSON(txn, prefixFile+file.ID, &stored)
	})
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return nil
}

// Delete removes one file record
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixFile + id))
	})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
