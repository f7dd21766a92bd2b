package postgres

import (
	"context"
	"fmt"

	models "dataroom/internal/domain/models/dataroom"
	roomRepo "dataroom/internal/domain/repositories/dataroom"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) roomRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListByRooms retrieves a flat list of all folders in the given rooms
func (r *PostgresFolderRepository) ListByRooms(ctx context.Context, roomIDs []string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, data_room_id, created_at, updated_at
		FROM %s
		WHERE data_room_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.ParentID,
			&folder.DataRoomID,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

// Create inserts a folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, data_room_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.DataRoomID,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("create folder: parent or room missing: %w", err)
		}
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// Update writes name and updated_at
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folder.Name, folder.UpdatedAt, folder.ID)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	return notFoundIfNoRows(result.RowsAffected(), "folder", folder.ID)
}

// Delete removes one folder record
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}
