package postgres

import (
	"context"
	"fmt"

	models "dataroom/internal/domain/models/dataroom"
	roomRepo "dataroom/internal/domain/repositories/dataroom"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) roomRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListByRooms retrieves a flat list of all files in the given rooms
func (r *PostgresFileRepository) ListByRooms(ctx context.Context, roomIDs []string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, name, folder_id, data_room_id, size, mime_type, storage_key, uploaded_by, created_at, updated_at
		FROM %s
		WHERE data_room_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, r.tables.Files)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		var file models.File
		if err := rows.Scan(
			&file.ID,
			&file.Name,
			&file.FolderID,
			&file.DataRoomID,
			&file.Size,
			&file.MimeType,
			&file.StorageKey,
			&file.UploadedBy,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

// Create inserts a file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, folder_id, data_room_id, size, mime_type, storage_key, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, r.tables.Files)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		file.Name,
		file.FolderID,
		file.DataRoomID,
		file.Size,
		file.MimeType,
		file.StorageKey,
		file.UploadedBy,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID)
	return createFileError(file, err)
}

// createFileError keeps a duplicate storage key a storage-layer failure;
// name clashes are settled before a record reaches the repository.
func createFileError(file *models.File, err error) error {
	if err == nil {
		return nil
	}
	if isPgDuplicateError(err) {
		return fmt.Errorf("create file: storage key %s already recorded: %w", file.StorageKey, err)
	}
	return fmt.Errorf("create file: %w", err)
}

// Update writes name and updated_at
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Files)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, file.Name, file.UpdatedAt, file.ID)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return notFoundIfNoRows(result.RowsAffected(), "file", file.ID)
}

// Delete removes one file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Files)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
