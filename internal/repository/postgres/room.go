package postgres

import (
	"context"
	"fmt"

	models "dataroom/internal/domain/models/dataroom"
	roomRepo "dataroom/internal/domain/repositories/dataroom"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRoomRepository implements the RoomRepository interface
type PostgresRoomRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewRoomRepository creates a new data room repository
func NewRoomRepository(config *RepositoryConfig) roomRepo.RoomRepository {
	return &PostgresRoomRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListByOwner retrieves all rooms of a user, oldest first
func (r *PostgresRoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Room, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, r.tables.Rooms)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list data rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Description,
			&room.OwnerID,
			&room.CreatedAt,
			&room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan data room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate data rooms: %w", err)
	}
	return rooms, nil
}

// Create inserts a room
func (r *PostgresRoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Rooms)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		room.Name,
		room.Description,
		room.OwnerID,
		room.CreatedAt,
		room.UpdatedAt,
	).Scan(&room.ID)
	if err != nil {
		return fmt.Errorf("create data room: %w", err)
	}
	return nil
}

// Update writes name, description and updated_at
func (r *PostgresRoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Rooms)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		room.Name,
		room.Description,
		room.UpdatedAt,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("update data room: %w", err)
	}
	return notFoundIfNoRows(result.RowsAffected(), "data room", room.ID)
}

// Delete removes a room. Rows that reference it cascade.
func (r *PostgresRoomRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Rooms)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete data room: %w", err)
	}
	return nil
}
