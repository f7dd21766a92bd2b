package dataroom

import (
	"time"
)

type File struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	FolderID   *string   `json:"folder_id" db:"folder_id"` // NULL = room root
	DataRoomID string    `json:"data_room_id" db:"data_room_id"`
	Size       int64     `json:"size" db:"size"`
	MimeType   string    `json:"mime_type" db:"mime_type"`
	StorageKey string    `json:"storage_key" db:"storage_key"` // Opaque handle into object storage
	UploadedBy string    `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
