package dataroom

import "time"

// ItemType discriminates the FileSystemItem union
type ItemType string

const (
	ItemTypeFolder ItemType = "folder"
	ItemTypeFile   ItemType = "file"
)

// RootBreadcrumbName is the label of the synthetic root entry
const RootBreadcrumbName = "Root"

// FileSystemItem is the uniform listing/selection shape over folders and files.
// Size and MimeType are only set for files.
type FileSystemItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      ItemType  `json:"type"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Size      *int64    `json:"size,omitempty"`
	MimeType  *string   `json:"mime_type,omitempty"`
}

// BreadcrumbItem is one step of the root-to-current chain. ID is nil for the root.
type BreadcrumbItem struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// FolderItem maps a folder to the uniform item shape
func FolderItem(f Folder) FileSystemItem {
	return FileSystemItem{
		ID:        f.ID,
		Name:      f.Name,
		Type:      ItemTypeFolder,
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FileItem maps a file to the uniform item shape
func FileItem(f File) FileSystemItem {
	size := f.Size
	mime := f.MimeType
	return FileSystemItem{
		ID:        f.ID,
		Name:      f.Name,
		Type:      ItemTypeFile,
		ParentID:  f.FolderID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		Size:      &size,
		MimeType:  &mime,
	}
}
