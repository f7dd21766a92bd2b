package dataroom

// CreateRoomRequest represents a data room creation request
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateRoomRequest renames a room and/or changes its description
type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateFolderRequest represents a folder creation request.
// An empty RoomID falls back to the session's active room.
type CreateFolderRequest struct {
	RoomID   string  `json:"room_id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil = room root
}

// RenameRequest renames a folder or file
type RenameRequest struct {
	Name string `json:"name"`
}

// UploadFileRequest carries an uploaded blob and its target location
type UploadFileRequest struct {
	RoomID   string
	FolderID *string
	Name     string
	MimeType string
	Data     []byte
}

// Size is the number of bytes uploaded
func (r *UploadFileRequest) Size() int64 {
	return int64(len(r.Data))
}

// DeleteSummary reports everything a cascading delete removed.
// StorageErr is set when some storage objects could not be removed;
// the record-level delete still completed.
type DeleteSummary struct {
	RoomIDs    []string `json:"room_ids,omitempty"`
	FolderIDs  []string `json:"folder_ids,omitempty"`
	FileIDs    []string `json:"file_ids,omitempty"`
	StorageErr error    `json:"-"`
}
