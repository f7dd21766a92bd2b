package dataroom

import (
	"context"
	"strings"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/workspace"
)

// UploadFile stores an uploaded PDF and records it at (room, folder).
// Unlike folder creation and renames, a name clash is not an error: the file
// gets the first free "<base> (n).<ext>" name instead.
func (s *Service) UploadFile(ctx context.Context, ws *workspace.Workspace, req *roomSvc.UploadFileRequest) (*models.File, error) {
	ws.Lock()
	defer ws.Unlock()

	if err := validateUpload(req.MimeType, req.Size()); err != nil {
		return nil, err
	}
	room, err := resolveRoom(ws, req.RoomID)
	if err != nil {
		return nil, err
	}
	folderID, err := resolveParent(ws, room.ID, req.FolderID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name != "" {
		name = ensureExtension(name)
	}
	if err := validateFileName(name); err != nil {
		return nil, err
	}

	taken := make(map[string]struct{})
	for _, sibling := range ws.Store.FilesIn(room.ID, folderID) {
		taken[strings.ToLower(sibling.Name)] = struct{}{}
	}
	finalName := uniqueName(name, taken)

	key := s.newKey(ws.OwnerID, room.ID)
	if err := s.storage.PutObject(ctx, key, req.Data, req.MimeType); err != nil {
		return nil, domain.Persist("store file object", err)
	}

	now := s.now()
	file := &models.File{
		Name:       finalName,
		FolderID:   folderID,
		DataRoomID: room.ID,
		Size:       req.Size(),
		MimeType:   req.MimeType,
		StorageKey: key,
		UploadedBy: ws.OwnerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repos.Files.Create(ctx, file); err != nil {
		if cleanupErr := s.storage.RemoveObjects(ctx, []string{key}); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned object", "storage_key", key, "error", cleanupErr)
		}
		return nil, domain.Persist("create file", err)
	}

	ws.Store.PutFile(*file)

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"requested_name", name,
		"room_id", file.DataRoomID,
		"folder_id", file.FolderID,
		"size", file.Size,
	)
	return file, nil
}

// RenameFile renames a file. The name always ends up with the required
// extension; clashes with sibling files are rejected.
func (s *Service) RenameFile(ctx context.Context, ws *workspace.Workspace, id, newName string) (*models.File, error) {
	ws.Lock()
	defer ws.Unlock()

	file, ok := ws.Store.File(id)
	if !ok {
		return nil, domain.NewNotFoundError("file", id)
	}

	name := strings.TrimSpace(newName)
	if name != "" {
		name = ensureExtension(name)
	}
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	for _, sibling := range ws.Store.FilesIn(file.DataRoomID, file.FolderID) {
		if sibling.ID != file.ID && strings.EqualFold(sibling.Name, name) {
			return nil, fileConflict(name, sibling.ID)
		}
	}

	file.Name = name
	file.UpdatedAt = s.now()
	if err := s.repos.Files.Update(ctx, &file); err != nil {
		return nil, domain.Persist("rename file", err)
	}

	ws.Store.PutFile(file)

	s.logger.Info("file renamed", "id", file.ID, "name", file.Name)
	return &file, nil
}

// DeleteFile removes a file record and its storage object.
// Deleting an unknown file is a no-op.
func (s *Service) DeleteFile(ctx context.Context, ws *workspace.Workspace, id string) (*roomSvc.DeleteSummary, error) {
	ws.Lock()
	defer ws.Unlock()

	file, ok := ws.Store.File(id)
	if !ok {
		return &roomSvc.DeleteSummary{}, nil
	}

	storageErr := s.removeObjects(ctx, []models.File{file})

	if err := s.repos.Files.Delete(ctx, id); err != nil {
		return nil, domain.Persist("delete file", err)
	}

	ws.Store.RemoveFiles(id)
	ws.Session.Deselect(id)

	s.logger.Info("file deleted", "id", id, "name", file.Name, "room_id", file.DataRoomID)

	return &roomSvc.DeleteSummary{
		FileIDs:    []string{id},
		StorageErr: storageErr,
	}, nil
}

// SignedURL returns a temporary download URL for a file, or "" when the
// storage backend cannot sign URLs
func (s *Service) SignedURL(ctx context.Context, ws *workspace.Workspace, id string) (string, error) {
	file, ok := ws.Store.File(id)
	if !ok {
		return "", domain.NewNotFoundError("file", id)
	}
	url, err := s.storage.SignedURL(ctx, file.StorageKey, s.signedURLTTL)
	if err != nil {
		return "", domain.Persist("sign download url", err)
	}
	return url, nil
}
