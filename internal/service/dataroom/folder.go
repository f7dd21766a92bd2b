package dataroom

import (
	"context"
	"slices"
	"strings"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/workspace"
)

// CreateFolder creates a folder under req.ParentID (nil = room root).
// Duplicate names at the same location are rejected case-insensitively.
func (s *Service) CreateFolder(ctx context.Context, ws *workspace.Workspace, req *roomSvc.CreateFolderRequest) (*models.Folder, error) {
	ws.Lock()
	defer ws.Unlock()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validateFolderName(name)
	}
	room, err := resolveRoom(ws, req.RoomID)
	if err != nil {
		return nil, err
	}
	parentID, err := resolveParent(ws, room.ID, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := validateFolderName(name); err != nil {
		return nil, err
	}

	for _, sibling := range ws.Store.ChildFolders(room.ID, parentID) {
		if strings.EqualFold(sibling.Name, name) {
			return nil, folderConflict(name, sibling.ID)
		}
	}

	now := s.now()
	folder := &models.Folder{
		Name:       name,
		ParentID:   parentID,
		DataRoomID: room.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repos.Folders.Create(ctx, folder); err != nil {
		return nil, domain.Persist("create folder", err)
	}

	ws.Store.PutFolder(*folder)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"room_id", folder.DataRoomID,
		"parent_id", folder.ParentID,
	)
	return folder, nil
}

// RenameFolder renames a folder, rejecting names already used by a sibling folder
func (s *Service) RenameFolder(ctx context.Context, ws *workspace.Workspace, id, newName string) (*models.Folder, error) {
	ws.Lock()
	defer ws.Unlock()

	folder, ok := ws.Store.Folder(id)
	if !ok {
		return nil, domain.NewNotFoundError("folder", id)
	}

	name := strings.TrimSpace(newName)
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	for _, sibling := range ws.Store.ChildFolders(folder.DataRoomID, folder.ParentID) {
		if sibling.ID != folder.ID && strings.EqualFold(sibling.Name, name) {
			return nil, folderConflict(name, sibling.ID)
		}
	}

	folder.Name = name
	folder.UpdatedAt = s.now()
	if err := s.repos.Folders.Update(ctx, &folder); err != nil {
		return nil, domain.Persist("rename folder", err)
	}

	ws.Store.PutFolder(folder)
	ws.Session.RefreshBreadcrumbs()

	s.logger.Info("folder renamed", "id", folder.ID, "name", folder.Name)
	return &folder, nil
}

// DeleteFolder deletes a folder, every descendant folder and every file inside
// any of them. The closure is computed from the in-memory store before any
// collaborator call. Deleting an unknown folder is a no-op.
func (s *Service) DeleteFolder(ctx context.Context, ws *workspace.Workspace, id string) (*roomSvc.DeleteSummary, error) {
	ws.Lock()
	defer ws.Unlock()

	folders, files := ws.Store.FolderClosure(id)
	if len(folders) == 0 {
		return &roomSvc.DeleteSummary{}, nil
	}
	root := folders[0]

	storageErr := s.removeObjects(ctx, files)

	err := s.repos.TxManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.deleteRecords(txCtx, folders, files)
	})
	if err != nil {
		return nil, domain.Persist("delete folder", err)
	}

	removedFolders := folderIDs(folders)
	removedFiles := fileIDs(files)
	ws.Store.RemoveFiles(removedFiles...)
	ws.Store.RemoveFolders(removedFolders...)
	ws.Session.Deselect(append(removedFolders, removedFiles...)...)

	// step out of a folder that no longer exists
	if active := ws.Session.ActiveFolderID(); active != nil && slices.Contains(removedFolders, *active) {
		ws.Session.NavigateToFolder(root.ParentID)
	}

	s.logger.Info("folder deleted",
		"id", root.ID,
		"name", root.Name,
		"room_id", root.DataRoomID,
		"descendant_count", len(folders)-1,
		"file_count", len(files),
	)

	return &roomSvc.DeleteSummary{
		FolderIDs:  removedFolders,
		FileIDs:    removedFiles,
		StorageErr: storageErr,
	}, nil
}
