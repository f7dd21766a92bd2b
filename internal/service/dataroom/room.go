package dataroom

import (
	"context"
	"strings"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/workspace"
)

// CreateRoom creates a new data room owned by the workspace user.
// Room names need not be unique.
func (s *Service) CreateRoom(ctx context.Context, ws *workspace.Workspace, req *roomSvc.CreateRoomRequest) (*models.Room, error) {
	ws.Lock()
	defer ws.Unlock()

	name := strings.TrimSpace(req.Name)
	if err := validateRoomName(name); err != nil {
		return nil, err
	}
	description := normalizeDescription(req.Description)
	if err := validateRoomDescription(description); err != nil {
		return nil, err
	}

	now := s.now()
	room := &models.Room{
		Name:        name,
		Description: description,
		OwnerID:     ws.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Rooms.Create(ctx, room); err != nil {
		return nil, domain.Persist("create data room", err)
	}

	ws.Store.PutRoom(*room)

	s.logger.Info("data room created",
		"id", room.ID,
		"name", room.Name,
		"owner_id", room.OwnerID,
	)
	return room, nil
}

// UpdateRoom renames a room and/or changes its description
func (s *Service) UpdateRoom(ctx context.Context, ws *workspace.Workspace, id string, req *roomSvc.UpdateRoomRequest) (*models.Room, error) {
	ws.Lock()
	defer ws.Unlock()

	room, ok := ws.Store.Room(id)
	if !ok {
		return nil, domain.NewNotFoundError("data room", id)
	}
	if req.Name == nil && req.Description == nil {
		return nil, domain.NewValidationError("", "at least one field must be provided")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateRoomName(name); err != nil {
			return nil, err
		}
		room.Name = name
	}
	if req.Description != nil {
		// an empty description clears it
		description := normalizeDescription(req.Description)
		if err := validateRoomDescription(description); err != nil {
			return nil, err
		}
		room.Description = description
	}
	room.UpdatedAt = s.now()

	if err := s.repos.Rooms.Update(ctx, &room); err != nil {
		return nil, domain.Persist("update data room", err)
	}

	ws.Store.PutRoom(room)

	s.logger.Info("data room updated", "id", room.ID, "name", room.Name)
	return &room, nil
}

// RenameRoom renames a room. No uniqueness check applies.
func (s *Service) RenameRoom(ctx context.Context, ws *workspace.Workspace, id, name string) (*models.Room, error) {
	return s.UpdateRoom(ctx, ws, id, &roomSvc.UpdateRoomRequest{Name: &name})
}

// DeleteRoom deletes a room with all of its folders and files.
// Storage objects are removed first, best-effort; a failure there is reported
// in the summary and does not stop the record-level cascade.
// Deleting an unknown room is a no-op.
func (s *Service) DeleteRoom(ctx context.Context, ws *workspace.Workspace, id string) (*roomSvc.DeleteSummary, error) {
	ws.Lock()
	defer ws.Unlock()

	room, ok := ws.Store.Room(id)
	if !ok {
		return &roomSvc.DeleteSummary{}, nil
	}
	folders := ws.Store.Folders(id)
	files := ws.Store.Files(id)

	storageErr := s.removeObjects(ctx, files)

	err := s.repos.TxManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deleteRecords(txCtx, folders, files); err != nil {
			return err
		}
		return s.repos.Rooms.Delete(txCtx, id)
	})
	if err != nil {
		return nil, domain.Persist("delete data room", err)
	}

	ws.Store.RemoveRoom(id)
	if active := ws.Session.ActiveRoomID(); active != nil && *active == id {
		ws.Session.SetActiveRoom(nil)
	}
	ws.Session.Deselect(append(folderIDs(folders), fileIDs(files)...)...)

	s.logger.Info("data room deleted",
		"id", id,
		"name", room.Name,
		"folder_count", len(folders),
		"file_count", len(files),
	)

	return &roomSvc.DeleteSummary{
		RoomIDs:    []string{id},
		FolderIDs:  folderIDs(folders),
		FileIDs:    fileIDs(files),
		StorageErr: storageErr,
	}, nil
}

// normalizeDescription trims v; an empty result means no description
func normalizeDescription(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
