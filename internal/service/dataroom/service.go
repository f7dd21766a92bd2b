package dataroom

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dataroom/internal/config"
	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	roomRepo "dataroom/internal/domain/repositories/dataroom"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/workspace"

	"github.com/google/uuid"
)

// Service is the mutation engine. Every operation validates against the
// workspace's in-memory state, calls the collaborators, and only touches the
// store once they confirmed success.
type Service struct {
	repos        *roomRepo.Store
	storage      roomSvc.ObjectStorage
	logger       *slog.Logger
	now          func() time.Time
	newKey       func(ownerID, roomID string) string
	signedURLTTL time.Duration
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSignedURLTTL sets how long download URLs stay valid
func WithSignedURLTTL(ttl time.Duration) Option {
	return func(s *Service) { s.signedURLTTL = ttl }
}

// NewService creates a new mutation engine
func NewService(
	repos *roomRepo.Store,
	storage roomSvc.ObjectStorage,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		repos:        repos,
		storage:      storage,
		logger:       logger,
		now:          time.Now,
		newKey:       newStorageKey,
		signedURLTTL: config.DefaultSignedURLTTLSeconds * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newStorageKey builds an opaque, collision-free object key
func newStorageKey(ownerID, roomID string) string {
	return fmt.Sprintf("%s/%s/%s%s", ownerID, roomID, uuid.NewString(), config.RequiredFileExtension)
}

// Load replaces the workspace store with the durable copy of the owner's rooms,
// folders and files. The session is reset if its active room disappeared.
func (s *Service) Load(ctx context.Context, ws *workspace.Workspace) error {
	rooms, err := s.repos.Rooms.ListByOwner(ctx, ws.OwnerID)
	if err != nil {
		return domain.Persist("list rooms", err)
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	var folders []models.Folder
	var files []models.File
	if len(roomIDs) > 0 {
		if folders, err = s.repos.Folders.ListByRooms(ctx, roomIDs); err != nil {
			return domain.Persist("list folders", err)
		}
		if files, err = s.repos.Files.ListByRooms(ctx, roomIDs); err != nil {
			return domain.Persist("list files", err)
		}
	}

	ws.Store.Load(rooms, folders, files)

	if active := ws.Session.ActiveRoomID(); active != nil {
		if _, ok := ws.Store.Room(*active); !ok {
			ws.Session.SetActiveRoom(nil)
		} else if folder := ws.Session.ActiveFolderID(); folder != nil {
			if _, ok := ws.Store.Folder(*folder); !ok {
				folder = nil
			}
			ws.Session.NavigateToFolder(folder)
		}
	}

	s.logger.Info("workspace loaded",
		"owner_id", ws.OwnerID,
		"room_count", len(rooms),
		"folder_count", len(folders),
		"file_count", len(files),
	)
	return nil
}

// removeObjects removes storage objects best-effort; the error is returned for
// surfacing, never for aborting the caller
func (s *Service) removeObjects(ctx context.Context, files []models.File) error {
	if len(files) == 0 {
		return nil
	}
	keys := make([]string, len(files))
	for i, f := range files {
		keys[i] = f.StorageKey
	}
	if err := s.storage.RemoveObjects(ctx, keys); err != nil {
		s.logger.Warn("storage cleanup incomplete", "key_count", len(keys), "error", err)
		return domain.Persist("remove objects", err)
	}
	return nil
}

// deleteRecords deletes file and folder records; run it inside ExecTx.
// folders must be ordered parents-first; they are deleted children-first.
func (s *Service) deleteRecords(ctx context.Context, folders []models.Folder, files []models.File) error {
	for _, f := range files {
		if err := s.repos.Files.Delete(ctx, f.ID); err != nil {
			return fmt.Errorf("delete file %s: %w", f.ID, err)
		}
	}
	for i := len(folders) - 1; i >= 0; i-- {
		if err := s.repos.Folders.Delete(ctx, folders[i].ID); err != nil {
			return fmt.Errorf("delete folder %s: %w", folders[i].ID, err)
		}
	}
	return nil
}

// resolveRoom picks the explicit room, falling back to the session's active one
func resolveRoom(ws *workspace.Workspace, roomID string) (models.Room, error) {
	if roomID == "" {
		active := ws.Session.ActiveRoomID()
		if active == nil {
			return models.Room{}, noRoomSelected()
		}
		roomID = *active
	}
	room, ok := ws.Store.Room(roomID)
	if !ok {
		return models.Room{}, domain.NewNotFoundError("data room", roomID)
	}
	return room, nil
}

// resolveParent checks that folderID (if any) is a folder of roomID
func resolveParent(ws *workspace.Workspace, roomID string, folderID *string) (*string, error) {
	if folderID == nil || *folderID == "" {
		return nil, nil
	}
	folder, ok := ws.Store.Folder(*folderID)
	if !ok || folder.DataRoomID != roomID {
		return nil, domain.NewNotFoundError("folder", *folderID)
	}
	id := folder.ID
	return &id, nil
}

func folderIDs(folders []models.Folder) []string {
	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
	}
	return ids
}

func fileIDs(files []models.File) []string {
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	return ids
}
