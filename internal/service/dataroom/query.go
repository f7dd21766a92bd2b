package dataroom

import (
	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	"dataroom/internal/workspace"
)

// ListRooms returns the workspace's rooms in creation order
func (s *Service) ListRooms(ws *workspace.Workspace) []models.Room {
	return ws.Store.Rooms()
}

// ListItems lists the folders then files directly inside (room, folder),
// filtered by a case-insensitive name substring
func (s *Service) ListItems(ws *workspace.Workspace, roomID string, folderID *string, query string) ([]models.FileSystemItem, error) {
	if _, ok := ws.Store.Room(roomID); !ok {
		return nil, domain.NewNotFoundError("data room", roomID)
	}
	parentID, err := resolveParent(ws, roomID, folderID)
	if err != nil {
		return nil, err
	}
	return ws.Resolver.ListCurrentItems(roomID, parentID, query), nil
}

// Tree returns the nested folder/file tree of a room
func (s *Service) Tree(ws *workspace.Workspace, roomID string) (*models.TreeNode, error) {
	if _, ok := ws.Store.Room(roomID); !ok {
		return nil, domain.NewNotFoundError("data room", roomID)
	}
	return workspace.BuildTree(ws.Store, roomID), nil
}

// Breadcrumbs returns the root-first path to a folder
func (s *Service) Breadcrumbs(ws *workspace.Workspace, folderID string) ([]models.BreadcrumbItem, error) {
	if _, ok := ws.Store.Folder(folderID); !ok {
		return nil, domain.NewNotFoundError("folder", folderID)
	}
	return ws.Resolver.ResolvePath(&folderID), nil
}
