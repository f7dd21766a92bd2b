package workspace

import (
	models "dataroom/internal/domain/models/dataroom"
)

// BuildTree nests a room's flat folders and files into a tree.
// Items whose parent is missing from the store are left out.
func BuildTree(store *Store, roomID string) *models.TreeNode {
	allFolders := store.Folders(roomID)
	allFiles := store.Files(roomID)

	// Build folder hierarchy using 3-pass algorithm
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	var rootFolderIDs []string

	// First pass: create all folder nodes
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Files:     []models.FileTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
		} else if parent, exists := folderMap[*folder.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: add files to their folders
	rootFiles := make([]models.FileTreeNode, 0)
	for _, file := range allFiles {
		fileNode := models.FileTreeNode{
			ID:        file.ID,
			Name:      file.Name,
			FolderID:  file.FolderID,
			Size:      file.Size,
			UpdatedAt: file.UpdatedAt,
		}

		if file.FolderID == nil {
			rootFiles = append(rootFiles, fileNode)
		} else if parent, exists := folderMap[*file.FolderID]; exists {
			parent.Files = append(parent.Files, fileNode)
		}
	}

	rootFolders := make([]*models.FolderTreeNode, 0, len(rootFolderIDs))
	for _, folderID := range rootFolderIDs {
		rootFolders = append(rootFolders, folderMap[folderID])
	}

	return &models.TreeNode{
		RoomID:  roomID,
		Folders: rootFolders,
		Files:   rootFiles,
	}
}
