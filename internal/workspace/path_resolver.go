package workspace

import (
	"strings"

	models "dataroom/internal/domain/models/dataroom"
)

// PathResolver derives breadcrumbs and directory listings from the flat store.
// Nothing is cached: every call reads the current store snapshot.
type PathResolver struct {
	store *Store
}

// NewPathResolver creates a resolver over store
func NewPathResolver(store *Store) *PathResolver {
	return &PathResolver{store: store}
}

// ResolvePath returns the root-to-folder breadcrumb chain, always starting with
// the synthetic root entry. A dangling parent reference ends the walk as if the
// root had been reached.
func (r *PathResolver) ResolvePath(folderID *string) []models.BreadcrumbItem {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var reversed []models.BreadcrumbItem
	visited := make(map[string]struct{})
	for current := folderID; current != nil; {
		if _, seen := visited[*current]; seen {
			break
		}
		visited[*current] = struct{}{}

		folder, ok := r.store.folders.get(*current)
		if !ok {
			break
		}
		id := folder.ID
		reversed = append(reversed, models.BreadcrumbItem{ID: &id, Name: folder.Name})
		current = folder.ParentID
	}

	crumbs := make([]models.BreadcrumbItem, 0, len(reversed)+1)
	crumbs = append(crumbs, models.BreadcrumbItem{ID: nil, Name: models.RootBreadcrumbName})
	for i := len(reversed) - 1; i >= 0; i-- {
		crumbs = append(crumbs, reversed[i])
	}
	return crumbs
}

// ListCurrentItems lists the folders and then the files located at
// (roomID, folderID). A non-blank query keeps only items whose name contains it,
// case-insensitively.
func (r *PathResolver) ListCurrentItems(roomID string, folderID *string, query string) []models.FileSystemItem {
	r.store.mu.RLock()
	folders := r.store.childFoldersLocked(roomID, folderID)
	files := r.store.filesInLocked(roomID, folderID)
	r.store.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	items := make([]models.FileSystemItem, 0, len(folders)+len(files))
	for _, f := range folders {
		if matches(f.Name, needle) {
			items = append(items, models.FolderItem(f))
		}
	}
	for _, f := range files {
		if matches(f.Name, needle) {
			items = append(items, models.FileItem(f))
		}
	}
	return items
}

func matches(name, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(name), needle)
}
