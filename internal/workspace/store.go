package workspace

import (
	"sync"

	models "dataroom/internal/domain/models/dataroom"
)

// table is an id-keyed collection that remembers insertion order.
// Replacing an existing id keeps its position.
type table[T any] struct {
	order []string
	items map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

func (t *table[T]) reset(items []T, idOf func(T) string) {
	t.order = make([]string, 0, len(items))
	t.items = make(map[string]T, len(items))
	for _, item := range items {
		t.put(idOf(item), item)
	}
}

func (t *table[T]) put(id string, item T) {
	if _, exists := t.items[id]; !exists {
		t.order = append(t.order, id)
	}
	t.items[id] = item
}

func (t *table[T]) get(id string) (T, bool) {
	item, ok := t.items[id]
	return item, ok
}

func (t *table[T]) remove(ids map[string]struct{}) int {
	if len(ids) == 0 {
		return 0
	}
	removed := 0
	kept := t.order[:0]
	for _, id := range t.order {
		if _, drop := ids[id]; drop {
			delete(t.items, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return removed
}

// each visits items in insertion order until fn returns false
func (t *table[T]) each(fn func(T) bool) {
	for _, id := range t.order {
		if !fn(t.items[id]) {
			return
		}
	}
}

func (t *table[T]) len() int { return len(t.order) }

// Store is the canonical in-memory copy of one user's rooms, folders and files.
// Hierarchy is never stored nested: folders and files point at their parent by id.
// All methods are safe for concurrent use; returned values are copies.
type Store struct {
	mu      sync.RWMutex
	rooms   *table[models.Room]
	folders *table[models.Folder]
	files   *table[models.File]
	loaded  bool
	dirty   bool
}

// NewStore creates an empty, unloaded store
func NewStore() *Store {
	return &Store{
		rooms:   newTable[models.Room](),
		folders: newTable[models.Folder](),
		files:   newTable[models.File](),
	}
}

// Load bulk-replaces every collection with the durable copy
func (s *Store) Load(rooms []models.Room, folders []models.Folder, files []models.File) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms.reset(rooms, func(r models.Room) string { return r.ID })
	s.folders.reset(folders, func(f models.Folder) string { return f.ID })
	s.files.reset(files, func(f models.File) string { return f.ID })
	s.loaded = true
	s.dirty = false
}

// Loaded reports whether Load has run at least once
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Dirty reports whether the store changed since the last Load or MarkClean
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// MarkClean clears the dirty flag
func (s *Store) MarkClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Counts returns the number of rooms, folders and files held
func (s *Store) Counts() (rooms, folders, files int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms.len(), s.folders.len(), s.files.len()
}

// ---- rooms ----

func (s *Store) Room(id string) (models.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms.get(id)
}

// Rooms returns all rooms in insertion order
func (s *Store) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]models.Room, 0, s.rooms.len())
	s.rooms.each(func(r models.Room) bool {
		rooms = append(rooms, r)
		return true
	})
	return rooms
}

// PutRoom adds a room or replaces the one with the same id
func (s *Store) PutRoom(room models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms.put(room.ID, room)
	s.dirty = true
}

// RemoveRoom drops a room together with every folder and file scoped to it.
// Returns false if the room was not present.
func (s *Store) RemoveRoom(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rooms.remove(set(id)) == 0 {
		return false
	}

	folderIDs := make(map[string]struct{})
	s.folders.each(func(f models.Folder) bool {
		if f.DataRoomID == id {
			folderIDs[f.ID] = struct{}{}
		}
		return true
	})
	fileIDs := make(map[string]struct{})
	s.files.each(func(f models.File) bool {
		if f.DataRoomID == id {
			fileIDs[f.ID] = struct{}{}
		}
		return true
	})
	s.folders.remove(folderIDs)
	s.files.remove(fileIDs)
	s.dirty = true
	return true
}

// ---- folders ----

func (s *Store) Folder(id string) (models.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folders.get(id)
}

// Folders returns every folder of a room in insertion order
func (s *Store) Folders(roomID string) []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var folders []models.Folder
	s.folders.each(func(f models.Folder) bool {
		if f.DataRoomID == roomID {
			folders = append(folders, f)
		}
		return true
	})
	return folders
}

// ChildFolders returns the folders located directly at (roomID, parentID)
func (s *Store) ChildFolders(roomID string, parentID *string) []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.childFoldersLocked(roomID, parentID)
}

func (s *Store) childFoldersLocked(roomID string, parentID *string) []models.Folder {
	var folders []models.Folder
	s.folders.each(func(f models.Folder) bool {
		if f.DataRoomID == roomID && SameParent(f.ParentID, parentID) {
			folders = append(folders, f)
		}
		return true
	})
	return folders
}

// PutFolder adds a folder or replaces the one with the same id
func (s *Store) PutFolder(folder models.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders.put(folder.ID, folder)
	s.dirty = true
}

// RemoveFolders drops the given folder ids and returns how many were present.
// It does not cascade; use FolderClosure to collect descendants first.
func (s *Store) RemoveFolders(ids ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.folders.remove(set(ids...))
	if n > 0 {
		s.dirty = true
	}
	return n
}

// FolderClosure returns the folder with every transitive descendant folder,
// plus every file located in any of them. Each folder is visited exactly once;
// the root folder comes first and children always follow their parent.
func (s *Store) FolderClosure(folderID string) ([]models.Folder, []models.File) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	root, ok := s.folders.get(folderID)
	if !ok {
		return nil, nil
	}

	// parent id -> children, built once so the walk is linear in the tree size
	children := make(map[string][]models.Folder)
	s.folders.each(func(f models.Folder) bool {
		if f.ParentID != nil && f.DataRoomID == root.DataRoomID {
			children[*f.ParentID] = append(children[*f.ParentID], f)
		}
		return true
	})

	visited := map[string]struct{}{root.ID: {}}
	closure := []models.Folder{root}
	for i := 0; i < len(closure); i++ {
		for _, child := range children[closure[i].ID] {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			closure = append(closure, child)
		}
	}

	var files []models.File
	s.files.each(func(f models.File) bool {
		if f.FolderID != nil && f.DataRoomID == root.DataRoomID {
			if _, in := visited[*f.FolderID]; in {
				files = append(files, f)
			}
		}
		return true
	})

	return closure, files
}

// ---- files ----

func (s *Store) File(id string) (models.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files.get(id)
}

// Files returns every file of a room in insertion order
func (s *Store) Files(roomID string) []models.File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var files []models.File
	s.files.each(func(f models.File) bool {
		if f.DataRoomID == roomID {
			files = append(files, f)
		}
		return true
	})
	return files
}

// FilesIn returns the files located directly at (roomID, folderID)
func (s *Store) FilesIn(roomID string, folderID *string) []models.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filesInLocked(roomID, folderID)
}

func (s *Store) filesInLocked(roomID string, folderID *string) []models.File {
	var files []models.File
	s.files.each(func(f models.File) bool {
		if f.DataRoomID == roomID && SameParent(f.FolderID, folderID) {
			files = append(files, f)
		}
		return true
	})
	return files
}

// PutFile adds a file or replaces the one with the same id
func (s *Store) PutFile(file models.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files.put(file.ID, file)
	s.dirty = true
}

// RemoveFiles drops the given file ids and returns how many were present
func (s *Store) RemoveFiles(ids ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.files.remove(set(ids...))
	if n > 0 {
		s.dirty = true
	}
	return n
}

// SameParent compares two optional parent references; nil means room root
func SameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func set(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
