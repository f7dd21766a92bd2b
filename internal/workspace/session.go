package workspace

import (
	"sort"
	"sync"

	models "dataroom/internal/domain/models/dataroom"
)

// Session tracks the active room and folder, the multi-select set and the
// search filter. Transitions are pure state changes; nothing is validated here.
type Session struct {
	mu             sync.RWMutex
	resolver       *PathResolver
	activeRoomID   *string
	activeFolderID *string
	breadcrumbs    []models.BreadcrumbItem
	selected       map[string]struct{}
	searchQuery    string
}

// SessionState is a point-in-time copy of a Session, including the visible items
type SessionState struct {
	ActiveRoomID   *string                 `json:"active_room_id"`
	ActiveFolderID *string                 `json:"active_folder_id"`
	Breadcrumbs    []models.BreadcrumbItem `json:"breadcrumbs"`
	Selection      []string                `json:"selection"`
	SearchQuery    string                  `json:"search_query"`
	Items          []models.FileSystemItem `json:"items"`
}

// NewSession creates a session with no active room
func NewSession(resolver *PathResolver) *Session {
	return &Session{
		resolver:    resolver,
		breadcrumbs: []models.BreadcrumbItem{},
		selected:    make(map[string]struct{}),
	}
}

// SetActiveRoom switches rooms: the active folder goes back to the root, the
// selection is cleared and breadcrumbs become [Root] (or empty when id is nil).
func (s *Session) SetActiveRoom(id *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeRoomID = clone(id)
	s.activeFolderID = nil
	s.selected = make(map[string]struct{})
	if id != nil {
		s.breadcrumbs = []models.BreadcrumbItem{{ID: nil, Name: models.RootBreadcrumbName}}
	} else {
		s.breadcrumbs = []models.BreadcrumbItem{}
	}
}

// NavigateToFolder makes id the active folder (nil = room root), clears the
// selection and recomputes breadcrumbs.
func (s *Session) NavigateToFolder(id *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeFolderID = clone(id)
	s.selected = make(map[string]struct{})
	s.breadcrumbs = s.resolver.ResolvePath(s.activeFolderID)
}

// RefreshBreadcrumbs recomputes breadcrumbs for the current folder, e.g. after a rename
func (s *Session) RefreshBreadcrumbs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeRoomID == nil {
		return
	}
	s.breadcrumbs = s.resolver.ResolvePath(s.activeFolderID)
}

// ToggleSelect adds id to the selection, or removes it if already present.
// Returns whether id is selected afterwards.
func (s *Session) ToggleSelect(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// Deselect removes ids from the selection if present
func (s *Session) Deselect(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.selected, id)
	}
}

// SetSearchQuery stores text verbatim; trimming happens when items are listed
func (s *Session) SetSearchQuery(text string) {
	s.mu.Lock()
	s.searchQuery = text
	s.mu.Unlock()
}

func (s *Session) ActiveRoomID() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.activeRoomID)
}

func (s *Session) ActiveFolderID() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.activeFolderID)
}

func (s *Session) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

func (s *Session) Breadcrumbs() []models.BreadcrumbItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BreadcrumbItem(nil), s.breadcrumbs...)
}

// IsSelected reports whether id is in the selection set
func (s *Session) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// Selection returns the selected ids, sorted
func (s *Session) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// VisibleItems re-derives the listing for the active location and search filter.
// Empty when no room is active.
func (s *Session) VisibleItems() []models.FileSystemItem {
	s.mu.RLock()
	room, folder, query := s.activeRoomID, s.activeFolderID, s.searchQuery
	s.mu.RUnlock()

	if room == nil {
		return []models.FileSystemItem{}
	}
	return s.resolver.ListCurrentItems(*room, folder, query)
}

// State captures the whole session along with its visible items
func (s *Session) State() SessionState {
	return SessionState{
		ActiveRoomID:   s.ActiveRoomID(),
		ActiveFolderID: s.ActiveFolderID(),
		Breadcrumbs:    s.Breadcrumbs(),
		Selection:      s.Selection(),
		SearchQuery:    s.SearchQuery(),
		Items:          s.VisibleItems(),
	}
}

func clone(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
