package dataroom

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"dataroom/internal/config"
	models "dataroom/internal/domain/models/dataroom"
	roomRepo "dataroom/internal/domain/repositories/dataroom"
	roomSvc "dataroom/internal/domain/services/dataroom"
	badgerRepo "dataroom/internal/repository/badger"
	"dataroom/internal/workspace"

	"github.com/stretchr/testify/require"
)

const testOwner = "user-1"

var errBoom = errors.New("boom")

// memStorage is an in-memory ObjectStorage with injectable failures
type memStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	removeErr error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) PutObject(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = data
	return nil
}

func (m *memStorage) RemoveObjects(_ context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	for _, k := range keys {
		delete(m.objects, k)
	}
	return nil
}

func (m *memStorage) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://storage.test/" + key + "?ttl=" + ttl.String(), nil
}

func (m *memStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// failingFolders fails Create/Delete on demand
type failingFolders struct {
	roomRepo.FolderRepository
	createErr error
	deleteErr error
}

func (f *failingFolders) Create(ctx context.Context, folder *models.Folder) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.FolderRepository.Create(ctx, folder)
}

func (f *failingFolders) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.FolderRepository.Delete(ctx, id)
}

// failingFiles fails Create/Update on demand
type failingFiles struct {
	roomRepo.FileRepository
	createErr error
	updateErr error
}

func (f *failingFiles) Create(ctx context.Context, file *models.File) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.FileRepository.Create(ctx, file)
}

func (f *failingFiles) Update(ctx context.Context, file *models.File) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.FileRepository.Update(ctx, file)
}

type testEnv struct {
	svc     *Service
	ws      *workspace.Workspace
	repos   *roomRepo.Store
	storage *memStorage
	folders *failingFolders
	files   *failingFiles
}

// newTestEnv wires the engine to an in-memory badger database. The clock
// advances one second per call so creation order is stable across reloads.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := badgerRepo.Open(badgerRepo.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := badgerRepo.NewStore(db, logger)
	folders := &failingFolders{FolderRepository: repos.Folders}
	files := &failingFiles{FileRepository: repos.Files}
	repos.Folders = folders
	repos.Files = files

	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}

	storage := newMemStorage()
	svc := NewService(repos, storage, logger, WithClock(clock), WithSignedURLTTL(time.Minute))

	ws := workspace.New(testOwner)
	require.NoError(t, svc.Load(context.Background(), ws))

	return &testEnv{svc: svc, ws: ws, repos: repos, storage: storage, folders: folders, files: files}
}

func (e *testEnv) createRoom(t *testing.T, name string) *models.Room {
	t.Helper()
	room, err := e.svc.CreateRoom(context.Background(), e.ws, &roomSvc.CreateRoomRequest{Name: name})
	require.NoError(t, err)
	return room
}

func (e *testEnv) createFolder(t *testing.T, roomID, name string, parentID *string) *models.Folder {
	t.Helper()
	folder, err := e.svc.CreateFolder(context.Background(), e.ws, &roomSvc.CreateFolderRequest{
		RoomID:   roomID,
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return folder
}

func (e *testEnv) upload(t *testing.T, roomID string, folderID *string, name string) *models.File {
	t.Helper()
	file, err := e.svc.UploadFile(context.Background(), e.ws, pdf(roomID, folderID, name))
	require.NoError(t, err)
	return file
}

func pdf(roomID string, folderID *string, name string) *roomSvc.UploadFileRequest {
	return &roomSvc.UploadFileRequest{
		RoomID:   roomID,
		FolderID: folderID,
		Name:     name,
		MimeType: config.AcceptedMimeType,
		Data:     []byte("%PDF-1.4 test"),
	}
}

func names(items []models.FileSystemItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func ids(items []models.FileSystemItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
