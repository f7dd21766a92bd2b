package badger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	roomRepo "dataroom/internal/domain/repositories/dataroom"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestStore(t *testing.T) *roomRepo.Store {
	t.Helper()
	return NewStore(newTestDB(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	second := &models.Room{Name: "Second", OwnerID: "u1", CreatedAt: at(2), UpdatedAt: at(2)}
	first := &models.Room{Name: "First", OwnerID: "u1", CreatedAt: at(1), UpdatedAt: at(1)}
	foreign := &models.Room{Name: "Foreign", OwnerID: "u2", CreatedAt: at(0), UpdatedAt: at(0)}
	for _, r := range []*models.Room{second, first, foreign} {
		require.NoError(t, store.Rooms.Create(ctx, r))
		assert.NotEmpty(t, r.ID)
	}

	rooms, err := store.Rooms.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "First", rooms[0].Name, "oldest first")
	assert.Equal(t, "Second", rooms[1].Name)

	desc := "updated"
	first.Name = "Renamed"
	first.Description = &desc
	first.OwnerID = "someone-else"
	first.UpdatedAt = at(10)
	require.NoError(t, store.Rooms.Update(ctx, first))

	rooms, err = store.Rooms.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", rooms[0].Name)
	assert.Equal(t, "updated", *rooms[0].Description)
	assert.Equal(t, "u1", rooms[0].OwnerID, "owner is not writable")
	assert.True(t, rooms[0].UpdatedAt.Equal(at(10)))

	err = store.Rooms.Update(ctx, &models.Room{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Rooms.Delete(ctx, second.ID))
	rooms, err = store.Rooms.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestFolderAndFileRepositories(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	room := &models.Room{Name: "Acme", OwnerID: "u1", CreatedAt: at(0)}
	other := &models.Room{Name: "Other", OwnerID: "u1", CreatedAt: at(0)}
	require.NoError(t, store.Rooms.Create(ctx, room))
	require.NoError(t, store.Rooms.Create(ctx, other))

	parent := &models.Folder{Name: "Legal", DataRoomID: room.ID, CreatedAt: at(1)}
	require.NoError(t, store.Folders.Create(ctx, parent))
	child := &models.Folder{Name: "NDAs", DataRoomID: room.ID, ParentID: &parent.ID, CreatedAt: at(2)}
	require.NoError(t, store.Folders.Create(ctx, child))
	elsewhere := &models.Folder{Name: "Misc", DataRoomID: other.ID, CreatedAt: at(3)}
	require.NoError(t, store.Folders.Create(ctx, elsewhere))

	file := &models.File{
		Name:       "nda.pdf",
		DataRoomID: room.ID,
		FolderID:   &child.ID,
		StorageKey: "u1/k1.pdf",
		Size:       42,
		MimeType:   "application/pdf",
		CreatedAt:  at(4),
	}
	require.NoError(t, store.Files.Create(ctx, file))

	folders, err := store.Folders.ListByRooms(ctx, []string{room.ID})
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, parent.ID, folders[0].ID)
	assert.Equal(t, parent.ID, *folders[1].ParentID)

	folders, err = store.Folders.ListByRooms(ctx, []string{room.ID, other.ID})
	require.NoError(t, err)
	assert.Len(t, folders, 3)

	files, err := store.Files.ListByRooms(ctx, []string{room.ID})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "u1/k1.pdf", files[0].StorageKey)
	assert.EqualValues(t, 42, files[0].Size)

	files[0].Name = "renamed.pdf"
	files[0].StorageKey = "ignored"
	require.NoError(t, store.Files.Update(ctx, &files[0]))
	files, err = store.Files.ListByRooms(ctx, []string{room.ID})
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", files[0].Name)
	assert.Equal(t, "u1/k1.pdf", files[0].StorageKey)

	child.Name = "Contracts"
	require.NoError(t, store.Folders.Update(ctx, child))
	assert.ErrorIs(t, store.Folders.Update(ctx, &models.Folder{ID: "missing"}), domain.ErrNotFound)
	assert.ErrorIs(t, store.Files.Update(ctx, &models.File{ID: "missing"}), domain.ErrNotFound)

	require.NoError(t, store.Files.Delete(ctx, file.ID))
	files, err = store.Files.ListByRooms(ctx, []string{room.ID})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCreate_RequiresParents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.Folders.Create(ctx, &models.Folder{Name: "x", DataRoomID: "missing"})
	assert.Error(t, err)

	room := &models.Room{Name: "Acme", OwnerID: "u1"}
	require.NoError(t, store.Rooms.Create(ctx, room))

	missing := "missing"
	err = store.Files.Create(ctx, &models.File{Name: "x.pdf", DataRoomID: room.ID, FolderID: &missing})
	assert.Error(t, err)

	files, err := store.Files.ListByRooms(ctx, []string{room.ID})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestTransactionManager_RollsBack(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	boom := errors.New("boom")

	room := &models.Room{Name: "Acme", OwnerID: "u1"}
	require.NoError(t, store.Rooms.Create(ctx, room))
	folder := &models.Folder{Name: "Docs", DataRoomID: room.ID}
	require.NoError(t, store.Folders.Create(ctx, folder))

	err := store.TxManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := store.Folders.Delete(txCtx, folder.ID); err != nil {
			return err
		}
		// nested calls join the outer transaction
		return store.TxManager.ExecTx(txCtx, func(inner context.Context) error {
			if err := store.Rooms.Delete(inner, room.ID); err != nil {
				return err
			}
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	rooms, err := store.Rooms.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	folders, err := store.Folders.ListByRooms(ctx, []string{room.ID})
	require.NoError(t, err)
	assert.Len(t, folders, 1)

	require.NoError(t, store.TxManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := store.Folders.Delete(txCtx, folder.ID); err != nil {
			return err
		}
		return store.Rooms.Delete(txCtx, room.ID)
	}))
	rooms, err = store.Rooms.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestBlobStorage(t *testing.T) {
	ctx := context.Background()
	blobs := NewBlobStorage(newTestDB(t))

	require.NoError(t, blobs.PutObject(ctx, "a.pdf", []byte("%PDF-a"), "application/pdf"))
	require.NoError(t, blobs.PutObject(ctx, "b.pdf", []byte("%PDF-b"), "application/pdf"))

	data, err := blobs.GetObject(ctx, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-a"), data)

	require.NoError(t, blobs.RemoveObjects(ctx, []string{"a.pdf", "never-stored.pdf"}))
	_, err = blobs.GetObject(ctx, "a.pdf")
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)

	data, err = blobs.GetObject(ctx, "b.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-b"), data)

	url, err := blobs.SignedURL(ctx, "b.pdf", time.Minute)
	require.NoError(t, err)
	assert.Empty(t, url)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, blobs.PutObject(cancelled, "c.pdf", nil, ""), context.Canceled)
}
