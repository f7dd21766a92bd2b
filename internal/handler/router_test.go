package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"dataroom/internal/auth"
	models "dataroom/internal/domain/models/dataroom"
	"dataroom/internal/middleware"
	badgerRepo "dataroom/internal/repository/badger"
	"dataroom/internal/service/dataroom"
	"dataroom/internal/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devUser = "dev-user"

type testServer struct {
	t       *testing.T
	handler http.Handler
	router  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := badgerRepo.Open(badgerRepo.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := dataroom.NewService(badgerRepo.NewStore(db, logger), badgerRepo.NewBlobStorage(db), logger)
	workspaces := dataroom.NewWorkspaceManager(service, auth.ContextIdentity{})

	router := NewRouter(service, workspaces, logger)
	handler := middleware.AuthMiddleware(middleware.AuthOptions{
		DevUserID: devUser,
		Public:    []string{"/health"},
		Logger:    logger,
	})(router)

	return &testServer{t: t, handler: handler, router: router}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) upload(roomID, folderID, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(s.t, mw.WriteField("room_id", roomID))
	if folderID != "" {
		require.NoError(s.t, mw.WriteField("folder_id", folderID))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadFile_UnauthenticatedBodyIsNotRead(t *testing.T) {
	s := newTestServer(t)

	body := &countingReader{r: strings.NewReader(strings.Repeat("x", 1<<20))}
	req := httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	// no auth middleware in front, so the request carries no user
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.Zero(t, body.n)
}

func TestRoomLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.json(http.MethodPost, "/api/rooms", map[string]any{"name": "Acme", "description": "Series A"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	room := decode[models.Room](t, rec)
	assert.Equal(t, devUser, room.OwnerID)

	rec = s.json(http.MethodPatch, "/api/rooms/"+room.ID, map[string]any{"description": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Room](t, rec)
	assert.Equal(t, "Acme", updated.Name)
	assert.Nil(t, updated.Description, "null clears the description")

	rec = s.json(http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Room](t, rec), 1)

	rec = s.json(http.MethodDelete, "/api/rooms/"+room.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), room.ID)

	rec = s.json(http.MethodGet, "/api/rooms", nil)
	assert.Empty(t, decode[[]models.Room](t, rec))
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t)

	rec := s.json(http.MethodPost, "/api/rooms", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	problem := decode[map[string]any](t, rec)
	assert.Equal(t, "Data room name cannot be empty", problem["detail"])
	assert.Equal(t, "name", problem["field"])

	rec = s.json(http.MethodPost, "/api/rooms", map[string]any{"name": "x", "bogus": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")

	rec = s.json(http.MethodPatch, "/api/folders/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodDelete, "/api/folders/missing", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "deleting an unknown folder is a no-op")

	rec = s.json(http.MethodPost, "/api/folders", map[string]any{"name": "Docs"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data room selected")
}

func TestFolderConflict(t *testing.T) {
	s := newTestServer(t)
	room := decode[models.Room](t, s.json(http.MethodPost, "/api/rooms", map[string]any{"name": "Acme"}))

	rec := s.json(http.MethodPost, "/api/folders", map[string]any{"room_id": room.ID, "name": "Legal"})
	require.Equal(t, http.StatusCreated, rec.Code)
	legal := decode[models.Folder](t, rec)

	rec = s.json(http.MethodPost, "/api/folders", map[string]any{"room_id": room.ID, "name": "legal"})
	require.Equal(t, http.StatusConflict, rec.Code)
	problem := decode[map[string]any](t, rec)
	assert.Equal(t, "folder", problem["resource_type"])
	assert.Equal(t, legal.ID, problem["resource_id"])
}

func TestUploadAndBrowse(t *testing.T) {
	s := newTestServer(t)
	room := decode[models.Room](t, s.json(http.MethodPost, "/api/rooms", map[string]any{"name": "Acme"}))
	folder := decode[models.Folder](t, s.json(http.MethodPost, "/api/folders", map[string]any{
		"room_id": room.ID, "name": "Reports",
	}))

	pdf := []byte("%PDF-1.4\n%test\n")
	rec := s.upload(room.ID, folder.ID, "report.pdf", "application/pdf", pdf)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[models.File](t, rec)
	assert.Equal(t, "report.pdf", first.Name)

	// an octet-stream upload is sniffed as PDF and auto-renamed
	rec = s.upload(room.ID, folder.ID, "report.pdf", "application/octet-stream", pdf)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "report (1).pdf", decode[models.File](t, rec).Name)

	rec = s.upload(room.ID, folder.ID, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only PDF files are supported")

	rec = s.json(http.MethodGet, "/api/rooms/"+room.ID+"/items?folder_id="+folder.ID+"&q=(1)", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]models.FileSystemItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "report (1).pdf", items[0].Name)

	rec = s.json(http.MethodGet, "/api/folders/"+folder.ID+"/breadcrumbs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	crumbs := decode[[]models.BreadcrumbItem](t, rec)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Reports", crumbs[1].Name)

	rec = s.json(http.MethodGet, "/api/rooms/"+room.ID+"/tree", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decode[models.TreeNode](t, rec)
	require.Len(t, tree.Folders, 1)
	assert.Len(t, tree.Folders[0].Files, 2)

	rec = s.json(http.MethodPatch, "/api/files/"+first.ID, map[string]any{"name": "final"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "final.pdf", decode[models.File](t, rec).Name)

	rec = s.json(http.MethodGet, "/api/files/"+first.ID+"/url", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url": null}`, rec.Body.String(), "embedded storage cannot sign")

	rec = s.json(http.MethodDelete, "/api/folders/"+folder.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[map[string][]string](t, rec)
	assert.Equal(t, []string{folder.ID}, summary["folder_ids"])
	assert.Len(t, summary["file_ids"], 2)
}

func TestSessionRoutes(t *testing.T) {
	s := newTestServer(t)
	room := decode[models.Room](t, s.json(http.MethodPost, "/api/rooms", map[string]any{"name": "Acme"}))
	folder := decode[models.Folder](t, s.json(http.MethodPost, "/api/folders", map[string]any{
		"room_id": room.ID, "name": "Legal",
	}))

	rec := s.json(http.MethodPut, "/api/session/folder", map[string]any{"id": folder.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no room open yet")

	rec = s.json(http.MethodPut, "/api/session/room", map[string]any{"id": room.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[workspace.SessionState](t, rec)
	assert.Equal(t, room.ID, *state.ActiveRoomID)
	require.Len(t, state.Items, 1)

	rec = s.json(http.MethodPut, "/api/session/folder", map[string]any{"id": folder.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	state = decode[workspace.SessionState](t, rec)
	assert.Equal(t, folder.ID, *state.ActiveFolderID)
	assert.Len(t, state.Breadcrumbs, 2)

	rec = s.json(http.MethodPut, "/api/session/folder", map[string]any{"id": nil})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.json(http.MethodPost, "/api/session/selection/"+folder.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{folder.ID}, decode[workspace.SessionState](t, rec).Selection)

	rec = s.json(http.MethodPut, "/api/session/search", map[string]any{"query": "zzz"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[workspace.SessionState](t, rec).Items)

	rec = s.json(http.MethodGet, "/api/session/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = s.json(http.MethodPost, "/api/session/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, room.ID, *decode[workspace.SessionState](t, rec).ActiveRoomID)
}
