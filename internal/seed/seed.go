// Package seed fills a user's workspace with fixture data rooms. Fixtures are
// YAML files embedded in the binary or read from disk, and every entity is
// created through the mutation engine so normal validation applies.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"dataroom/internal/config"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/service/dataroom"
	"dataroom/internal/workspace"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

// Fixture is the root of a fixture file
type Fixture struct {
	Rooms []RoomFixture `yaml:"rooms"`
}

// RoomFixture describes one data room
type RoomFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Folders     []FolderFixture `yaml:"folders"`
	Files       []FileFixture   `yaml:"files"`
}

// FolderFixture describes a folder and its contents
type FolderFixture struct {
	Name    string          `yaml:"name"`
	Folders []FolderFixture `yaml:"folders"`
	Files   []FileFixture   `yaml:"files"`
}

// FileFixture describes an uploaded document. Content is generated.
type FileFixture struct {
	Name string `yaml:"name"`
}

// Load reads a fixture by embedded name ("demo") or by file path
func Load(nameOrPath string) (*Fixture, error) {
	data, err := fixtureFiles.ReadFile(fmt.Sprintf("fixtures/%s.yaml", nameOrPath))
	if err != nil {
		data, err = os.ReadFile(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", nameOrPath, err)
		}
	}
	return Parse(data)
}

// Parse decodes fixture YAML
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}
	return &fixture, nil
}

// Result counts what Apply created
type Result struct {
	Rooms   int
	Folders int
	Files   int
}

// Seeder creates fixture content through the mutation engine
type Seeder struct {
	service *dataroom.Service
	logger  *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(service *dataroom.Service, logger *slog.Logger) *Seeder {
	return &Seeder{service: service, logger: logger}
}

// Clear deletes every room in the workspace
func (s *Seeder) Clear(ctx context.Context, ws *workspace.Workspace) (int, error) {
	rooms := s.service.ListRooms(ws)
	for _, room := range rooms {
		summary, err := s.service.DeleteRoom(ctx, ws, room.ID)
		if err != nil {
			return 0, fmt.Errorf("delete room %s: %w", room.Name, err)
		}
		if summary.StorageErr != nil {
			s.logger.Warn("storage cleanup incomplete", "room", room.Name, "error", summary.StorageErr)
		}
	}
	return len(rooms), nil
}

// Apply creates every room, folder and file of the fixture. It stops at the
// first failure; what was created before stays.
func (s *Seeder) Apply(ctx context.Context, ws *workspace.Workspace, fixture *Fixture) (Result, error) {
	var result Result
	for _, rf := range fixture.Rooms {
		var description *string
		if rf.Description != "" {
			description = &rf.Description
		}
		room, err := s.service.CreateRoom(ctx, ws, &roomSvc.CreateRoomRequest{Name: rf.Name, Description: description})
		if err != nil {
			return result, fmt.Errorf("room %q: %w", rf.Name, err)
		}
		result.Rooms++

		if err := s.applyLevel(ctx, ws, room.ID, nil, rf.Folders, rf.Files, &result); err != nil {
			return result, fmt.Errorf("room %q: %w", rf.Name, err)
		}
		s.logger.Info("seeded room", "id", room.ID, "name", room.Name)
	}
	return result, nil
}

func (s *Seeder) applyLevel(ctx context.Context, ws *workspace.Workspace, roomID string, parentID *string, folders []FolderFixture, files []FileFixture, result *Result) error {
	for _, ff := range files {
		_, err := s.service.UploadFile(ctx, ws, &roomSvc.UploadFileRequest{
			RoomID:   roomID,
			FolderID: parentID,
			Name:     ff.Name,
			MimeType: config.AcceptedMimeType,
			Data:     placeholderPDF(ff.Name),
		})
		if err != nil {
			return fmt.Errorf("file %q: %w", ff.Name, err)
		}
		result.Files++
	}

	for _, sub := range folders {
		folder, err := s.service.CreateFolder(ctx, ws, &roomSvc.CreateFolderRequest{
			RoomID:   roomID,
			Name:     sub.Name,
			ParentID: parentID,
		})
		if err != nil {
			return fmt.Errorf("folder %q: %w", sub.Name, err)
		}
		result.Folders++

		if err := s.applyLevel(ctx, ws, roomID, &folder.ID, sub.Folders, sub.Files, result); err != nil {
			return err
		}
	}
	return nil
}

// placeholderPDF renders a one-page PDF showing title
func placeholderPDF(title string) []byte {
	text := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(title)
	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return []byte(b.String())
}
