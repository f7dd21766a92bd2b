package workspace

import (
	"time"

	models "dataroom/internal/domain/models/dataroom"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func room(id, name string) models.Room {
	return models.Room{ID: id, Name: name, OwnerID: "user-1", CreatedAt: t0, UpdatedAt: t0}
}

func folder(id, name, roomID string, parentID *string) models.Folder {
	return models.Folder{ID: id, Name: name, DataRoomID: roomID, ParentID: parentID, CreatedAt: t0, UpdatedAt: t0}
}

func file(id, name, roomID string, folderID *string) models.File {
	return models.File{
		ID:         id,
		Name:       name,
		DataRoomID: roomID,
		FolderID:   folderID,
		Size:       1024,
		MimeType:   "application/pdf",
		StorageKey: "user-1/" + roomID + "/" + id + ".pdf",
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}
}

// sampleStore builds:
//
//	r1
//	├── Financials (f1)
//	│   ├── 2024 (f2)
//	│   │   └── Q4.pdf (d3)
//	│   └── Audit.pdf (d2)
//	├── Legal (f3)
//	└── Overview.pdf (d1)
//	r2
//	└── Pitch (f4)
//	    └── Deck.pdf (d4)
func sampleStore() *Store {
	s := NewStore()
	s.Load(
		[]models.Room{room("r1", "Acme"), room("r2", "Series B")},
		[]models.Folder{
			folder("f1", "Financials", "r1", nil),
			folder("f2", "2024", "r1", ptr("f1")),
			folder("f3", "Legal", "r1", nil),
			folder("f4", "Pitch", "r2", nil),
		},
		[]models.File{
			file("d1", "Overview.pdf", "r1", nil),
			file("d2", "Audit.pdf", "r1", ptr("f1")),
			file("d3", "Q4.pdf", "r1", ptr("f2")),
			file("d4", "Deck.pdf", "r2", ptr("f4")),
		},
	)
	return s
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

func itemIDs(items []models.FileSystemItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
