package config

const (
	// MaxRoomNameLength is the maximum length for data room names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxRoomNameLength = 255

	// MaxRoomDescriptionLength is the maximum length for room descriptions.
	MaxRoomDescriptionLength = 1000

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names, extension included.
	MaxFileNameLength = 255

	// MaxUploadSize is the largest accepted upload (50MB).
	MaxUploadSize = 50 * 1024 * 1024

	// AcceptedMimeType is the only document type rooms accept.
	AcceptedMimeType = "application/pdf"

	// RequiredFileExtension is appended to file names that lack it.
	RequiredFileExtension = ".pdf"

	// DefaultSignedURLTTLSeconds is how long download URLs stay valid.
	DefaultSignedURLTTLSeconds = 3600
)
