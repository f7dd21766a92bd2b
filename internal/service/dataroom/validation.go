package dataroom

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"dataroom/internal/config"
	"dataroom/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// names may not contain path separators or control characters
var validNamePattern = regexp.MustCompile(`^[^/\\\x00-\x1f\x7f]+$`)

// validateName checks an already-trimmed, non-empty name
func validateName(field, label string, name string, maxLength int) error {
	err := validation.Validate(name,
		validation.Length(1, maxLength).Error(fmt.Sprintf("%s name cannot exceed %d characters", label, maxLength)),
		validation.Match(validNamePattern).Error(fmt.Sprintf("%s name contains invalid characters", label)),
	)
	if err != nil {
		return domain.NewValidationError(field, err.Error())
	}
	return nil
}

func validateRoomName(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "Data room name cannot be empty")
	}
	return validateName("name", "Data room", name, config.MaxRoomNameLength)
}

func validateRoomDescription(description *string) error {
	err := validation.Validate(description,
		validation.Length(0, config.MaxRoomDescriptionLength).
			Error(fmt.Sprintf("description cannot exceed %d characters", config.MaxRoomDescriptionLength)),
	)
	if err != nil {
		return domain.NewValidationError("description", err.Error())
	}
	return nil
}

func validateFolderName(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "Folder name cannot be empty")
	}
	return validateName("name", "Folder", name, config.MaxFolderNameLength)
}

func validateFileName(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "File name cannot be empty")
	}
	return validateName("name", "File", name, config.MaxFileNameLength)
}

// validateUpload checks the document type first, then the size
func validateUpload(mimeType string, size int64) error {
	if mimeType != config.AcceptedMimeType {
		return domain.NewValidationError("file", "Only PDF files are supported")
	}
	if size > config.MaxUploadSize {
		return UploadTooLarge()
	}
	return nil
}

// UploadTooLarge is the error for uploads over config.MaxUploadSize. The HTTP
// layer returns it when the body is cut off before reaching the service.
func UploadTooLarge() error {
	return domain.NewValidationError("file", "File size exceeds 50MB limit")
}

// ensureExtension appends the required extension when name lacks it
func ensureExtension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), config.RequiredFileExtension) {
		return name
	}
	return name + config.RequiredFileExtension
}

// uniqueName returns name, or the first "<base> (n)<ext>" (n = 1, 2, ...)
// that is not taken. taken holds lower-cased names. base is shortened so a
// candidate never exceeds config.MaxFileNameLength characters.
func uniqueName(name string, taken map[string]struct{}) string {
	if _, exists := taken[strings.ToLower(name)]; !exists {
		return name
	}

	base, ext := name, ""
	if idx := strings.LastIndex(name, "."); idx > 0 {
		base, ext = name[:idx], name[idx:]
	}
	for n := 1; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate := truncateRunes(base, config.MaxFileNameLength-utf8.RuneCountInString(suffix+ext)) + suffix + ext
		if _, exists := taken[strings.ToLower(candidate)]; !exists {
			return candidate
		}
	}
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func folderConflict(name, existingID string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("A folder named \"%s\" already exists in this location", name),
		ResourceType: "folder",
		ResourceID:   existingID,
	}
}

func fileConflict(name, existingID string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("A file named \"%s\" already exists in this location", name),
		ResourceType: "file",
		ResourceID:   existingID,
	}
}

func noRoomSelected() error {
	return domain.NewValidationError("room_id", "No data room selected")
}
