package file

import (
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/office-management/internal"
)

type ListFilter struct {
	Search   string
	Category string
}

// UploadDTO is one multipart upload. Size is the size declared by the client; the
// store enforces the limit again while copying.
type UploadDTO struct {
	UserID       int64
	FileCategory string
	Description  *string
	Tags         *string
	OriginalName string
	DeclaredType string
	Size         int64
	Content      io.Reader
}

type UpdateFileDTO struct {
	FileCategory string  `json:"fileCategory"`
	Description  *string `json:"description"`
	Tags         *string `json:"tags"`
}

func (d *UpdateFileDTO) Normalize() {
	d.FileCategory = strings.TrimSpace(d.FileCategory)
	if d.FileCategory == "" {
		d.FileCategory = CategoryDocument
	}
	d.Description = nullable(d.Description)
	d.Tags = nullable(d.Tags)
}

func validateCategory(category string) error {
	if !IsCategory(category) {
		return internal.NewValidationFieldError("fileCategory",
			fmt.Sprintf("fileCategory must be one of: %s", strings.Join(Categories, ", ")),
			internal.ErrCodeInvalidEnum)
	}
	return nil
}

func errTooLarge(limit int64) error {
	return internal.NewValidationError(
		fmt.Sprintf("File exceeds the maximum upload size of %d bytes", limit),
		internal.ErrCodeFileTooLarge)
}

func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
