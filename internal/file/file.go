package file

import (
	"errors"
	"mime"
	"strings"
	"time"

	fileDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/file"
)

const (
	CategoryNote         = "Note"
	CategoryDocument     = "Document"
	CategoryData         = "Data"
	CategoryStatistics   = "Statistics"
	CategoryReport       = "Report"
	CategoryOther        = "Other"
	CategorySpreadsheet  = "Spreadsheet"
	CategoryPresentation = "Presentation"

	// CategoryAll disables the category filter when listing.
	CategoryAll = "All"
)

var Categories = []string{
	CategoryNote, CategoryDocument, CategoryData, CategoryStatistics,
	CategoryReport, CategoryOther, CategorySpreadsheet, CategoryPresentation,
}

// AllowedTypes are the media types accepted for upload.
var AllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"text/plain",
	"text/csv",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/zip",
	"application/x-rar-compressed",
	"application/json",
}

var ErrNotFound = errors.New("file not found")

// File is the metadata of one uploaded blob. FilePath stays server side.
type File struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	FileName         string    `json:"fileName"`
	OriginalFileName string    `json:"originalFileName"`
	FileType         string    `json:"fileType"`
	FileSize         int64     `json:"fileSize"`
	FileCategory     string    `json:"fileCategory"`
	Description      *string   `json:"description"`
	Tags             *string   `json:"tags"`
	FilePath         string    `json:"-"`
	UploadedDate     time.Time `json:"uploadedDate"`
	UpdatedDate      time.Time `json:"updatedDate"`
}

type CategoryStats struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Size     int64  `json:"size"`
}

type Stats struct {
	TotalFiles int64           `json:"totalFiles"`
	TotalSize  int64           `json:"totalSize"`
	ByCategory []CategoryStats `json:"byCategory"`
}

// NormalizeType lowercases a media type and drops its parameters.
func NormalizeType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func IsAllowedType(contentType string) bool {
	normalized := NormalizeType(contentType)
	for _, allowed := range AllowedTypes {
		if normalized == allowed {
			return true
		}
	}
	return false
}

func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func FromDataModel(f *fileDatamodel.File) *File {
	return &File{
		ID:               f.ID,
		UserID:           f.UserID,
		FileName:         f.FileName,
		OriginalFileName: f.OriginalFileName,
		FileType:         f.FileType,
		FileSize:         f.FileSize,
		FileCategory:     f.FileCategory,
		Description:      f.Description,
		Tags:             f.Tags,
		FilePath:         f.FilePath,
		UploadedDate:     f.UploadedDate,
		UpdatedDate:      f.UpdatedDate,
	}
}

func ToDataModel(f *File) *fileDatamodel.File {
	return &fileDatamodel.File{
		ID:               f.ID,
		UserID:           f.UserID,
		FileName:         f.FileName,
		OriginalFileName: f.OriginalFileName,
		FileType:         f.FileType,
		FileSize:         f.FileSize,
		FileCategory:     f.FileCategory,
		Description:      f.Description,
		Tags:             f.Tags,
		FilePath:         f.FilePath,
		UploadedDate:     f.UploadedDate,
		UpdatedDate:      f.UpdatedDate,
	}
}
