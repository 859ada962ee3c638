package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	fileDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/file"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
)

// sniffLen is how much of an upload is inspected when the client sent no usable type.
const sniffLen = 3072

type RepositoryAPI interface {
	ListByUser(ctx context.Context, userID int64, category string) ([]*fileDatamodel.File, error)
	Stats(ctx context.Context, userID int64) ([]fileDatamodel.CategoryStat, error)
	GetByID(ctx context.Context, userID, id int64) (*fileDatamodel.File, error)
	Create(ctx context.Context, f *fileDatamodel.File) error
	UpdateMetadata(ctx context.Context, f *fileDatamodel.File) error
	Delete(ctx context.Context, userID, id int64) error
}

type BlobStore interface {
	Save(original string, r io.Reader, limit int64) (storage.Object, error)
	Open(path string) (afero.File, error)
	Remove(path string) error
}

type Service struct {
	repo          RepositoryAPI
	store         BlobStore
	events        events.Publisher
	maxUploadSize int64
	logger        *slog.Logger
}

func NewService(repo RepositoryAPI, store BlobStore, publisher events.Publisher, maxUploadSize int64, logger *slog.Logger) *Service {
	if maxUploadSize <= 0 {
		maxUploadSize = internal.DefaultMaxUploadSize
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:          repo,
		store:         store,
		events:        publisher,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (s *Service) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// List returns the user's files, newest first. The search term is matched after the
// query, case-insensitively, against names, description and tags.
func (s *Service) List(ctx context.Context, userID int64, filter ListFilter) ([]*File, error) {
	category := strings.TrimSpace(filter.Category)
	if category == CategoryAll {
		category = ""
	}

	rows, err := s.repo.ListByUser(ctx, userID, category)
	if err != nil {
		s.logger.Error("failed to list files", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list files", err)
	}

	search := strings.TrimSpace(filter.Search)
	folder := cases.Fold()
	needle := folder.String(search)

	files := make([]*File, 0, len(rows))
	for _, row := range rows {
		if search != "" && !matches(folder, needle, row) {
			continue
		}
		files = append(files, FromDataModel(row))
	}
	return files, nil
}

func matches(folder cases.Caser, needle string, row *fileDatamodel.File) bool {
	fields := []string{row.OriginalFileName, row.FileName}
	if row.Description != nil {
		fields = append(fields, *row.Description)
	}
	if row.Tags != nil {
		fields = append(fields, *row.Tags)
	}
	for _, field := range fields {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	rows, err := s.repo.Stats(ctx, userID)
	if err != nil {
		s.logger.Error("failed to aggregate files", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to aggregate files", err)
	}

	stats := &Stats{ByCategory: make([]CategoryStats, 0, len(rows))}
	for _, row := range rows {
		stats.TotalFiles += row.Count
		stats.TotalSize += row.TotalSize
		stats.ByCategory = append(stats.ByCategory, CategoryStats{
			Category: row.FileCategory,
			Count:    row.Count,
			Size:     row.TotalSize,
		})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	return stats, nil
}

// Upload checks type and size before anything is stored, writes the blob, then records
// its metadata. A failed insert removes the blob again.
func (s *Service) Upload(ctx context.Context, dto UploadDTO) (int64, error) {
	if dto.UserID <= 0 || dto.Content == nil {
		return 0, internal.NewValidationError("userId and file are required", internal.ErrCodeFileRequired)
	}
	if dto.Size > s.maxUploadSize {
		return 0, errTooLarge(s.maxUploadSize)
	}

	category := strings.TrimSpace(dto.FileCategory)
	if category == "" {
		category = CategoryDocument
	}
	if err := validateCategory(category); err != nil {
		return 0, err
	}

	content, fileType, err := resolveType(dto.Content, dto.DeclaredType)
	if err != nil {
		return 0, internal.NewInternalError("failed to read upload", err)
	}
	if !IsAllowedType(fileType) {
		return 0, internal.NewUnsupportedTypeError(fmt.Sprintf("File type %s not allowed", fileType))
	}

	obj, err := s.store.Save(dto.OriginalName, content, s.maxUploadSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return 0, errTooLarge(s.maxUploadSize)
		}
		s.logger.Error("failed to store blob", "user_id", dto.UserID, "error", err)
		return 0, internal.NewInternalError("failed to store file", err)
	}

	originalName := strings.TrimSpace(dto.OriginalName)
	if originalName == "" {
		originalName = obj.Name
	}
	row := &fileDatamodel.File{
		UserID:           dto.UserID,
		FileName:         obj.Name,
		OriginalFileName: originalName,
		FileType:         fileType,
		FileSize:         obj.Size,
		FileCategory:     category,
		Description:      nullable(dto.Description),
		Tags:             nullable(dto.Tags),
		FilePath:         obj.Path,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if rmErr := s.store.Remove(obj.Path); rmErr != nil {
			s.logger.Error("failed to remove blob after insert failure", "path", obj.Path, "error", rmErr)
		}
		s.logger.Error("failed to record file", "user_id", dto.UserID, "error", err)
		return 0, internal.NewInternalError("failed to record file", err)
	}

	_ = s.events.Publish(ctx, events.NewEvent(events.FileUploaded, map[string]interface{}{
		"user_id":  row.UserID,
		"file_id":  row.ID,
		"size":     row.FileSize,
		"type":     row.FileType,
		"category": row.FileCategory,
	}))
	return row.ID, nil
}

// resolveType returns the media type declared by the client, or sniffs the first bytes
// when none (or only application/octet-stream) was declared. The returned reader
// still yields the whole content.
func resolveType(content io.Reader, declared string) (io.Reader, string, error) {
	declared = NormalizeType(declared)
	if declared != "" && declared != "application/octet-stream" {
		return content, declared, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]
	detected := NormalizeType(mimetype.Detect(head).String())
	return io.MultiReader(bytes.NewReader(head), content), detected, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id int64) (*File, error) {
	row, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, s.mapError("get", id, err)
	}
	return FromDataModel(row), nil
}

// Download opens the blob of a file record. The caller closes the returned handle.
func (s *Service) Download(ctx context.Context, userID, id int64) (*File, afero.File, error) {
	f, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := s.store.Open(f.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrOutsideRoot) {
			s.logger.Warn("file record has no blob", "file_id", id, "path", f.FilePath, "error", err)
			return nil, nil, internal.ErrFileNotFound
		}
		return nil, nil, internal.NewInternalError("failed to open file", err)
	}
	return f, blob, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, dto UpdateFileDTO) error {
	dto.Normalize()
	if err := validateCategory(dto.FileCategory); err != nil {
		return err
	}

	row := &fileDatamodel.File{
		ID:           id,
		UserID:       userID,
		FileCategory: dto.FileCategory,
		Description:  dto.Description,
		Tags:         dto.Tags,
	}
	if err := s.repo.UpdateMetadata(ctx, row); err != nil {
		return s.mapError("update", id, err)
	}
	return nil
}

// Delete removes the blob and then the row. A blob that cannot be removed is logged
// and reported as orphaned; the row is deleted regardless.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	f, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(f.FilePath); err != nil {
		s.logger.Error("failed to remove blob", "file_id", id, "path", f.FilePath, "error", err)
		_ = s.events.Publish(ctx, events.NewEvent(events.BlobOrphaned, map[string]interface{}{
			"file_id": id,
			"path":    f.FilePath,
			"error":   err.Error(),
		}))
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.mapError("delete", id, err)
	}

	_ = s.events.Publish(ctx, events.NewEvent(events.FileDeleted, map[string]interface{}{
		"user_id": userID,
		"file_id": id,
	}))
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.ErrFileNotFound
	}
	s.logger.Error("file repository failure", "op", op, "file_id", id, "error", err)
	return internal.NewInternalError("failed to "+op+" file", err)
}
