package postgres

import (
	"context"
	"errors"
	"fmt"

	fileDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/file"
	"github.com/frahmantamala/office-management/internal/file"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) file.RepositoryAPI {
	return &FileRepository{db: db}
}

func (r *FileRepository) ListByUser(ctx context.Context, userID int64, category string) ([]*fileDatamodel.File, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("file_category = ?", category)
	}

	var files []*fileDatamodel.File
	if err := query.Order("uploaded_date DESC").Order("id DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list files of user %d: %w", userID, err)
	}
	return files, nil
}

func (r *FileRepository) Stats(ctx context.Context, userID int64) ([]fileDatamodel.CategoryStat, error) {
	var stats []fileDatamodel.CategoryStat
	err := r.db.WithContext(ctx).
		Model(&fileDatamodel.File{}).
		Select("file_category, COUNT(*) AS count, COALESCE(SUM(file_size), 0) AS total_size").
		Where("user_id = ?", userID).
		Group("file_category").
		Order("file_category").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("file stats of user %d: %w", userID, err)
	}
	return stats, nil
}

func (r *FileRepository) GetByID(ctx context.Context, userID, id int64) (*fileDatamodel.File, error) {
	var f fileDatamodel.File
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, file.ErrNotFound
		}
		return nil, fmt.Errorf("get file %d: %w", id, err)
	}
	return &f, nil
}

func (r *FileRepository) Create(ctx context.Context, f *fileDatamodel.File) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func (r *FileRepository) UpdateMetadata(ctx context.Context, f *fileDatamodel.File) error {
	result := r.db.WithContext(ctx).
		Model(&fileDatamodel.File{}).
		Where("id = ? AND user_id = ?", f.ID, f.UserID).
		Updates(map[string]interface{}{
			"file_category": f.FileCategory,
			"description":   f.Description,
			"tags":          f.Tags,
		})
	if result.Error != nil {
		return fmt.Errorf("update file %d: %w", f.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return file.ErrNotFound
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&fileDatamodel.File{})
	if result.Error != nil {
		return fmt.Errorf("delete file %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return file.ErrNotFound
	}
	return nil
}
