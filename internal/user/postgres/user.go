package postgres

import (
	"context"
	"errors"
	"fmt"

	fileDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/file"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userDatamodel.User{})
	if result.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListFilePaths(ctx context.Context, userID int64) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&fileDatamodel.File{}).
		Where("user_id = ?", userID).
		Pluck("file_path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("list file paths for user %d: %w", userID, err)
	}
	return paths, nil
}
