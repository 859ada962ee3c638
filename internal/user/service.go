package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/core/events"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	List(ctx context.Context) ([]*userDatamodel.User, error)
	Delete(ctx context.Context, id int64) error
	ListFilePaths(ctx context.Context, userID int64) ([]string, error)
}

// BlobRemover deletes stored upload bytes by their store path.
type BlobRemover interface {
	Remove(path string) error
}

type Service struct {
	repo   RepositoryAPI
	blobs  BlobRemover
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, blobs BlobRemover, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:   repo,
		blobs:  blobs,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return FromDataModel(row), nil
}

// DeleteUser removes the caller's account. Employees, tasks and file rows go with it via
// the foreign keys; blobs are unlinked first and a failed unlink only gets logged.
func (s *Service) DeleteUser(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return internal.ErrOwnerMismatch
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	paths, err := s.repo.ListFilePaths(ctx, id)
	if err != nil {
		s.logger.Error("failed to list user files", "user_id", id, "error", err)
		return internal.NewInternalError("failed to list user files", err)
	}

	orphaned := 0
	for _, p := range paths {
		if err := s.blobs.Remove(p); err != nil {
			orphaned++
			s.logger.Warn("failed to remove blob of deleted user", "user_id", id, "path", p, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to delete user", err)
	}

	_ = s.events.Publish(ctx, events.NewEvent(events.UserDeleted, map[string]interface{}{
		"user_id":        id,
		"files_removed":  len(paths) - orphaned,
		"blobs_orphaned": orphaned,
	}))
	s.logger.Info("user deleted", "user_id", id, "files", len(paths))
	return nil
}
