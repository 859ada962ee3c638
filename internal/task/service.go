package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
)

type RepositoryAPI interface {
	ListByUser(ctx context.Context, userID int64) ([]*taskDatamodel.Task, error)
	GetByID(ctx context.Context, userID, id int64) (*taskDatamodel.Task, error)
	Create(ctx context.Context, t *taskDatamodel.Task) error
	Update(ctx context.Context, t *taskDatamodel.Task) error
	Delete(ctx context.Context, userID, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Task, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tasks", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list tasks", err)
	}

	tasks := make([]*Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, FromDataModel(row))
	}
	return tasks, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id int64) (*Task, error) {
	row, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, s.mapError("get", id, err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateTaskDTO) (int64, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	t := &Task{UserID: dto.UserID}
	dto.apply(t)

	row := ToDataModel(t)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create task", "user_id", dto.UserID, "error", err)
		return 0, internal.NewInternalError("failed to create task", err)
	}
	return row.ID, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, dto TaskDTO) error {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return err
	}

	t := &Task{ID: id, UserID: userID}
	dto.apply(t)

	if err := s.repo.Update(ctx, ToDataModel(t)); err != nil {
		return s.mapError("update", id, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.mapError("delete", id, err)
	}
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.ErrTaskNotFound
	}
	s.logger.Error("task repository failure", "op", op, "task_id", id, "error", err)
	return internal.NewInternalError("failed to "+op+" task", err)
}
