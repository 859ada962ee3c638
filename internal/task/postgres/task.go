package postgres

import (
	"context"
	"errors"
	"fmt"

	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
	"github.com/frahmantamala/office-management/internal/task"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.RepositoryAPI {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*taskDatamodel.Task, error) {
	var tasks []*taskDatamodel.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks of user %d: %w", userID, err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, id int64) (*taskDatamodel.Task, error) {
	var t taskDatamodel.Task
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrNotFound
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *taskDatamodel.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t *taskDatamodel.Task) error {
	result := r.db.WithContext(ctx).
		Model(&taskDatamodel.Task{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]interface{}{
			"title":       t.Title,
			"description": t.Description,
			"status":      t.Status,
			"priority":    t.Priority,
			"due_date":    t.DueDate,
		})
	if result.Error != nil {
		return fmt.Errorf("update task %d: %w", t.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&taskDatamodel.Task{})
	if result.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return task.ErrNotFound
	}
	return nil
}
