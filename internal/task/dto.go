package task

import (
	"strings"

	"github.com/frahmantamala/office-management/internal/core/common/date"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
)

type TaskDTO struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     date.Date `json:"dueDate"`
}

type CreateTaskDTO struct {
	UserID int64 `json:"userId"`
	TaskDTO
}

// Normalize trims input and fills the status and priority defaults.
func (d *TaskDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	if d.Description != nil {
		if trimmed := strings.TrimSpace(*d.Description); trimmed == "" {
			d.Description = nil
		} else {
			d.Description = &trimmed
		}
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
}

func (d TaskDTO) rules(v *validation.ValidationBuilder) {
	v.Field("title", d.Title).Required().MaxLength(255)
	v.Field("status", d.Status).OneOf(StatusPending, StatusInProgress, StatusCompleted)
	v.Field("priority", d.Priority).OneOf(PriorityLow, PriorityMedium, PriorityHigh)
}

func (d TaskDTO) Validate() error {
	v := validation.NewValidator()
	d.rules(v)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateTaskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("userId", d.UserID).Required()
	d.rules(v)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d TaskDTO) apply(t *Task) {
	t.Title = d.Title
	t.Description = d.Description
	t.Status = d.Status
	t.Priority = d.Priority
	t.DueDate = d.DueDate
}
