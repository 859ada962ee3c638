package task

import (
	"time"

	"github.com/frahmantamala/office-management/internal/core/common/date"
)

type Task struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	Description *string   `gorm:"column:description"`
	Status      string    `gorm:"column:status;not null;default:Pending"`
	Priority    string    `gorm:"column:priority;not null;default:Medium"`
	DueDate     date.Date `gorm:"column:due_date;type:date"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
