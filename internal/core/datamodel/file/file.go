package file

import "time"

type File struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           int64     `gorm:"column:user_id;not null;index"`
	FileName         string    `gorm:"column:file_name;not null"`
	OriginalFileName string    `gorm:"column:original_file_name;not null"`
	FileType         string    `gorm:"column:file_type;not null"`
	FileSize         int64     `gorm:"column:file_size;not null"`
	FileCategory     string    `gorm:"column:file_category;not null;default:Document"`
	Description      *string   `gorm:"column:description"`
	Tags             *string   `gorm:"column:tags"`
	FilePath         string    `gorm:"column:file_path;not null"`
	UploadedDate     time.Time `gorm:"column:uploaded_date;autoCreateTime"`
	UpdatedDate      time.Time `gorm:"column:updated_date;autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}

// CategoryStat is one row of the per-category aggregate.
type CategoryStat struct {
	FileCategory string `gorm:"column:file_category"`
	Count        int64  `gorm:"column:count"`
	TotalSize    int64  `gorm:"column:total_size"`
}
