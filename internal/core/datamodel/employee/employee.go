package employee

import (
	"time"

	"github.com/frahmantamala/office-management/internal/core/common/date"
)

type Employee struct {
	ID                    int64     `gorm:"primaryKey"`
	UserID                int64     `gorm:"column:user_id;not null;index"`
	FullName              string    `gorm:"column:full_name;not null"`
	Email                 string    `gorm:"column:email;not null"`
	PhoneNo               *string   `gorm:"column:phone_no"`
	Position              string    `gorm:"column:position;not null"`
	Department            string    `gorm:"column:department;not null"`
	EmploymentType        string    `gorm:"column:employment_type;not null;default:Full-time"`
	JoinDate              date.Date `gorm:"column:join_date;type:date;not null"`
	Status                string    `gorm:"column:status;not null;default:Active"`
	ReportingTo           *string   `gorm:"column:reporting_to"`
	Address               *string   `gorm:"column:address"`
	EmergencyContactName  *string   `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone *string   `gorm:"column:emergency_contact_phone"`
	Skills                *string   `gorm:"column:skills"`
	Salary                *float64  `gorm:"column:salary;type:numeric(12,2)"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
