package employee

import (
	"strings"

	"github.com/frahmantamala/office-management/internal/core/common/date"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
)

// EmployeeDTO carries the mutable fields. Update replaces all of them, so omitted
// optional fields are cleared and omitted enums fall back to their defaults.
type EmployeeDTO struct {
	FullName              string    `json:"fullName" validate:"required"`
	Email                 string    `json:"email" validate:"required"`
	PhoneNo               *string   `json:"phoneNo"`
	Position              string    `json:"position" validate:"required"`
	Department            string    `json:"department" validate:"required"`
	EmploymentType        string    `json:"employmentType" validate:"omitempty,oneof=Full-time Part-time Contract Intern"`
	JoinDate              date.Date `json:"joinDate" validate:"required"`
	Status                string    `json:"status" validate:"omitempty,oneof=Active Inactive 'On Leave'"`
	ReportingTo           *string   `json:"reportingTo"`
	Address               *string   `json:"address"`
	EmergencyContactName  *string   `json:"emergencyContactName"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone"`
	Skills                *string   `json:"skills"`
	Salary                *float64  `json:"salary" validate:"omitempty,gte=0"`
}

type CreateEmployeeDTO struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	EmployeeDTO
}

func (d *EmployeeDTO) Normalize() {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.Position = strings.TrimSpace(d.Position)
	d.Department = strings.TrimSpace(d.Department)
	d.PhoneNo = nullable(d.PhoneNo)
	d.ReportingTo = nullable(d.ReportingTo)
	d.Address = nullable(d.Address)
	d.EmergencyContactName = nullable(d.EmergencyContactName)
	d.EmergencyContactPhone = nullable(d.EmergencyContactPhone)
	d.Skills = nullable(d.Skills)

	if d.EmploymentType == "" {
		d.EmploymentType = EmploymentFullTime
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
}

func (d EmployeeDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	return nil
}

func (d CreateEmployeeDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	return nil
}

func (d EmployeeDTO) apply(e *Employee) {
	e.FullName = d.FullName
	e.Email = d.Email
	e.PhoneNo = d.PhoneNo
	e.Position = d.Position
	e.Department = d.Department
	e.EmploymentType = d.EmploymentType
	e.JoinDate = d.JoinDate
	e.Status = d.Status
	e.ReportingTo = d.ReportingTo
	e.Address = d.Address
	e.EmergencyContactName = d.EmergencyContactName
	e.EmergencyContactPhone = d.EmergencyContactPhone
	e.Skills = d.Skills
	e.Salary = d.Salary
}

// nullable maps blank optional strings to NULL.
func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
