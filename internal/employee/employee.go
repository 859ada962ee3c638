package employee

import (
	"errors"
	"time"

	"github.com/frahmantamala/office-management/internal/core/common/date"
	employeeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/employee"
)

const (
	EmploymentFullTime = "Full-time"
	EmploymentPartTime = "Part-time"
	EmploymentContract = "Contract"
	EmploymentIntern   = "Intern"

	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)

var (
	EmploymentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern}
	Statuses        = []string{StatusActive, StatusInactive, StatusOnLeave}
)

var ErrNotFound = errors.New("employee not found")

type Employee struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"userId"`
	FullName              string    `json:"fullName"`
	Email                 string    `json:"email"`
	PhoneNo               *string   `json:"phoneNo"`
	Position              string    `json:"position"`
	Department            string    `json:"department"`
	EmploymentType        string    `json:"employmentType"`
	JoinDate              date.Date `json:"joinDate"`
	Status                string    `json:"status"`
	ReportingTo           *string   `json:"reportingTo"`
	Address               *string   `json:"address"`
	EmergencyContactName  *string   `json:"emergencyContactName"`
	EmergencyContactPhone *string   `json:"emergencyContactPhone"`
	Skills                *string   `json:"skills"`
	Salary                *float64  `json:"salary"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:                    e.ID,
		UserID:                e.UserID,
		FullName:              e.FullName,
		Email:                 e.Email,
		PhoneNo:               e.PhoneNo,
		Position:              e.Position,
		Department:            e.Department,
		EmploymentType:        e.EmploymentType,
		JoinDate:              e.JoinDate,
		Status:                e.Status,
		ReportingTo:           e.ReportingTo,
		Address:               e.Address,
		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,
		Skills:                e.Skills,
		Salary:                e.Salary,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                    e.ID,
		UserID:                e.UserID,
		FullName:              e.FullName,
		Email:                 e.Email,
		PhoneNo:               e.PhoneNo,
		Position:              e.Position,
		Department:            e.Department,
		EmploymentType:        e.EmploymentType,
		JoinDate:              e.JoinDate,
		Status:                e.Status,
		ReportingTo:           e.ReportingTo,
		Address:               e.Address,
		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,
		Skills:                e.Skills,
		Salary:                e.Salary,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}
