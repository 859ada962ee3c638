package postgres

import (
	"context"
	"errors"
	"fmt"

	employeeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/office-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) ListByUser(ctx context.Context, userID int64) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("list employees of user %d: %w", userID, err)
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, userID, id int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrNotFound
		}
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Update overwrites every mutable column, NULLs included.
func (r *EmployeeRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Updates(map[string]interface{}{
			"full_name":               e.FullName,
			"email":                   e.Email,
			"phone_no":                e.PhoneNo,
			"position":                e.Position,
			"department":              e.Department,
			"employment_type":         e.EmploymentType,
			"join_date":               e.JoinDate,
			"status":                  e.Status,
			"reporting_to":            e.ReportingTo,
			"address":                 e.Address,
			"emergency_contact_name":  e.EmergencyContactName,
			"emergency_contact_phone": e.EmergencyContactPhone,
			"skills":                  e.Skills,
			"salary":                  e.Salary,
		})
	if result.Error != nil {
		return fmt.Errorf("update employee %d: %w", e.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&employeeDatamodel.Employee{})
	if result.Error != nil {
		return fmt.Errorf("delete employee %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrNotFound
	}
	return nil
}
