package employee

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	employeeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	ListByUser(ctx context.Context, userID int64) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, userID, id int64) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, e *employeeDatamodel.Employee) error
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

func (s *Service) List(ctx context.Context, userID int64) ([]*Employee, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list employees", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	employees := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, FromDataModel(row))
	}
	return employees, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id int64) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, s.mapError("get", id, err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (int64, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	e := &Employee{UserID: dto.UserID}
	dto.apply(e)

	row := ToDataModel(e)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create employee", "user_id", dto.UserID, "error", err)
		return 0, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", row.ID, "user_id", row.UserID)
	return row.ID, nil
}

// Update replaces every mutable field of an employee owned by userID.
func (s *Service) Update(ctx context.Context, userID, id int64, dto EmployeeDTO) error {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return err
	}

	e := &Employee{ID: id, UserID: userID}
	dto.apply(e)

	if err := s.repo.Update(ctx, ToDataModel(e)); err != nil {
		return s.mapError("update", id, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.mapError("delete", id, err)
	}
	s.logger.Info("employee deleted", "employee_id", id, "user_id", userID)
	return nil
}

// Export writes the user's employees to w as an xlsx workbook.
func (s *Service) Export(ctx context.Context, userID int64, w io.Writer) error {
	employees, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	if err := WriteWorkbook(w, employees); err != nil {
		s.logger.Error("failed to export employees", "user_id", userID, "error", err)
		return internal.NewInternalError("failed to export employees", err)
	}
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.ErrEmployeeNotFound
	}
	s.logger.Error("employee repository failure", "op", op, "employee_id", id, "error", err)
	return internal.NewInternalError("failed to "+op+" employee", err)
}
