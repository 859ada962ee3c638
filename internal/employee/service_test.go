package employee_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/date"
	employeeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/office-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

// MockRepository implements employee.RepositoryAPI for testing
type MockRepository struct {
	rows       map[int64]*employeeDatamodel.Employee
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{rows: make(map[int64]*employeeDatamodel.Employee), nextID: 1}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int64) ([]*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*employeeDatamodel.Employee
	for id := m.nextID - 1; id > 0; id-- {
		if row, ok := m.rows[id]; ok && row.UserID == userID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id int64) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	row, ok := m.rows[id]
	if !ok || row.UserID != userID {
		return nil, employee.ErrNotFound
	}
	return row, nil
}

func (m *MockRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	e.ID = m.nextID
	e.CreatedAt = time.Now()
	m.nextID++
	m.rows[e.ID] = e
	return nil
}

func (m *MockRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	existing, ok := m.rows[e.ID]
	if !ok || existing.UserID != e.UserID {
		return employee.ErrNotFound
	}
	e.CreatedAt = existing.CreatedAt
	m.rows[e.ID] = e
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, userID, id int64) error {
	if m.shouldFail {
		return m.failError
	}
	row, ok := m.rows[id]
	if !ok || row.UserID != userID {
		return employee.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func strPtr(s string) *string { return &s }

func validEmployee() employee.EmployeeDTO {
	return employee.EmployeeDTO{
		FullName:   "Jane Doe",
		Email:      "jane@acme.test",
		Position:   "Engineer",
		Department: "R&D",
		JoinDate:   date.New(2024, time.March, 1),
	}
}

var _ = Describe("Employee Service", func() {
	var (
		ctx      context.Context
		mockRepo *MockRepository
		service  *employee.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("applies defaults and round-trips through GetByID", func() {
			id, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: validEmployee()})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			got, err := service.GetByID(ctx, 7, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.FullName).To(Equal("Jane Doe"))
			Expect(got.EmploymentType).To(Equal(employee.EmploymentFullTime))
			Expect(got.Status).To(Equal(employee.StatusActive))
			Expect(got.JoinDate.String()).To(Equal("2024-03-01"))
		})

		It("requires userId and the mandatory fields", func() {
			dto := validEmployee()
			dto.Position = ""
			dto.JoinDate = date.Date{}

			_, err := service.Create(ctx, employee.CreateEmployeeDTO{EmployeeDTO: dto})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			message := appErr.GetDetailedMessage()
			Expect(message).To(ContainSubstring("userId is required"))
			Expect(message).To(ContainSubstring("position is required"))
			Expect(message).To(ContainSubstring("joinDate is required"))
			Expect(mockRepo.rows).To(BeEmpty())
		})

		It("rejects unknown enum values", func() {
			dto := validEmployee()
			dto.Status = "Retired"

			_, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: dto})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring("status must be one of: Active Inactive On Leave"))
		})

		It("accepts the spaced On Leave status", func() {
			dto := validEmployee()
			dto.Status = employee.StatusOnLeave

			_, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: dto})
			Expect(err).NotTo(HaveOccurred())
		})

		It("stores blank optional strings as NULL", func() {
			dto := validEmployee()
			dto.PhoneNo = strPtr("  ")
			dto.Skills = strPtr("Go, SQL")

			id, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: dto})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.rows[id].PhoneNo).To(BeNil())
			Expect(*mockRepo.rows[id].Skills).To(Equal("Go, SQL"))
		})

		It("surfaces storage failures as internal errors with the raw cause", func() {
			mockRepo.SetShouldFail(true, errors.New("disk full"))

			_, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: validEmployee()})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
			Expect(appErr.GetDetailedMessage()).To(Equal("disk full"))
		})
	})

	Describe("Update", func() {
		var id int64

		BeforeEach(func() {
			dto := validEmployee()
			dto.Status = employee.StatusInactive
			dto.Address = strPtr("Main street 1")
			var err error
			id, err = service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: dto})
			Expect(err).NotTo(HaveOccurred())
		})

		It("replaces every field and re-applies defaults", func() {
			dto := validEmployee()
			dto.FullName = "Jane Smith"

			Expect(service.Update(ctx, 7, id, dto)).To(Succeed())

			got, err := service.GetByID(ctx, 7, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.FullName).To(Equal("Jane Smith"))
			Expect(got.Status).To(Equal(employee.StatusActive))
			Expect(got.Address).To(BeNil())
		})

		It("reports NotFound for a missing id", func() {
			err := service.Update(ctx, 7, 999, validEmployee())
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("reports NotFound for a row owned by someone else", func() {
			err := service.Update(ctx, 8, id, validEmployee())
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the row once", func() {
			id, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: validEmployee()})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, 7, id)).To(Succeed())
			Expect(service.Delete(ctx, 7, id)).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("Export", func() {
		It("writes one row per employee under a header", func() {
			for _, name := range []string{"Ann", "Bob"} {
				dto := validEmployee()
				dto.FullName = name
				_, err := service.Create(ctx, employee.CreateEmployeeDTO{UserID: 7, EmployeeDTO: dto})
				Expect(err).NotTo(HaveOccurred())
			}

			var buf bytes.Buffer
			Expect(service.Export(ctx, 7, &buf)).To(Succeed())

			f, err := excelize.OpenReader(&buf)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows("Employees")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0][1]).To(Equal("Full Name"))
			Expect([]string{rows[1][1], rows[2][1]}).To(ConsistOf("Ann", "Bob"))
			Expect(rows[1][7]).To(Equal("2024-03-01"))
		})
	})
})
