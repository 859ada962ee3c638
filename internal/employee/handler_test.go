package employee_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	employeeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/office-management/internal/employee"
	employeePostgres "github.com/frahmantamala/office-management/internal/employee/postgres"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Employee Handler Integration", func() {
	var (
		router   *chi.Mux
		callerID int64
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employeeDatamodel.Employee{})).To(Succeed())

		repo := employeePostgres.NewEmployeeRepository(db)
		service := employee.NewService(repo, slogger)
		handler := employee.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		callerID = 1
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUserID(r.Context(), callerID)))
			})
		})
		router.Post("/employees", handler.CreateEmployee)
		router.Get("/employees/detail/{id}", handler.GetEmployee)
		router.Get("/employees/{id}", handler.GetEmployees)
		router.Put("/employees/{id}", handler.UpdateEmployee)
		router.Delete("/employees/{id}", handler.DeleteEmployee)
	})

	do := func(method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var decoded map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&decoded)).To(Succeed())
		return w, decoded
	}

	const payload = `{"userId":1,"fullName":"Jane Doe","email":"jane@acme.test","position":"Engineer","department":"R&D","joinDate":"2024-03-01"}`

	It("creates, lists, reads, updates and deletes an employee", func() {
		w, body := do(http.MethodPost, "/employees", payload)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(body["success"]).To(BeTrue())
		id := int64(body["employeeId"].(float64))

		w, body = do(http.MethodGet, "/employees/1", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["employees"]).To(HaveLen(1))

		w, body = do(http.MethodGet, "/employees/detail/"+itoa(id), "")
		Expect(w.Code).To(Equal(http.StatusOK))
		emp := body["employee"].(map[string]interface{})
		Expect(emp["joinDate"]).To(Equal("2024-03-01"))
		Expect(emp["employmentType"]).To(Equal("Full-time"))

		w, body = do(http.MethodPut, "/employees/"+itoa(id),
			`{"fullName":"Jane Smith","email":"jane@acme.test","position":"Lead","department":"R&D","joinDate":"2024-03-01","status":"On Leave"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["message"]).To(Equal("Employee updated successfully"))

		w, body = do(http.MethodDelete, "/employees/"+itoa(id), "")
		Expect(w.Code).To(Equal(http.StatusOK))

		w, body = do(http.MethodGet, "/employees/detail/"+itoa(id), "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(body["success"]).To(BeFalse())
		Expect(body["message"]).To(Equal("Employee not found"))
	})

	It("answers 400 with the validation message when required fields are missing", func() {
		w, body := do(http.MethodPost, "/employees", `{"userId":1,"fullName":"Jane"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(body["success"]).To(BeFalse())
		Expect(body["message"]).To(ContainSubstring("email is required"))
	})

	It("answers 400 for a malformed date", func() {
		w, body := do(http.MethodPost, "/employees", strings.Replace(payload, "2024-03-01", "01/03/2024", 1))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(body["message"]).To(ContainSubstring("invalid date"))
	})

	It("refuses to list or create for another user", func() {
		w, _ := do(http.MethodGet, "/employees/2", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		w, _ = do(http.MethodPost, "/employees", strings.Replace(payload, `"userId":1`, `"userId":2`, 1))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("hides rows owned by another user", func() {
		w, body := do(http.MethodPost, "/employees", payload)
		Expect(w.Code).To(Equal(http.StatusCreated))
		id := int64(body["employeeId"].(float64))

		callerID = 2
		w, _ = do(http.MethodGet, "/employees/detail/"+itoa(id), "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		w, _ = do(http.MethodDelete, "/employees/"+itoa(id), "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects non-numeric ids", func() {
		w, body := do(http.MethodGet, "/employees/detail/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(body["code"]).To(Equal("INVALID_ID"))
	})
})

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
