package task_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
	"github.com/frahmantamala/office-management/internal/task"
	taskPostgres "github.com/frahmantamala/office-management/internal/task/postgres"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Task Handler Integration", func() {
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
		Expect(db.AutoMigrate(&taskDatamodel.Task{})).To(Succeed())

		service := task.NewService(taskPostgres.NewTaskRepository(db), slogger)
		handler := task.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		callerID = 1
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUserID(r.Context(), callerID)))
			})
		})
		router.Post("/tasks", handler.CreateTask)
		router.Get("/tasks/detail/{id}", handler.GetTask)
		router.Get("/tasks/{id}", handler.GetTasks)
		router.Put("/tasks/{id}", handler.UpdateTask)
		router.Delete("/tasks/{id}", handler.DeleteTask)
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

	It("creates, reads, updates and deletes a task", func() {
		w, body := do(http.MethodPost, "/tasks", `{"userId":1,"title":"Book venue","priority":"High","dueDate":"2025-05-01"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(body["message"]).To(Equal("Task created successfully"))
		id := strconv.FormatInt(int64(body["taskId"].(float64)), 10)

		w, body = do(http.MethodGet, "/tasks/detail/"+id, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		got := body["task"].(map[string]interface{})
		Expect(got["status"]).To(Equal("Pending"))
		Expect(got["dueDate"]).To(Equal("2025-05-01"))

		w, body = do(http.MethodPut, "/tasks/"+id, `{"title":"Book venue","status":"Completed"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["message"]).To(Equal("Task updated successfully"))

		w, body = do(http.MethodGet, "/tasks/1", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		tasks := body["tasks"].([]interface{})
		Expect(tasks).To(HaveLen(1))
		updated := tasks[0].(map[string]interface{})
		Expect(updated["status"]).To(Equal("Completed"))
		Expect(updated["priority"]).To(Equal("Medium"))
		Expect(updated["dueDate"]).To(BeNil())

		w, body = do(http.MethodDelete, "/tasks/"+id, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["message"]).To(Equal("Task deleted successfully"))
	})

	It("rejects an unknown status", func() {
		w, body := do(http.MethodPost, "/tasks", `{"userId":1,"title":"x","status":"Blocked"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(body["message"]).To(ContainSubstring("status must be one of"))
	})

	It("answers 400 for an empty body", func() {
		w, body := do(http.MethodPost, "/tasks", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(body["message"]).To(Equal("Request body is required"))
	})

	It("reports 404 for another user's task", func() {
		w, body := do(http.MethodPost, "/tasks", `{"userId":1,"title":"x"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		id := strconv.FormatInt(int64(body["taskId"].(float64)), 10)

		callerID = 2
		w, _ = do(http.MethodPut, "/tasks/"+id, `{"title":"y"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
