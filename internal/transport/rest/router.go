package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/office-management/api"
	"github.com/frahmantamala/office-management/internal/auth"
	"github.com/frahmantamala/office-management/internal/employee"
	"github.com/frahmantamala/office-management/internal/file"
	"github.com/frahmantamala/office-management/internal/task"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/internal/transport/middleware"
	"github.com/frahmantamala/office-management/internal/transport/swagger"
	"github.com/frahmantamala/office-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Employee *employee.Handler
	Task     *task.Handler
	File     *file.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	base := transport.NewBaseHandler(logger)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// set before any Route call so sub-routers inherit them
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		base.WriteError(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		base.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// OpenAPI document and swagger UI live outside the API prefix
	router.Get("/openapi.yml", api.Handler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/signup", h.Auth.SignUp)
			ar.Post("/signin", h.Auth.SignIn)
			ar.Post("/refresh", h.Auth.RefreshToken)

			if h.User != nil {
				ar.Group(func(pr chi.Router) {
					pr.Use(h.Auth.AuthMiddleware)
					pr.Use(middleware.UserContext)
					pr.Get("/me", h.User.GetCurrentUser)
					pr.Get("/users", h.User.ListUsers)
					pr.Delete("/users/{id}", h.User.DeleteUser)
				})
			}
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			if h.Employee != nil {
				pr.Route("/employees", func(er chi.Router) {
					er.Post("/", h.Employee.CreateEmployee)
					er.Get("/detail/{id}", h.Employee.GetEmployee)
					er.Get("/{id}/export", h.Employee.ExportEmployees)
					er.Get("/{id}", h.Employee.GetEmployees)
					er.Put("/{id}", h.Employee.UpdateEmployee)
					er.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			}

			if h.Task != nil {
				pr.Route("/tasks", func(tr chi.Router) {
					tr.Post("/", h.Task.CreateTask)
					tr.Get("/detail/{id}", h.Task.GetTask)
					tr.Get("/{id}", h.Task.GetTasks)
					tr.Put("/{id}", h.Task.UpdateTask)
					tr.Delete("/{id}", h.Task.DeleteTask)
				})
			}

			if h.File != nil {
				pr.Route("/files", func(fr chi.Router) {
					fr.Post("/upload", h.File.UploadFile)
					fr.Get("/download/{id}", h.File.DownloadFile)
					fr.Get("/{id}/stats", h.File.GetFileStats)
					fr.Get("/{id}", h.File.GetFiles)
					fr.Put("/{id}", h.File.UpdateFile)
					fr.Delete("/{id}", h.File.DeleteFile)
				})
			}
		})
	})
}
