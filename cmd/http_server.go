package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/office-management/api"
	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/auth"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/database"
	"github.com/frahmantamala/office-management/internal/employee"
	employeePostgres "github.com/frahmantamala/office-management/internal/employee/postgres"
	"github.com/frahmantamala/office-management/internal/file"
	filePostgres "github.com/frahmantamala/office-management/internal/file/postgres"
	"github.com/frahmantamala/office-management/internal/storage"
	"github.com/frahmantamala/office-management/internal/task"
	taskPostgres "github.com/frahmantamala/office-management/internal/task/postgres"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/internal/transport/rest"
	"github.com/frahmantamala/office-management/internal/user"
	userPostgres "github.com/frahmantamala/office-management/internal/user/postgres"
	"github.com/frahmantamala/office-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *database.DB
	Store    *storage.Store
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "upload_dir", deps.Store.Root())

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	// let in-flight audit handlers finish before the pool goes away
	deps.EventBus.Wait()
	if err := deps.DB.Close(); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	gormDB := deps.DB.Gorm

	userRepo := userPostgres.NewUserRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(userRepo, tokenGen, cfg.Security.BCryptCost, deps.EventBus, deps.Logger)
	userService := user.NewService(userRepo, deps.Store, deps.EventBus, deps.Logger)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), deps.Logger)
	taskService := task.NewService(taskPostgres.NewTaskRepository(gormDB), deps.Logger)
	fileService := file.NewService(filePostgres.NewFileRepository(gormDB), deps.Store, deps.EventBus, cfg.Storage.MaxUploadSize, deps.Logger)

	base := transport.NewBaseHandler(deps.Logger)
	rest.RegisterAllRoutes(deps.Router, deps.DB.SQL.DB, rest.Handlers{
		Auth:     auth.NewHandler(base, authService),
		User:     user.NewHandler(base, userService),
		Employee: employee.NewHandler(base, employeeService),
		Task:     task.NewHandler(base, taskService),
		File:     file.NewHandler(base, fileService),
	}, cfg.Server.Origins(), deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(config)
	lg := logger.LoggerWrapper()

	if _, err := api.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load API document: %w", err)
	}

	db, err := database.Open(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := storage.NewLocalStore(config.Storage.UploadDir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Store:    store,
		EventBus: bus,
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}
