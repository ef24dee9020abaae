package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager-api/internal/config"
	"github.com/yukikurage/task-manager-api/internal/database"
	"github.com/yukikurage/task-manager-api/internal/handlers"
	"github.com/yukikurage/task-manager-api/internal/logger"
	"github.com/yukikurage/task-manager-api/internal/middleware"
	"github.com/yukikurage/task-manager-api/internal/repository"
	"github.com/yukikurage/task-manager-api/internal/services"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg, os.Stdout)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	router, db, err := setupApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			log.Info("shutting down http server")
			return srv.Shutdown(ctx)
		},
	}
	if db != nil {
		operations["database"] = func(ctx context.Context) error {
			log.Info("closing database connection")
			return database.Close(db)
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)

	exitCode := <-wait
	log.Info("application exited", "code", exitCode)
	os.Exit(exitCode)
}

// setupApp wires storage, services and handlers into a router. The returned
// database is nil when the in-memory store is selected.
func setupApp(cfg *config.Config, log *slog.Logger) (*gin.Engine, *gorm.DB, error) {
	var (
		db       *gorm.DB
		userRepo repository.UserRepository
		taskRepo repository.TaskRepository
	)

	if cfg.DBDriver == config.DriverMemory {
		store := repository.NewMemoryStore()
		userRepo, taskRepo = store.Users(), store.Tasks()
	} else {
		var err error
		db, err = database.Open(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, cfg.DBRecreate, log); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		userRepo, taskRepo = repository.NewUserRepository(db), repository.NewTaskRepository(db)
	}

	// Initialize services
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	handlers.RegisterRoutes(r,
		handlers.NewSystemHandler(db),
		handlers.NewUserHandler(userService, taskService),
		handlers.NewTaskHandler(taskService),
	)

	return r, db, nil
}
