// cmd/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"go_course_tracker/internal/calendarsync"
	"go_course_tracker/internal/config"
	"go_course_tracker/internal/handlers"
	"go_course_tracker/internal/middleware"
	"go_course_tracker/internal/model"
	"go_course_tracker/internal/repository"
	"go_course_tracker/internal/service"
	"go_course_tracker/internal/view"
)

func main() {
	configDir := flag.String("config", "configs", "Directory containing config.yaml")
	flag.Parse()

	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig(*configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := middleware.NewLogger(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	course, err := config.Cfg.CourseConfig()
	if err != nil {
		slog.Error("Invalid course settings", slog.Any("error", err))
		os.Exit(1)
	}

	// 1. Database
	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 2. Dependency Injection
	stateRepo := repository.NewGormStateRepository()
	trackerService := service.NewTrackerService(db, stateRepo, service.Settings{
		StorageKey: config.Cfg.Storage.Key,
		Course:     course,
		Baseline:   config.Cfg.AttendanceBaseline(),
	}, nil)

	startCtx := middleware.WithLogger(context.Background(), logger)
	initResult, err := trackerService.Init(startCtx)
	if err != nil {
		slog.Error("Error initializing tracker state", slog.Any("error", err))
		os.Exit(1)
	}
	for _, n := range initResult.Notifications {
		slog.Info("Startup notice", slog.String("level", string(n.Level)), slog.String("message", n.Message))
	}

	hook := calendarsync.NewHook(course.CurrentYear, course.CourseStart.Location())
	hook.Subscribe(func(ctx context.Context, result model.CalendarSyncResult, _ map[string]any) {
		middleware.GetLogger(ctx).Debug("Calendar sync forwarded", slog.Int("remaining_weekdays", result.RemainingWeekdays))
	})

	dashboard, err := view.NewDashboard()
	if err != nil {
		slog.Error("Error loading dashboard template", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger: logger,
		CORS: cors.Options{
			AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
			AllowedMethods:   config.Cfg.CORS.AllowedMethods,
			AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
			ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
			AllowCredentials: config.Cfg.CORS.AllowCredentials,
			MaxAge:           config.Cfg.CORS.MaxAge,
			Debug:            false,
		},
		RequestTimeout: 60 * time.Second,
		Tracker:        handlers.NewTrackerHandler(trackerService, logger),
		Calendar:       handlers.NewCalendarHandler(hook, logger),
		Dashboard:      handlers.NewDashboardHandler(trackerService, dashboard, logger),
		Health:         handlers.NewHealthHandler(sqlDB, logger),
	})

	// 4. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
