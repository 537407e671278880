// cmd/export/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go_course_tracker/internal/config"
	"go_course_tracker/internal/middleware"
	"go_course_tracker/internal/model"
	"go_course_tracker/internal/repository"
	"go_course_tracker/internal/service"
)

// 保存済みの状態を読み、エクスポートファイルを書き出す。状態は変更しない
func main() {
	configDir := flag.String("config", "configs", "Directory containing config.yaml")
	outDir := flag.String("out", ".", "Directory to write the export file to")
	flag.Parse()

	if err := run(*configDir, *outDir); err != nil {
		slog.Error("Export failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configDir, outDir string) error {
	if err := config.LoadConfig(configDir); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := middleware.NewLogger(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	course, err := config.Cfg.CourseConfig()
	if err != nil {
		return err
	}
	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	svc := service.NewTrackerService(db, repository.NewGormStateRepository(), service.Settings{
		StorageKey: config.Cfg.Storage.Key,
		Course:     course,
		Baseline:   config.Cfg.AttendanceBaseline(),
	}, nil)

	ctx := middleware.WithLogger(context.Background(), logger)
	loaded, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	for _, n := range loaded.Notifications {
		logger.Warn("Export uses defaults", slog.String("message", n.Message))
	}

	report := svc.Export(ctx)
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	path := filepath.Join(outDir, model.ExportFileName(report.ExportedAt))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	logger.Info("Progress exported",
		slog.String("path", path),
		slog.String("export_id", report.ExportID.String()),
		slog.Int("completed_days", report.Progress.CompletedDays),
	)
	return nil
}
