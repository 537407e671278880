package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_course_tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterConfig はルーターに渡すハンドラと設定
type RouterConfig struct {
	Logger         *slog.Logger
	CORS           cors.Options
	RequestTimeout time.Duration
	Tracker        *TrackerHandler
	Calendar       *CalendarHandler
	Dashboard      *DashboardHandler
	Health         *HealthHandler
}

func NewRouter(c RouterConfig) http.Handler {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(c.Logger))
	r.Use(cors.New(c.CORS).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(c.RequestTimeout))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", c.Tracker.GetState)

		r.Route("/progress", func(r chi.Router) {
			r.Post("/complete-today", c.Tracker.CompleteToday)
			r.Post("/days", c.Tracker.AddDays)
			r.Post("/days/remove", c.Tracker.RemoveDays)
			r.Put("/total", c.Tracker.SetTotal)
			r.Post("/infer", c.Tracker.InferProgress)
			r.Post("/reset", c.Tracker.ResetAll)
		})

		r.Route("/months", func(r chi.Router) {
			r.Post("/toggle-edit", c.Tracker.ToggleEditAll)
			r.Put("/{index}/capacity", c.Tracker.SetMonthCapacity)
			r.Post("/{index}/clear", c.Tracker.ClearMonth)
			r.Post("/{index}/toggle-edit", c.Tracker.ToggleEditMonth)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/absences", c.Tracker.RecordAbsence)
			r.Post("/reset", c.Tracker.ResetAttendance)
		})

		r.Put("/config", c.Tracker.UpdateConfig)
		r.Get("/export", c.Tracker.Export)
		r.Post("/calendar/updates", c.Calendar.PostUpdate)
	})

	r.Get("/", c.Dashboard.GetDashboard)
	r.Get("/health", c.Health.GetHealth)

	return r
}
