package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/service"
	"go_course_tracker/internal/view"
	"go_course_tracker/internal/webutil"
)

type DashboardHandler struct {
	service   service.TrackerService
	dashboard *view.Dashboard
	logger    *slog.Logger
}

func NewDashboardHandler(s service.TrackerService, d *view.Dashboard, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{service: s, dashboard: d, logger: logger}
}

// GetDashboard は現在の状態をHTMLで返す
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDashboard"))

	// 途中で失敗しても半端なHTMLを返さないようにバッファに書く
	var buf bytes.Buffer
	if err := h.dashboard.Render(&buf, h.service.Snapshot(r.Context())); err != nil {
		webutil.HandleError(w, logger, fmt.Errorf("render dashboard: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Pinger は保存先の疎通確認 (*sql.DB が満たす)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
		appErr := model.NewAppError("STORAGE_UNAVAILABLE", "Storage is not reachable.", "", model.ErrPersistenceFailure)
		webutil.HandleError(w, h.logger, appErr)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
