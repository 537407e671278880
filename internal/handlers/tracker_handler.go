// internal/handlers/tracker_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/service"
	"go_course_tracker/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type TrackerHandler struct {
	service service.TrackerService
	logger  *slog.Logger
}

func NewTrackerHandler(s service.TrackerService, logger *slog.Logger) *TrackerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackerHandler{
		service: s,
		logger:  logger,
	}
}

// GetState は現在の状態と集計を返す
func (h *TrackerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetState"))
	webutil.RespondWithJSON(w, http.StatusOK, h.service.Snapshot(r.Context()), logger)
}

func (h *TrackerHandler) CompleteToday(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompleteToday"))
	result, err := h.service.CompleteToday(r.Context())
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) AddDays(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AddDays"))

	var req model.DayCountRequest
	if !h.decode(w, r, logger, &req) {
		return
	}
	result, err := h.service.AddDays(r.Context(), string(req.Count))
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) RemoveDays(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RemoveDays"))

	var req model.DayCountRequest
	if !h.decode(w, r, logger, &req) {
		return
	}
	result, err := h.service.RemoveDays(r.Context(), string(req.Count))
	h.respond(w, logger, result, err)
}

// SetTotal は完了日数の合計を直接指定する
func (h *TrackerHandler) SetTotal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SetTotal"))

	var req model.SetTotalRequest
	if !h.decode(w, r, logger, &req) {
		return
	}
	result, err := h.service.SetTotal(r.Context(), string(req.Total))
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) InferProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "InferProgress"))
	result, err := h.service.InferProgress(r.Context())
	h.respond(w, logger, result, err)
}

// ResetAll は進捗と出席記録をまとめて初期化する
func (h *TrackerHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ResetAll"))
	result, err := h.service.ResetAll(r.Context())
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) SetMonthCapacity(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SetMonthCapacity"))

	index, ok := h.monthIndex(w, r, logger)
	if !ok {
		return
	}
	var req model.MonthCapacityRequest
	if !h.decode(w, r, logger, &req) {
		return
	}
	result, err := h.service.SetMonthCapacity(r.Context(), index, string(req.AvailableDays))
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) ClearMonth(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClearMonth"))

	index, ok := h.monthIndex(w, r, logger)
	if !ok {
		return
	}
	result, err := h.service.ClearMonth(r.Context(), index)
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) ToggleEditMonth(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleEditMonth"))

	index, ok := h.monthIndex(w, r, logger)
	if !ok {
		return
	}
	result, err := h.service.ToggleEditMonth(r.Context(), index)
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) ToggleEditAll(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleEditAll"))
	result, err := h.service.ToggleEditAll(r.Context())
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) RecordAbsence(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RecordAbsence"))

	var req model.AbsenceRequest
	if !h.decode(w, r, logger, &req) {
		return
	}
	result, err := h.service.RecordAbsence(r.Context(), string(req.Hours))
	h.respond(w, logger, result, err)
}

func (h *TrackerHandler) ResetAttendance(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ResetAttendance"))
	result, err := h.service.ResetAttendance(r.Context())
	h.respond(w, logger, result, err)
}

// UpdateConfig は設定フォームを保存する
func (h *TrackerHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateConfig"))

	var req model.UpdateConfigRequest
	if !h.decode(w, r, logger, &req) {
		return
	}
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationError(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}
	result, err := h.service.UpdateConfiguration(r.Context(), &req)
	h.respond(w, logger, result, err)
}

// Export はレポートを添付ファイルとして返す。状態は変えない
func (h *TrackerHandler) Export(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Export"))

	report := h.service.Export(r.Context())
	filename := model.ExportFileName(report.ExportedAt)
	logger.Info("Progress exported", slog.String("export_id", report.ExportID.String()), slog.String("filename", filename))
	webutil.RespondWithAttachment(w, filename, report, logger)
}

func (h *TrackerHandler) decode(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

func (h *TrackerHandler) monthIndex(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || !model.ValidIndex(index) {
		logger.Warn("Invalid month index", slog.String("index", raw))
		appErr := model.NewAppError("INVALID_MONTH", "Month index must be a number between 0 and 11.", "index", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return 0, false
	}
	return index, true
}

func (h *TrackerHandler) respond(w http.ResponseWriter, logger *slog.Logger, result *model.CommandResult, err error) {
	if err != nil {
		logger.Warn("Command rejected", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if result.Notifications == nil {
		result.Notifications = []model.Notification{}
	}
	logger.Info("Command completed", slog.Bool("persisted", result.Persisted))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
