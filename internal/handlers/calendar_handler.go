package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// CalendarSyncer は外部カレンダーの更新を処理する
type CalendarSyncer interface {
	Handle(ctx context.Context, update model.CalendarUpdate) (model.CalendarSyncResult, error)
}

type CalendarHandler struct {
	syncer CalendarSyncer
	logger *slog.Logger
}

func NewCalendarHandler(s CalendarSyncer, logger *slog.Logger) *CalendarHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarHandler{syncer: s, logger: logger}
}

// PostUpdate はカレンダーからの更新メッセージを受け取る
func (h *CalendarHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCalendarUpdate"))

	var req model.CalendarUpdate
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationError(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	result, err := h.syncer.Handle(r.Context(), req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
