// Package calendarsync は外部カレンダーからの更新を受け取るフック。
// 台帳には触らず、数えてログに出し、登録されたリスナーに渡すだけ。
package calendarsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go_course_tracker/internal/middleware"
	"go_course_tracker/internal/model"
	"go_course_tracker/internal/tracker"
)

// Listener は同期結果を受け取るコールバック
type Listener func(ctx context.Context, result model.CalendarSyncResult, events map[string]any)

type Hook struct {
	year int
	loc  *time.Location

	mu        sync.RWMutex
	listeners []Listener
}

func NewHook(year int, loc *time.Location) *Hook {
	if loc == nil {
		loc = time.Local
	}
	return &Hook{year: year, loc: loc}
}

// Subscribe はリスナーを追加する
func (h *Hook) Subscribe(l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
}

// Handle は更新メッセージを処理する
// 同じ日付が複数回来ても1日として数える
func (h *Hook) Handle(ctx context.Context, update model.CalendarUpdate) (model.CalendarSyncResult, error) {
	logger := middleware.GetLogger(ctx)
	if update.Type != model.CalendarUpdateType {
		return model.CalendarSyncResult{}, model.NewAppError("INVALID_MESSAGE_TYPE",
			fmt.Sprintf("Unsupported message type %q.", update.Type), "type", model.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(update.InvalidatedDays))
	result := model.CalendarSyncResult{Events: len(update.Events)}
	invalidatedInYear := 0
	for _, raw := range update.InvalidatedDays {
		d, err := model.ParseDate(raw, h.loc)
		if err != nil {
			logger.Warn("Skipping unreadable invalidated day", "value", raw)
			continue
		}
		if seen[d.String()] {
			continue
		}
		seen[d.String()] = true
		result.InvalidatedDays++
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		result.InvalidatedWeekdays++
		if d.Year() == h.year {
			invalidatedInYear++
		}
	}

	first := model.NewDate(h.year, time.January, 1, h.loc)
	last := model.NewDate(h.year, time.December, 31, h.loc)
	result.RemainingWeekdays = tracker.CountWeekdays(first, last) - invalidatedInYear

	logger.Info("Calendar update received",
		"invalidated_days", result.InvalidatedDays,
		"invalidated_weekdays", result.InvalidatedWeekdays,
		"remaining_weekdays", result.RemainingWeekdays,
		"events", result.Events,
	)

	h.mu.RLock()
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.RUnlock()
	for _, l := range listeners {
		l(ctx, result, update.Events)
	}
	return result, nil
}
