// internal/model/calendar.go
package model

// CalendarUpdateType は外部カレンダーからの更新メッセージの種別
const CalendarUpdateType = "CALENDAR_UPDATE"

// CalendarUpdate は外部カレンダーコンポーネントからの通知
type CalendarUpdate struct {
	Type            string         `json:"type" validate:"required,eq=CALENDAR_UPDATE"`
	Events          map[string]any `json:"events"`
	InvalidatedDays []string       `json:"invalidatedDays" validate:"dive,datetime=2006-01-02"`
}

// CalendarSyncResult は同期フックの処理結果
// RemainingWeekdays はその年の平日数から無効になった平日を引いたもの
type CalendarSyncResult struct {
	InvalidatedDays     int `json:"invalidatedDays"`
	InvalidatedWeekdays int `json:"invalidatedWeekdays"`
	RemainingWeekdays   int `json:"remainingWeekdays"`
	Events              int `json:"events"`
}
