// internal/model/export.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressReport はエクスポートの進捗部分
type ProgressReport struct {
	TotalDays       int `json:"totalDays"`
	CompletedDays   int `json:"completedDays"`
	RemainingDays   int `json:"remainingDays"`
	PercentComplete int `json:"percentComplete"`
}

// ExportReport はダウンロード用のスナップショット。再インポートはしない
type ExportReport struct {
	ExportID   uuid.UUID        `json:"exportId"`
	Progress   ProgressReport   `json:"progress"`
	Attendance AttendanceRecord `json:"attendance"`
	Hours      HourBreakdown    `json:"hours"`
	Statistics PacingStatistics `json:"statistics"`
	Months     []MonthRecord    `json:"months"`
	Config     CourseConfig     `json:"config"`
	ExportedAt time.Time        `json:"exportedAt"`
	Version    string           `json:"version"`
}

// ExportFileName はエクスポートファイル名 (日付入り)
func ExportFileName(t time.Time) string {
	return "course-progress-" + t.Format(DateLayout) + ".json"
}
