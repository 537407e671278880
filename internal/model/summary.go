// internal/model/summary.go
package model

import (
	"math"
	"time"
)

// DerivedTotals は台帳から計算するキャッシュ。直接設定しない
type DerivedTotals struct {
	TotalDays     int       `json:"totalDays"`
	CompletedDays int       `json:"completedDays"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

func (t DerivedTotals) RemainingDays() int {
	return t.TotalDays - t.CompletedDays
}

// PercentComplete は完了率 (四捨五入)。TotalDays が 0 なら 0
func (t DerivedTotals) PercentComplete() int {
	if t.TotalDays <= 0 {
		return 0
	}
	return int(RoundHalfUp(float64(t.CompletedDays) / float64(t.TotalDays) * 100))
}

// HourBreakdown は時間換算の内訳
type HourBreakdown struct {
	Total     float64 `json:"total"`
	Completed float64 `json:"completed"`
	Remaining float64 `json:"remaining"`
}

// PacingStatistics は経過日数と完了日数から出す進捗ペース
// WeeksRemaining は予定時間を超えていれば負になる
type PacingStatistics struct {
	DaysElapsed     int     `json:"daysElapsed"`
	Efficiency      int     `json:"efficiency"`
	WeeklyRate      float64 `json:"weeklyRate"`
	WeeksRemaining  int     `json:"weeksRemaining"`
	ProjectedFinish Date    `json:"projectedFinish"`
}

// Summary は画面・API・エクスポートで共有する集計結果
type Summary struct {
	Totals          DerivedTotals    `json:"totals"`
	RemainingDays   int              `json:"remainingDays"`
	PercentComplete int              `json:"percentComplete"`
	RemainingInYear int              `json:"remainingInYear"`
	Hours           HourBreakdown    `json:"hours"`
	Pacing          PacingStatistics `json:"pacing"`
	Attendance      AttendanceRecord `json:"attendance"`
	Rating          FrequencyRating  `json:"rating"`
}

// Snapshot は現在の状態一式
type Snapshot struct {
	Months     Ledger           `json:"months"`
	Config     CourseConfig     `json:"config"`
	Attendance AttendanceRecord `json:"attendance"`
	Summary    Summary          `json:"summary"`
}

// RoundHalfUp は .5 を切り上げる (負の値は 0 に近い方へ)
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
