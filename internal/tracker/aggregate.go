package tracker

import (
	"math"
	"time"

	"go_course_tracker/internal/model"
)

const day = 24 * time.Hour

// Totals は台帳の合計を計算する。LastUpdated は呼び出し側で設定する
func Totals(l model.Ledger) model.DerivedTotals {
	var t model.DerivedTotals
	for _, m := range l {
		t.TotalDays += m.AvailableDays
		t.CompletedDays += m.CompletedDays
	}
	return t
}

// Recompute は合計と更新時刻をまとめて計算する
func Recompute(l model.Ledger, now time.Time) model.DerivedTotals {
	t := Totals(l)
	t.LastUpdated = now
	return t
}

// Hours は完了日数を時間に換算する
func Hours(cfg model.CourseConfig, completed int) model.HourBreakdown {
	done := float64(completed) * cfg.HoursPerDay
	return model.HourBreakdown{
		Total:     cfg.TotalCourseHours,
		Completed: done,
		Remaining: cfg.TotalCourseHours - done,
	}
}

// Pacing は開始日からの経過日数と完了日数からペースを出す
func Pacing(now time.Time, cfg model.CourseConfig, completed int) model.PacingStatistics {
	elapsed := int(math.Floor(float64(now.Sub(cfg.CourseStart.Time)) / float64(day)))
	if elapsed < 1 {
		elapsed = 1
	}
	ratio := float64(completed) / float64(elapsed)

	stats := model.PacingStatistics{
		DaysElapsed:     elapsed,
		Efficiency:      int(model.RoundHalfUp(ratio * 100)),
		WeeklyRate:      model.RoundHalfUp(ratio*7*10) / 10,
		ProjectedFinish: cfg.ProjectedEnd,
	}
	weeklyHours := cfg.HoursPerDay * float64(cfg.WorkingDaysPerWeek)
	if weeklyHours > 0 {
		left := cfg.TotalCourseHours - float64(completed)*cfg.HoursPerDay
		stats.WeeksRemaining = int(math.Ceil(left / weeklyHours))
	}
	return stats
}

// RemainingInYear は CurrentYear 中であれば、TermStart の月から12月までの残り容量を返す
func RemainingInYear(l model.Ledger, cfg model.CourseConfig, now time.Time) int {
	if now.Year() != cfg.CurrentYear || cfg.TermStart.IsZero() {
		return 0
	}
	left := 0
	for i := int(cfg.TermStart.Month()) - 1; i < len(l); i++ {
		left += max(0, l[i].Remaining())
	}
	return left
}

// Summarize は画面とエクスポートで使う集計をまとめる
func Summarize(l model.Ledger, cfg model.CourseConfig, att model.AttendanceRecord, totals model.DerivedTotals, now time.Time) model.Summary {
	return model.Summary{
		Totals:          totals,
		RemainingDays:   totals.RemainingDays(),
		PercentComplete: totals.PercentComplete(),
		RemainingInYear: RemainingInYear(l, cfg, now),
		Hours:           Hours(cfg, totals.CompletedDays),
		Pacing:          Pacing(now, cfg, totals.CompletedDays),
		Attendance:      att,
		Rating:          att.Rating(),
	}
}

// 月ごとの表示用ステータス
const (
	MonthCompleted  = "Completed"
	MonthInProgress = "In Progress"
	MonthNotStarted = "Not Started"
)

// MonthPercent は月の完了率。授業日がなければ 0
func MonthPercent(m model.MonthRecord) int {
	if m.AvailableDays <= 0 {
		return 0
	}
	return int(model.RoundHalfUp(float64(m.CompletedDays) / float64(m.AvailableDays) * 100))
}

func MonthStatus(m model.MonthRecord) string {
	switch p := MonthPercent(m); {
	case p == 100:
		return MonthCompleted
	case p > 0:
		return MonthInProgress
	default:
		return MonthNotStarted
	}
}
