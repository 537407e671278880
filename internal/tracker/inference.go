package tracker

import (
	"time"

	"go_course_tracker/internal/model"
)

// CountWeekdays は from から to までの月〜金の日数 (両端を含む)
func CountWeekdays(from, to model.Date) int {
	if to.Before(from.Time) {
		return 0
	}
	count := 0
	for d := from.Time; !d.After(to.Time); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// InferProgress は TermStart から今日までの平日数で TermStart の月の完了日数を引き上げる
// 下げることはなく、同じ now で何度実行しても結果は変わらない
// 変更があれば true を返す
func InferProgress(l model.Ledger, cfg model.CourseConfig, now time.Time) (model.Ledger, bool) {
	if cfg.TermStart.IsZero() || now.Year() != cfg.CurrentYear {
		return l, false
	}
	today := model.DateOf(now.In(cfg.TermStart.Location()))
	if today.Before(cfg.TermStart.Time) {
		return l, false
	}
	idx := int(cfg.TermStart.Month()) - 1
	inferred := CountWeekdays(cfg.TermStart, today)
	if inferred <= l[idx].CompletedDays {
		return l, false
	}
	next := min(inferred, l[idx].AvailableDays)
	if next <= l[idx].CompletedDays {
		return l, false
	}
	l[idx].CompletedDays = next
	return l, true
}
