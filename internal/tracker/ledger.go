// Package tracker は台帳と出席記録に対する純粋な操作を提供する。
// どの関数も引数の値を書き換えず、新しい値を返す。
package tracker

import (
	"fmt"

	"go_course_tracker/internal/model"
)

// AddOutcome は AddDays の結果
type AddOutcome struct {
	Added       int
	Unfulfilled int
}

// CompleteDay は指定した月の完了日数を 1 増やす。月が埋まっていれば ErrCapacityExceeded
func CompleteDay(l model.Ledger, index int) (model.Ledger, error) {
	if !model.ValidIndex(index) {
		return l, fmt.Errorf("month index %d: %w", index, model.ErrInvalidInput)
	}
	if l[index].CompletedDays >= l[index].AvailableDays {
		return l, fmt.Errorf("%s is already complete: %w", l[index].Name, model.ErrCapacityExceeded)
	}
	l[index].CompletedDays++
	return l, nil
}

// AddDays は1月から順に各月の残り容量を埋めていく
func AddDays(l model.Ledger, count int) (model.Ledger, AddOutcome) {
	remaining := count
	var out AddOutcome
	for i := range l {
		if remaining <= 0 {
			break
		}
		add := min(l[i].Remaining(), remaining)
		if add > 0 {
			l[i].CompletedDays += add
			remaining -= add
			out.Added += add
		}
	}
	if remaining > 0 {
		out.Unfulfilled = remaining
	}
	return l, out
}

// RemoveDays は12月から逆順に完了日数を減らす。減らした日数を返す
func RemoveDays(l model.Ledger, count int) (model.Ledger, int) {
	remaining := count
	removed := 0
	for i := len(l) - 1; i >= 0 && remaining > 0; i-- {
		take := min(l[i].CompletedDays, remaining)
		if take > 0 {
			l[i].CompletedDays -= take
			remaining -= take
			removed += take
		}
	}
	return l, removed
}

// SetCompletedTotal は完了日数の合計を target にする
// 差分に応じて AddDays か RemoveDays を使う。範囲外は ErrInvalidInput
func SetCompletedTotal(l model.Ledger, target int) (model.Ledger, int, error) {
	totals := Totals(l)
	if target < 0 || target > totals.TotalDays {
		return l, 0, fmt.Errorf("total must be between 0 and %d, got %d: %w", totals.TotalDays, target, model.ErrInvalidInput)
	}
	delta := target - totals.CompletedDays
	switch {
	case delta > 0:
		next, out := AddDays(l, delta)
		return next, out.Added, nil
	case delta < 0:
		next, removed := RemoveDays(l, -delta)
		return next, -removed, nil
	default:
		return l, 0, nil
	}
}

// SetMonthCapacity は月の授業日数を変える
// 完了日数は新しい容量まで切り下げるだけで、増やすことはない
func SetMonthCapacity(l model.Ledger, index, available int) (model.Ledger, error) {
	if !model.ValidIndex(index) {
		return l, fmt.Errorf("month index %d: %w", index, model.ErrInvalidInput)
	}
	if available < 0 {
		available = 0
	}
	l[index].AvailableDays = available
	if l[index].CompletedDays > available {
		l[index].CompletedDays = available
	}
	return l, nil
}

func ClearMonth(l model.Ledger, index int) (model.Ledger, error) {
	if !model.ValidIndex(index) {
		return l, fmt.Errorf("month index %d: %w", index, model.ErrInvalidInput)
	}
	l[index].CompletedDays = 0
	return l, nil
}

func ResetProgress(l model.Ledger) model.Ledger {
	for i := range l {
		l[i].CompletedDays = 0
	}
	return l
}

func ToggleEditMonth(l model.Ledger, index int) (model.Ledger, error) {
	if !model.ValidIndex(index) {
		return l, fmt.Errorf("month index %d: %w", index, model.ErrInvalidInput)
	}
	l[index].Editing = !l[index].Editing
	return l, nil
}

// ToggleEditAll は全月が編集中なら全解除、そうでなければ全月を編集中にする
func ToggleEditAll(l model.Ledger) model.Ledger {
	all := true
	for _, m := range l {
		if !m.Editing {
			all = false
			break
		}
	}
	for i := range l {
		l[i].Editing = !all
	}
	return l
}

// Sanitize は保存データから読んだ台帳を不変条件に戻す
// 月名は固定ラベルに置き換える
func Sanitize(l model.Ledger) model.Ledger {
	for i := range l {
		l[i].Name = model.MonthNames[i]
		if l[i].AvailableDays < 0 {
			l[i].AvailableDays = 0
		}
		if l[i].CompletedDays < 0 {
			l[i].CompletedDays = 0
		}
		if l[i].CompletedDays > l[i].AvailableDays {
			l[i].CompletedDays = l[i].AvailableDays
		}
	}
	return l
}
