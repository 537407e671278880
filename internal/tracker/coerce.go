package tracker

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go_course_tracker/internal/model"
)

const (
	// DefaultDayCount は日数入力が不正なときの値
	DefaultDayCount = 1
	// DefaultAbsenceHours は欠席時間の入力が不正なときの値
	DefaultAbsenceHours = 4.0
	// MaxMonthCapacity は1か月に設定できる授業日数の上限
	MaxMonthCapacity = 31
)

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// parseLeadingInt は先頭の整数部分だけを読む ("12 days" -> 12, "3.9" -> 3)
func parseLeadingInt(raw string) (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CoerceDayCount は 1 以上の整数に変換する。不正なら DefaultDayCount
func CoerceDayCount(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 1 {
		return DefaultDayCount
	}
	return n
}

// CoerceAbsenceHours は 0 以上の小数に変換する。不正または負なら DefaultAbsenceHours
func CoerceAbsenceHours(raw string) float64 {
	h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return DefaultAbsenceHours
	}
	return h
}

// CoerceCapacity は 0..MaxMonthCapacity に収める。数値でなければ 0
func CoerceCapacity(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 0 {
		return 0
	}
	if n > MaxMonthCapacity {
		return MaxMonthCapacity
	}
	return n
}

// ParseTarget は完了日数の合計指定を読む。数値でなければ ErrInvalidInput
func ParseTarget(raw string) (int, error) {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return 0, fmt.Errorf("total %q is not a number: %w", raw, model.ErrInvalidInput)
	}
	return n, nil
}
