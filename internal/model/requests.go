// internal/model/requests.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumericInput は数値でも文字列でも受け付ける入力値 (プロンプトの入力など)
// 解釈は呼び出し側の変換関数に任せる
type NumericInput string

func (n *NumericInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("numeric input: %w", ErrInvalidInput)
	}
	*n = NumericInput(num.String())
	return nil
}

// DayCountRequest は日数の追加・削除
type DayCountRequest struct {
	Count NumericInput `json:"count"`
}

// SetTotalRequest は完了日数の合計を直接指定する
type SetTotalRequest struct {
	Total NumericInput `json:"total"`
}

// MonthCapacityRequest は月の授業日数の変更
type MonthCapacityRequest struct {
	AvailableDays NumericInput `json:"availableDays"`
}

// AbsenceRequest は欠席時間の記録
type AbsenceRequest struct {
	Hours NumericInput `json:"hours"`
}

// UpdateConfigRequest は設定フォーム。0 や未指定はデフォルトに戻す
type UpdateConfigRequest struct {
	TotalCourseHours   *float64 `json:"totalCourseHours" validate:"omitempty,gte=0,lte=100000"`
	HoursPerDay        *float64 `json:"hoursPerDay" validate:"omitempty,gte=0,lte=24"`
	WorkingDaysPerWeek *int     `json:"workingDaysPerWeek" validate:"omitempty,gte=0,lte=7"`
	AbsenceImpact      *float64 `json:"absenceImpact" validate:"omitempty,gte=0"`
	CourseStart        *string  `json:"courseStart" validate:"omitempty,datetime=2006-01-02"`
	ProjectedEnd       *string  `json:"projectedEnd" validate:"omitempty,datetime=2006-01-02"`
}
