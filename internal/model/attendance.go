// internal/model/attendance.go
package model

const (
	StatusInProgress = "In Progress"
	StatusBehind     = "Behind"

	// MinimumFrequency を下回ると Behind
	MinimumFrequency = 75.0
	// GoodFrequency 以上なら評価は Good
	GoodFrequency = 80.0
)

// AttendanceRecord は欠席時間の累計と出席率
// Status は FrequencyPercent と必ず同時に更新する
type AttendanceRecord struct {
	FrequencyPercent float64 `json:"frequencyPercent"`
	TotalMissedHours float64 `json:"totalMissedHours"`
	Status           string  `json:"status"`
}

// NewAttendanceRecord は出席率から Status を決めて記録を作る
func NewAttendanceRecord(frequency, missedHours float64) AttendanceRecord {
	return AttendanceRecord{
		FrequencyPercent: frequency,
		TotalMissedHours: missedHours,
		Status:           StatusFor(frequency),
	}
}

func StatusFor(frequency float64) string {
	if frequency < MinimumFrequency {
		return StatusBehind
	}
	return StatusInProgress
}

// FrequencyRating は画面表示用の出席率の評価
type FrequencyRating struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
	Alert  bool   `json:"alert"`
}

func (a AttendanceRecord) Rating() FrequencyRating {
	switch {
	case a.FrequencyPercent >= GoodFrequency:
		return FrequencyRating{Label: "Good", Detail: "Attendance is adequate"}
	case a.FrequencyPercent >= MinimumFrequency:
		return FrequencyRating{Label: "Attention", Detail: "Attendance is close to the minimum", Alert: true}
	default:
		return FrequencyRating{Label: "Critical", Detail: "Attendance is below the minimum", Alert: true}
	}
}
