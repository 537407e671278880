package tracker

import (
	"math"

	"go_course_tracker/internal/model"
)

// Frequency は欠席時間から出席率を計算する (0 未満にはしない)
func Frequency(cfg model.CourseConfig, missedHours float64) float64 {
	if cfg.TotalCourseHours <= 0 {
		return 0
	}
	return math.Max(0, (cfg.TotalCourseHours-missedHours)/cfg.TotalCourseHours*100)
}

// RecordAbsence は欠席時間を加算し、出席率と Status を一緒に更新する
func RecordAbsence(att model.AttendanceRecord, cfg model.CourseConfig, hours float64) model.AttendanceRecord {
	if hours < 0 {
		hours = 0
	}
	missed := att.TotalMissedHours + hours
	return model.NewAttendanceRecord(Frequency(cfg, missed), missed)
}

// RecomputeAttendance はコース時間が変わったときに出席率を計算し直す
func RecomputeAttendance(att model.AttendanceRecord, cfg model.CourseConfig) model.AttendanceRecord {
	return model.NewAttendanceRecord(Frequency(cfg, att.TotalMissedHours), att.TotalMissedHours)
}
