// internal/model/course.go
package model

import "time"

// CourseConfig はすべての計算の入力になるコースのパラメータ
type CourseConfig struct {
	TotalCourseHours   float64 `json:"totalCourseHours"`
	HoursPerDay        float64 `json:"hoursPerDay"`
	WorkingDaysPerWeek int     `json:"workingDaysPerWeek"`
	AbsenceImpact      float64 `json:"absenceImpact"` // 保存するだけで計算には使わない
	CourseStart        Date    `json:"courseStart"`
	ProjectedEnd       Date    `json:"projectedEnd"`
	CurrentYear        int     `json:"currentYear"`
	TermStart          Date    `json:"termStart"`
}

func DefaultCourseConfig() CourseConfig {
	return CourseConfig{
		TotalCourseHours:   1200,
		HoursPerDay:        4,
		WorkingDaysPerWeek: 5,
		AbsenceImpact:      0.25,
		CourseStart:        NewDate(2025, time.January, 1, time.Local),
		ProjectedEnd:       NewDate(2026, time.February, 12, time.Local),
		CurrentYear:        2025,
		TermStart:          NewDate(2025, time.November, 3, time.Local),
	}
}
