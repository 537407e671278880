// Package view は状態を固定のHTMLテンプレートに描画する。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

// MonthCard は月ごとのカード
type MonthCard struct {
	Index   int
	Month   model.MonthRecord
	Percent int
	Status  string
}

// Page はテンプレートに渡す値
type Page struct {
	Snapshot model.Snapshot
	Cards    []MonthCard
	Rows     []MonthCard
}

type Dashboard struct {
	tmpl *template.Template
}

func NewDashboard() (*Dashboard, error) {
	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"fixed2":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"fixed1":     func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"statusSlug": statusSlug,
		"lower":      strings.ToLower,
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Dashboard{tmpl: tmpl}, nil
}

// NewPage はスナップショットから表示用の値を作る
// 表の行は授業日のある月だけ
func NewPage(snap model.Snapshot) Page {
	page := Page{Snapshot: snap}
	for i, m := range snap.Months {
		card := MonthCard{
			Index:   i,
			Month:   m,
			Percent: tracker.MonthPercent(m),
			Status:  tracker.MonthStatus(m),
		}
		page.Cards = append(page.Cards, card)
		if m.AvailableDays > 0 {
			page.Rows = append(page.Rows, card)
		}
	}
	return page
}

func (d *Dashboard) Render(w io.Writer, snap model.Snapshot) error {
	return d.tmpl.Execute(w, NewPage(snap))
}

func statusSlug(status string) string {
	switch status {
	case tracker.MonthCompleted:
		return "completed"
	case tracker.MonthInProgress:
		return "in-progress"
	default:
		return "not-started"
	}
}
