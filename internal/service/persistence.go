package service

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/tracker"
)

// fingerprintLength は変更検知用ハッシュの桁数
const fingerprintLength = 16

// fingerprint は台帳と設定から変更検知用の文字列を作る
func fingerprint(l model.Ledger, cfg model.CourseConfig) (string, error) {
	months, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	config, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(append(months, config...))
	return hex.EncodeToString(sum[:])[:fingerprintLength], nil
}

// encodeDocument は現在のバージョンでドキュメントを作り、JSONにする
func encodeDocument(l model.Ledger, cfg model.CourseConfig, att model.AttendanceRecord, now time.Time) (model.Document, string, error) {
	fp, err := fingerprint(l, cfg)
	if err != nil {
		return model.Document{}, "", fmt.Errorf("fingerprint: %w", err)
	}
	doc := model.Document{
		Months:     l,
		Config:     cfg,
		Attendance: att,
		Metadata: model.Metadata{
			Version:     model.CurrentSchemaVersion,
			LastUpdated: now,
			Fingerprint: fp,
		},
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return model.Document{}, "", fmt.Errorf("encode document: %w", err)
	}
	return doc, string(payload), nil
}

// 保存データは現在のキーと旧形式のキーのどちらでも読めるようにしておく
// 知らないキーは捨てる

type storedMonth struct {
	AvailableDays *float64 `json:"availableDays"`
	CompletedDays *float64 `json:"completedDays"`
	Editing       *bool    `json:"editing"`

	Dias       *float64 `json:"dias"`
	Concluidos *float64 `json:"concluidos"`
	Editando   *bool    `json:"editando"`
}

type storedConfig struct {
	TotalCourseHours   *float64 `json:"totalCourseHours"`
	HoursPerDay        *float64 `json:"hoursPerDay"`
	WorkingDaysPerWeek *float64 `json:"workingDaysPerWeek"`
	AbsenceImpact      *float64 `json:"absenceImpact"`
	CourseStart        *string  `json:"courseStart"`
	ProjectedEnd       *string  `json:"projectedEnd"`
	CurrentYear        *float64 `json:"currentYear"`
	TermStart          *string  `json:"termStart"`

	HorasCurso         *float64 `json:"HORAS_CURSO"`
	HorasPorDia        *float64 `json:"HORAS_POR_DIA"`
	DiasPorSemana      *float64 `json:"DIAS_POR_SEMANA"`
	ImpactoPorFalta    *float64 `json:"IMPACTO_POR_FALTA"`
	InicioCurso        *string  `json:"INICIO_CURSO"`
	PrevisaoTermino    *string  `json:"PREVISAO_TERMINO"`
	AnoAtual           *float64 `json:"ANO_ATUAL"`
	DataInicioNovembro *string  `json:"DATA_INICIO_NOVEMBRO"`
}

type storedAttendance struct {
	FrequencyPercent *float64 `json:"frequencyPercent"`
	TotalMissedHours *float64 `json:"totalMissedHours"`

	Frequencia       *float64 `json:"frequencia"`
	TotalFaltasHoras *float64 `json:"totalFaltasHoras"`
}

type storedMetadata struct {
	Version string `json:"version"`
	Versao  string `json:"versao"`
}

type storedDocument struct {
	Months     []storedMonth     `json:"months"`
	Meses      []storedMonth     `json:"meses"`
	Config     *storedConfig     `json:"config"`
	Attendance *storedAttendance `json:"attendance"`
	Presenca   *storedAttendance `json:"presenca"`
	Metadata   *storedMetadata   `json:"metadata"`
}

// decodeDocument は保存データを base の上に読み込む
// バージョンが現在のものでなければ migrated を true にする
func decodeDocument(payload string, base model.Document) (doc model.Document, migrated bool, err error) {
	var stored storedDocument
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return base, false, fmt.Errorf("decode document: %w", err)
	}

	doc = base
	months := stored.Months
	if months == nil {
		months = stored.Meses
	}
	for i, m := range months {
		if i >= model.MonthsInLedger {
			break
		}
		if v := firstFloat(m.AvailableDays, m.Dias); v != nil {
			doc.Months[i].AvailableDays = int(*v)
		}
		if v := firstFloat(m.CompletedDays, m.Concluidos); v != nil {
			doc.Months[i].CompletedDays = int(*v)
		}
		if m.Editing != nil {
			doc.Months[i].Editing = *m.Editing
		} else if m.Editando != nil {
			doc.Months[i].Editing = *m.Editando
		}
	}
	doc.Months = tracker.Sanitize(doc.Months)

	if stored.Config != nil {
		doc.Config = mergeConfig(doc.Config, *stored.Config)
	}

	att := stored.Attendance
	if att == nil {
		att = stored.Presenca
	}
	if att != nil {
		freq := doc.Attendance.FrequencyPercent
		missed := doc.Attendance.TotalMissedHours
		if v := firstFloat(att.FrequencyPercent, att.Frequencia); v != nil {
			freq = *v
		}
		if v := firstFloat(att.TotalMissedHours, att.TotalFaltasHoras); v != nil {
			missed = *v
		}
		// 旧形式の状態ラベルは読まず、出席率から付け直す
		doc.Attendance = model.NewAttendanceRecord(freq, missed)
	}

	migrated = stored.Metadata == nil ||
		(stored.Metadata.Version != model.CurrentSchemaVersion && stored.Metadata.Versao != model.CurrentSchemaVersion)
	return doc, migrated, nil
}

// mergeConfig は保存された値のうち正のものだけを採用する
// 日付が読めなければ元の値のまま
func mergeConfig(cfg model.CourseConfig, s storedConfig) model.CourseConfig {
	loc := cfg.CourseStart.Location()

	if v := firstFloat(s.TotalCourseHours, s.HorasCurso); v != nil && *v > 0 {
		cfg.TotalCourseHours = *v
	}
	if v := firstFloat(s.HoursPerDay, s.HorasPorDia); v != nil && *v > 0 {
		cfg.HoursPerDay = *v
	}
	if v := firstFloat(s.WorkingDaysPerWeek, s.DiasPorSemana); v != nil && *v > 0 {
		cfg.WorkingDaysPerWeek = int(*v)
	}
	if v := firstFloat(s.AbsenceImpact, s.ImpactoPorFalta); v != nil && *v > 0 {
		cfg.AbsenceImpact = *v
	}
	if v := firstFloat(s.CurrentYear, s.AnoAtual); v != nil && *v > 0 {
		cfg.CurrentYear = int(*v)
	}
	cfg.CourseStart = mergeDate(cfg.CourseStart, loc, s.CourseStart, s.InicioCurso)
	cfg.ProjectedEnd = mergeDate(cfg.ProjectedEnd, loc, s.ProjectedEnd, s.PrevisaoTermino)
	cfg.TermStart = mergeDate(cfg.TermStart, loc, s.TermStart, s.DataInicioNovembro)
	return cfg
}

func mergeDate(current model.Date, loc *time.Location, values ...*string) model.Date {
	for _, v := range values {
		if v == nil || *v == "" {
			continue
		}
		if d, err := model.ParseDate(*v, loc); err == nil {
			return d
		}
	}
	return current
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
