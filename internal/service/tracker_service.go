// internal/service/tracker_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go_course_tracker/internal/middleware"
	"go_course_tracker/internal/model"
	"go_course_tracker/internal/repository"
	"go_course_tracker/internal/tracker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackerService は状態を一つだけ持つコントローラ
// 変更に成功した操作は再計算と保存をちょうど1回ずつ行う
type TrackerService interface {
	Init(ctx context.Context) (*model.CommandResult, error)
	Load(ctx context.Context) (*model.CommandResult, error)
	Snapshot(ctx context.Context) model.Snapshot
	CompleteToday(ctx context.Context) (*model.CommandResult, error)
	AddDays(ctx context.Context, count string) (*model.CommandResult, error)
	RemoveDays(ctx context.Context, count string) (*model.CommandResult, error)
	SetTotal(ctx context.Context, total string) (*model.CommandResult, error)
	SetMonthCapacity(ctx context.Context, index int, availableDays string) (*model.CommandResult, error)
	ClearMonth(ctx context.Context, index int) (*model.CommandResult, error)
	ToggleEditMonth(ctx context.Context, index int) (*model.CommandResult, error)
	ToggleEditAll(ctx context.Context) (*model.CommandResult, error)
	ResetAll(ctx context.Context) (*model.CommandResult, error)
	RecordAbsence(ctx context.Context, hours string) (*model.CommandResult, error)
	ResetAttendance(ctx context.Context) (*model.CommandResult, error)
	UpdateConfiguration(ctx context.Context, req *model.UpdateConfigRequest) (*model.CommandResult, error)
	InferProgress(ctx context.Context) (*model.CommandResult, error)
	Export(ctx context.Context) model.ExportReport
}

// Settings は起動時に決まる初期値
type Settings struct {
	StorageKey string
	Course     model.CourseConfig
	Baseline   model.AttendanceRecord
	Ledger     model.Ledger
}

type trackerService struct {
	db   *gorm.DB
	repo repository.StateRepository
	now  func() time.Time

	mu         sync.Mutex
	storageKey string
	defaults   model.CourseConfig
	baseline   model.AttendanceRecord
	ledger     model.Ledger
	cfg        model.CourseConfig
	attendance model.AttendanceRecord
	totals     model.DerivedTotals
}

// NewTrackerService は設定の初期値で状態を作る。保存データの読み込みは Init で行う
func NewTrackerService(db *gorm.DB, repo repository.StateRepository, settings Settings, now func() time.Time) TrackerService {
	if now == nil {
		now = time.Now
	}
	ledger := settings.Ledger
	if ledger == (model.Ledger{}) {
		ledger = model.DefaultLedger()
	}
	s := &trackerService{
		db:         db,
		repo:       repo,
		now:        now,
		storageKey: settings.StorageKey,
		defaults:   settings.Course,
		baseline:   settings.Baseline,
		ledger:     tracker.Sanitize(ledger),
		cfg:        settings.Course,
		attendance: settings.Baseline,
	}
	s.totals = tracker.Recompute(s.ledger, s.clock())
	return s
}

// clock は設定のタイムゾーンでの現在時刻
func (s *trackerService) clock() time.Time {
	return s.now().In(s.cfg.CourseStart.Location())
}

// Init は保存データを読み込み、進捗を推定してから保存する
func (s *trackerService) Init(ctx context.Context) (*model.CommandResult, error) {
	logger := middleware.GetLogger(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &model.CommandResult{}
	s.loadWithNotice(ctx, result)

	now := s.clock()
	if next, changed := tracker.InferProgress(s.ledger, s.cfg, now); changed {
		idx := int(s.cfg.TermStart.Month()) - 1
		logger.Info("Progress inferred from term start",
			"month", s.ledger[idx].Name,
			"from", s.ledger[idx].CompletedDays,
			"to", next[idx].CompletedDays,
		)
		s.ledger = next
		result.Notify(model.LevelInfo, fmt.Sprintf("%s progress updated from the term start date.", next[idx].Name))
	}

	s.commit(ctx, result)
	return result, nil
}

// Load は保存データを読むだけで、推定も保存もしない
func (s *trackerService) Load(ctx context.Context) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &model.CommandResult{}
	s.loadWithNotice(ctx, result)
	s.totals = tracker.Recompute(s.ledger, s.clock())
	return s.unchanged(result), nil
}

func (s *trackerService) loadWithNotice(ctx context.Context, result *model.CommandResult) {
	logger := middleware.GetLogger(ctx)
	err := s.load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound):
		logger.Info("No saved state found, starting from defaults", "storage_key", s.storageKey)
		result.Notify(model.LevelInfo, "No saved data found. Starting from the default calendar.")
	default:
		logger.Warn("Failed to load saved state, starting from defaults", "storage_key", s.storageKey, "error", err)
		result.Notify(model.LevelWarning, "Saved data could not be read. Starting from the default calendar.")
	}
}

// load は保存データを状態に反映する。失敗したら状態は変えない
func (s *trackerService) load(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)

	stored, err := s.repo.FindByKey(ctx, s.db, s.storageKey)
	if err != nil {
		return err
	}
	base := model.Document{Months: s.ledger, Config: s.cfg, Attendance: s.attendance}
	doc, migrated, err := decodeDocument(stored.Payload, base)
	if err != nil {
		return err
	}
	s.ledger = doc.Months
	s.cfg = doc.Config
	s.attendance = doc.Attendance
	if migrated {
		// 読み込み後の commit で現在のバージョンとして保存し直される
		logger.Info("Migrated saved state to the current version",
			"storage_key", s.storageKey,
			"from_version", stored.Version,
			"to_version", model.CurrentSchemaVersion,
		)
	}
	return nil
}

// commit は合計を再計算して保存し、結果にスナップショットを入れる
// 保存に失敗してもメモリ上の状態はそのまま使う
func (s *trackerService) commit(ctx context.Context, result *model.CommandResult) {
	now := s.clock()
	s.totals = tracker.Recompute(s.ledger, now)

	if err := s.save(ctx, now); err != nil {
		middleware.GetLogger(ctx).Error("Failed to persist state",
			slog.String("storage_key", s.storageKey),
			slog.Any("error", err),
		)
		result.Persisted = false
		result.Notify(model.LevelWarning, "Changes could not be saved. They will be lost when the tracker restarts.")
	} else {
		result.Persisted = true
	}
	result.Snapshot = s.snapshot(now)
}

func (s *trackerService) save(ctx context.Context, now time.Time) error {
	doc, payload, err := encodeDocument(s.ledger, s.cfg, s.attendance, now)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceFailure, err)
	}
	state := &model.StoredState{
		StorageKey:  s.storageKey,
		Version:     doc.Metadata.Version,
		Fingerprint: doc.Metadata.Fingerprint,
		Payload:     payload,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, s.db, state); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceFailure, err)
	}
	return nil
}

// unchanged は変更がなかった操作の結果。保存はしない
func (s *trackerService) unchanged(result *model.CommandResult) *model.CommandResult {
	result.Persisted = false
	result.Snapshot = s.snapshot(s.clock())
	return result
}

func (s *trackerService) snapshot(now time.Time) model.Snapshot {
	return model.Snapshot{
		Months:     s.ledger,
		Config:     s.cfg,
		Attendance: s.attendance,
		Summary:    tracker.Summarize(s.ledger, s.cfg, s.attendance, s.totals, now),
	}
}

func (s *trackerService) Snapshot(ctx context.Context) model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(s.clock())
}

// CompleteToday は今日の月に1日を追加する
func (s *trackerService) CompleteToday(ctx context.Context) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(s.clock().Month()) - 1
	next, err := tracker.CompleteDay(s.ledger, idx)
	if err != nil {
		if errors.Is(err, model.ErrCapacityExceeded) {
			return nil, model.NewAppError("MONTH_COMPLETE",
				fmt.Sprintf("%s is already complete.", s.ledger[idx].Name), "", err)
		}
		return nil, err
	}
	s.ledger = next

	result := &model.CommandResult{Added: 1}
	result.Notify(model.LevelSuccess, fmt.Sprintf("Day completed in %s.", next[idx].Name))
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) AddDays(ctx context.Context, count string) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := tracker.CoerceDayCount(count)
	next, out := tracker.AddDays(s.ledger, n)
	result := &model.CommandResult{Added: out.Added, Unfulfilled: out.Unfulfilled}
	if out.Unfulfilled > 0 {
		middleware.GetLogger(ctx).Warn("Not enough capacity for requested days",
			"requested", n, "added", out.Added, "unfulfilled", out.Unfulfilled)
		result.Notify(model.LevelWarning, fmt.Sprintf("Only %d of %d days could be added. The calendar is full.", out.Added, n))
	}
	if out.Added == 0 {
		return s.unchanged(result), nil
	}
	s.ledger = next
	result.Notify(model.LevelSuccess, fmt.Sprintf("%d day(s) added.", out.Added))
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) RemoveDays(ctx context.Context, count string) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := tracker.RemoveDays(s.ledger, tracker.CoerceDayCount(count))
	result := &model.CommandResult{Removed: removed}
	if removed == 0 {
		result.Notify(model.LevelInfo, "There are no completed days to remove.")
		return s.unchanged(result), nil
	}
	s.ledger = next
	result.Notify(model.LevelWarning, fmt.Sprintf("%d day(s) removed.", removed))
	s.commit(ctx, result)
	return result, nil
}

// SetTotal は完了日数の合計を直接指定する
func (s *trackerService) SetTotal(ctx context.Context, total string) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invalid := func(err error) error {
		return model.NewAppError("INVALID_TOTAL",
			fmt.Sprintf("Total must be a whole number between 0 and %d.", s.totals.TotalDays), "total", err)
	}
	target, err := tracker.ParseTarget(total)
	if err != nil {
		return nil, invalid(err)
	}
	next, delta, err := tracker.SetCompletedTotal(s.ledger, target)
	if err != nil {
		return nil, invalid(err)
	}

	result := &model.CommandResult{}
	switch {
	case delta > 0:
		result.Added = delta
	case delta < 0:
		result.Removed = -delta
	}
	s.ledger = next
	result.Notify(model.LevelSuccess, fmt.Sprintf("Completed days set to %d.", target))
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) SetMonthCapacity(ctx context.Context, index int, availableDays string) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := tracker.SetMonthCapacity(s.ledger, index, tracker.CoerceCapacity(availableDays))
	if err != nil {
		return nil, invalidMonth(index, err)
	}
	s.ledger = next

	result := &model.CommandResult{}
	result.Notify(model.LevelSuccess, fmt.Sprintf("%s now has %d available day(s).", next[index].Name, next[index].AvailableDays))
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) ClearMonth(ctx context.Context, index int) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := tracker.ClearMonth(s.ledger, index)
	if err != nil {
		return nil, invalidMonth(index, err)
	}
	s.ledger = next

	result := &model.CommandResult{}
	result.Notify(model.LevelWarning, fmt.Sprintf("%s progress cleared.", next[index].Name))
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) ToggleEditMonth(ctx context.Context, index int) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := tracker.ToggleEditMonth(s.ledger, index)
	if err != nil {
		return nil, invalidMonth(index, err)
	}
	s.ledger = next

	result := &model.CommandResult{}
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) ToggleEditAll(ctx context.Context) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = tracker.ToggleEditAll(s.ledger)
	result := &model.CommandResult{}
	if s.ledger[0].Editing {
		result.Notify(model.LevelInfo, "All months are now editable.")
	} else {
		result.Notify(model.LevelInfo, "Editing finished for all months.")
	}
	s.commit(ctx, result)
	return result, nil
}

// ResetAll は進捗と出席記録を両方とも初期状態に戻す
func (s *trackerService) ResetAll(ctx context.Context) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = tracker.ResetProgress(s.ledger)
	s.attendance = s.baseline
	result := &model.CommandResult{}
	result.Notify(model.LevelWarning, "All progress has been reset.")
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) RecordAbsence(ctx context.Context, hours string) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := tracker.CoerceAbsenceHours(hours)
	s.attendance = tracker.RecordAbsence(s.attendance, s.cfg, h)

	result := &model.CommandResult{}
	level := model.LevelWarning
	if s.attendance.Status == model.StatusBehind {
		level = model.LevelDanger
	}
	result.Notify(level, fmt.Sprintf("%.2f hour(s) of absence recorded. Frequency is now %.2f%%.", h, s.attendance.FrequencyPercent))
	s.commit(ctx, result)
	return result, nil
}

func (s *trackerService) ResetAttendance(ctx context.Context) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attendance = s.baseline
	result := &model.CommandResult{}
	result.Notify(model.LevelSuccess, "Absences reset to the baseline.")
	s.commit(ctx, result)
	return result, nil
}

// UpdateConfiguration は設定フォームを反映する
// 未指定や 0 の数値はデフォルトに戻し、日付は未指定なら変えない
func (s *trackerService) UpdateConfiguration(ctx context.Context, req *model.UpdateConfigRequest) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := applyConfig(s.cfg, s.defaults, req)
	if err != nil {
		return nil, err
	}
	s.cfg = next
	s.attendance = tracker.RecomputeAttendance(s.attendance, s.cfg)

	result := &model.CommandResult{}
	result.Notify(model.LevelSuccess, "Settings saved.")
	s.commit(ctx, result)
	return result, nil
}

func applyConfig(cfg, defaults model.CourseConfig, req *model.UpdateConfigRequest) (model.CourseConfig, error) {
	if req == nil {
		return cfg, model.NewAppError("INVALID_CONFIG", "Settings are required.", "", model.ErrInvalidInput)
	}
	negative := func(field string) error {
		return model.NewAppError("INVALID_CONFIG", "Settings must not be negative.", field, model.ErrInvalidInput)
	}

	cfg.TotalCourseHours = defaults.TotalCourseHours
	if v := req.TotalCourseHours; v != nil {
		if *v < 0 {
			return cfg, negative("totalCourseHours")
		}
		if *v > 0 {
			cfg.TotalCourseHours = *v
		}
	}
	cfg.HoursPerDay = defaults.HoursPerDay
	if v := req.HoursPerDay; v != nil {
		if *v < 0 {
			return cfg, negative("hoursPerDay")
		}
		if *v > 0 {
			cfg.HoursPerDay = *v
		}
	}
	cfg.WorkingDaysPerWeek = defaults.WorkingDaysPerWeek
	if v := req.WorkingDaysPerWeek; v != nil {
		if *v < 0 {
			return cfg, negative("workingDaysPerWeek")
		}
		if *v > 0 {
			cfg.WorkingDaysPerWeek = *v
		}
	}
	cfg.AbsenceImpact = defaults.AbsenceImpact
	if v := req.AbsenceImpact; v != nil {
		if *v < 0 {
			return cfg, negative("absenceImpact")
		}
		if *v > 0 {
			cfg.AbsenceImpact = *v
		}
	}

	loc := cfg.CourseStart.Location()
	if v := req.CourseStart; v != nil && *v != "" {
		d, err := model.ParseDate(*v, loc)
		if err != nil {
			return cfg, model.NewAppError("INVALID_CONFIG", "Course start must be a date in the format YYYY-MM-DD.", "courseStart", err)
		}
		cfg.CourseStart = d
	}
	if v := req.ProjectedEnd; v != nil && *v != "" {
		d, err := model.ParseDate(*v, loc)
		if err != nil {
			return cfg, model.NewAppError("INVALID_CONFIG", "Projected end must be a date in the format YYYY-MM-DD.", "projectedEnd", err)
		}
		cfg.ProjectedEnd = d
	}
	if cfg.ProjectedEnd.Before(cfg.CourseStart.Time) {
		return cfg, model.NewAppError("INVALID_CONFIG", "Projected end must not be before the course start.", "projectedEnd", model.ErrInvalidInput)
	}
	return cfg, nil
}

// InferProgress は起動時と同じ推定を手動で実行する
func (s *trackerService) InferProgress(ctx context.Context) (*model.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := tracker.InferProgress(s.ledger, s.cfg, s.clock())
	result := &model.CommandResult{}
	if !changed {
		result.Notify(model.LevelInfo, "Progress is already up to date.")
		return s.unchanged(result), nil
	}
	idx := int(s.cfg.TermStart.Month()) - 1
	result.Added = next[idx].CompletedDays - s.ledger[idx].CompletedDays
	s.ledger = next
	result.Notify(model.LevelSuccess, fmt.Sprintf("%s progress updated from the term start date.", next[idx].Name))
	s.commit(ctx, result)
	return result, nil
}

// Export はダウンロード用のレポートを作る。状態は変えない
func (s *trackerService) Export(ctx context.Context) model.ExportReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	totals := tracker.Recompute(s.ledger, now)
	summary := tracker.Summarize(s.ledger, s.cfg, s.attendance, totals, now)
	return model.ExportReport{
		ExportID: uuid.New(),
		Progress: model.ProgressReport{
			TotalDays:       totals.TotalDays,
			CompletedDays:   totals.CompletedDays,
			RemainingDays:   summary.RemainingDays,
			PercentComplete: summary.PercentComplete,
		},
		Attendance: s.attendance,
		Hours:      summary.Hours,
		Statistics: summary.Pacing,
		Months:     s.ledger.NonEmpty(),
		Config:     s.cfg,
		ExportedAt: now,
		Version:    model.CurrentSchemaVersion,
	}
}

func invalidMonth(index int, err error) error {
	return model.NewAppError("INVALID_MONTH",
		fmt.Sprintf("Month index must be between 0 and %d, got %d.", model.MonthsInLedger-1, index), "index", err)
}
