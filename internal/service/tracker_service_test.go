// internal/service/tracker_service_test.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testStorageKey = "course_progress_test"

// setupTestDB はサービスに渡すための *gorm.DB を用意する (DB操作はモックする)
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

func testCourse() model.CourseConfig {
	return model.CourseConfig{
		TotalCourseHours:   1200,
		HoursPerDay:        4,
		WorkingDaysPerWeek: 5,
		AbsenceImpact:      0.25,
		CourseStart:        model.NewDate(2025, time.January, 1, time.UTC),
		ProjectedEnd:       model.NewDate(2026, time.February, 12, time.UTC),
		CurrentYear:        2025,
		TermStart:          model.NewDate(2025, time.November, 3, time.UTC),
	}
}

func testSettings() Settings {
	return Settings{
		StorageKey: testStorageKey,
		Course:     testCourse(),
		Baseline:   model.NewAttendanceRecord(81.91, 217),
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// 2025-11-19 (水) は TermStart から13平日目
var nov19 = time.Date(2025, time.November, 19, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, settings Settings, now time.Time) (TrackerService, *mocks.StateRepository) {
	t.Helper()
	repo := mocks.NewStateRepository(t)
	return NewTrackerService(setupTestDB(), repo, settings, fixedClock(now)), repo
}

func TestTrackerService_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 保存データがなければデフォルトから推定して保存", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)

		repo.On("FindByKey", mock.Anything, mock.Anything, testStorageKey).Return(nil, model.ErrNotFound).Once()
		var saved *model.StoredState
		repo.On("Upsert", mock.Anything, mock.Anything, mock.AnythingOfType("*model.StoredState")).
			Run(func(args mock.Arguments) { saved = args.Get(2).(*model.StoredState) }).
			Return(nil).Once()

		result, err := svc.Init(ctx)
		require.NoError(t, err)

		assert.True(t, result.Persisted)
		assert.Equal(t, 13, result.Snapshot.Months[10].CompletedDays)
		assert.Equal(t, 13, result.Snapshot.Summary.Totals.CompletedDays)
		assert.Equal(t, 55, result.Snapshot.Summary.Totals.TotalDays)
		require.Len(t, result.Notifications, 2)
		assert.Equal(t, model.LevelInfo, result.Notifications[0].Level)

		require.NotNil(t, saved)
		assert.Equal(t, testStorageKey, saved.StorageKey)
		assert.Equal(t, model.CurrentSchemaVersion, saved.Version)
		assert.Len(t, saved.Fingerprint, 16)
	})

	t.Run("正常系: 旧形式のデータは移行して保存し直す", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)

		legacy := `{"meses":[{"nome":"Janeiro","dias":15,"concluidos":15},{"nome":"Fevereiro","dias":9,"concluidos":9},
			{},{},{},{},{},{},{},{"dias":4,"concluidos":4},{"dias":17,"concluidos":15},{"dias":10,"concluidos":0}],
			"presenca":{"frequencia":81.91,"totalFaltasHoras":217,"situacao":"Em Progresso"}}`
		repo.On("FindByKey", mock.Anything, mock.Anything, testStorageKey).
			Return(&model.StoredState{StorageKey: testStorageKey, Payload: legacy}, nil).Once()
		var saved *model.StoredState
		repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(2).(*model.StoredState) }).
			Return(nil).Once()

		result, err := svc.Init(ctx)
		require.NoError(t, err)

		assert.Equal(t, 15, result.Snapshot.Months[10].CompletedDays, "推定値(13)より大きい値は下げない")
		assert.Equal(t, 43, result.Snapshot.Summary.Totals.CompletedDays)
		assert.Equal(t, model.StatusInProgress, result.Snapshot.Attendance.Status)

		require.NotNil(t, saved)
		var doc model.Document
		require.NoError(t, json.Unmarshal([]byte(saved.Payload), &doc))
		assert.Equal(t, model.CurrentSchemaVersion, doc.Metadata.Version)
		assert.Equal(t, "November", doc.Months[10].Name)
	})

	t.Run("異常系: 読めないデータはデフォルトのまま続行", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)

		repo.On("FindByKey", mock.Anything, mock.Anything, testStorageKey).
			Return(&model.StoredState{Payload: "{broken"}, nil).Once()
		repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		result, err := svc.Init(ctx)
		require.NoError(t, err)

		assert.Equal(t, model.LevelWarning, result.Notifications[0].Level)
		assert.Equal(t, 13, result.Snapshot.Months[10].CompletedDays)
	})
}

func TestTrackerService_CompleteToday(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 今月に1日追加して1回保存", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)
		repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		result, err := svc.CompleteToday(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 1, result.Snapshot.Months[10].CompletedDays)
		assert.True(t, result.Persisted)
	})

	t.Run("異常系: 今月が埋まっていれば変更も保存もしない", func(t *testing.T) {
		settings := testSettings()
		settings.Ledger = model.DefaultLedger()
		settings.Ledger[10].CompletedDays = 17
		svc, repo := newTestService(t, settings, nov19)

		result, err := svc.CompleteToday(ctx)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, model.ErrCapacityExceeded)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "November is already complete.", appErr.Message)
		assert.Equal(t, 17, svc.Snapshot(ctx).Months[10].CompletedDays)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTrackerService_AddDays(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 容量不足は警告付きで追加できた分だけ保存", func(t *testing.T) {
		settings := testSettings()
		settings.Ledger = model.DefaultLedger()
		for i := range settings.Ledger {
			settings.Ledger[i].CompletedDays = settings.Ledger[i].AvailableDays
		}
		settings.Ledger[11].CompletedDays = 7
		svc, repo := newTestService(t, settings, nov19)
		repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		result, err := svc.AddDays(ctx, "5")
		require.NoError(t, err)

		assert.Equal(t, 3, result.Added)
		assert.Equal(t, 2, result.Unfulfilled)
		assert.Equal(t, model.LevelWarning, result.Notifications[0].Level)
		assert.Equal(t, 55, result.Snapshot.Summary.Totals.CompletedDays)
	})

	t.Run("正常系: 1日も追加できなければ保存しない", func(t *testing.T) {
		settings := testSettings()
		settings.Ledger = model.DefaultLedger()
		for i := range settings.Ledger {
			settings.Ledger[i].CompletedDays = settings.Ledger[i].AvailableDays
		}
		svc, repo := newTestService(t, settings, nov19)

		result, err := svc.AddDays(ctx, "2")
		require.NoError(t, err)

		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 2, result.Unfulfilled)
		assert.False(t, result.Persisted)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: 数値でない入力は1日として扱う", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)
		repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		result, err := svc.AddDays(ctx, "abc")
		require.NoError(t, err)

		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 1, result.Snapshot.Months[0].CompletedDays)
	})
}

func TestTrackerService_RemoveDays(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()
	settings.Ledger = model.DefaultLedger()
	settings.Ledger[10].CompletedDays = 2
	settings.Ledger[11].CompletedDays = 3
	svc, repo := newTestService(t, settings, nov19)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.RemoveDays(ctx, "4")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Removed)
	assert.Equal(t, 1, result.Snapshot.Months[10].CompletedDays)
	assert.Equal(t, 0, result.Snapshot.Months[11].CompletedDays)

	// もう1日しか残っていない
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	result, err = svc.RemoveDays(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)

	result, err = svc.RemoveDays(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Removed)
	assert.False(t, result.Persisted)
}

func TestTrackerService_SetTotal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		input     string
		wantErr   bool
		completed int
	}{
		{name: "正常系: 合計を増やす", input: "20", completed: 20},
		{name: "正常系: 0にする", input: "0", completed: 0},
		{name: "異常系: 合計日数を超える", input: "56", wantErr: true},
		{name: "異常系: 負の値", input: "-1", wantErr: true},
		{name: "異常系: 数値でない", input: "many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t, testSettings(), nov19)
			if !tt.wantErr {
				repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
			}

			result, err := svc.SetTotal(ctx, tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "total", appErr.Field)
				assert.Equal(t, 0, svc.Snapshot(ctx).Summary.Totals.CompletedDays)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.completed, result.Snapshot.Summary.Totals.CompletedDays)
		})
	}
}

func TestTrackerService_MonthOperations(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()
	settings.Ledger = model.DefaultLedger()
	settings.Ledger[10].CompletedDays = 12
	svc, repo := newTestService(t, settings, nov19)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SetMonthCapacity(ctx, 10, "8")
	require.NoError(t, err)
	assert.Equal(t, 8, result.Snapshot.Months[10].AvailableDays)
	assert.Equal(t, 8, result.Snapshot.Months[10].CompletedDays, "完了日数は容量まで下がる")

	result, err = svc.SetMonthCapacity(ctx, 10, "40")
	require.NoError(t, err)
	assert.Equal(t, 31, result.Snapshot.Months[10].AvailableDays)
	assert.Equal(t, 8, result.Snapshot.Months[10].CompletedDays, "容量を増やしても完了日数は増えない")

	result, err = svc.ClearMonth(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Snapshot.Months[10].CompletedDays)

	result, err = svc.ToggleEditMonth(ctx, 3)
	require.NoError(t, err)
	assert.True(t, result.Snapshot.Months[3].Editing)

	result, err = svc.ToggleEditAll(ctx)
	require.NoError(t, err)
	for _, m := range result.Snapshot.Months {
		assert.True(t, m.Editing)
	}
	result, err = svc.ToggleEditAll(ctx)
	require.NoError(t, err)
	for _, m := range result.Snapshot.Months {
		assert.False(t, m.Editing)
	}

	for _, index := range []int{-1, 12} {
		_, err := svc.SetMonthCapacity(ctx, index, "3")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		_, err = svc.ClearMonth(ctx, index)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		_, err = svc.ToggleEditMonth(ctx, index)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	}
	repo.AssertNumberOfCalls(t, "Upsert", 6)
}

func TestTrackerService_Attendance(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testSettings(), nov19)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RecordAbsence(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 221.0, result.Snapshot.Attendance.TotalMissedHours, "未入力は4時間")
	assert.InDelta(t, 81.58, result.Snapshot.Attendance.FrequencyPercent, 0.01)
	assert.Equal(t, model.StatusInProgress, result.Snapshot.Attendance.Status)

	result, err = svc.RecordAbsence(ctx, "80")
	require.NoError(t, err)
	assert.Equal(t, model.StatusBehind, result.Snapshot.Attendance.Status)
	assert.Equal(t, model.LevelDanger, result.Notifications[0].Level)

	result, err = svc.ResetAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.NewAttendanceRecord(81.91, 217), result.Snapshot.Attendance)
}

func TestTrackerService_ResetAll(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()
	settings.Ledger = model.DefaultLedger()
	settings.Ledger[0].CompletedDays = 15
	svc, repo := newTestService(t, settings, nov19)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.RecordAbsence(ctx, "100")
	require.NoError(t, err)
	result, err := svc.ResetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Snapshot.Summary.Totals.CompletedDays)
	assert.Equal(t, 55, result.Snapshot.Summary.Totals.TotalDays)
	assert.Equal(t, 217.0, result.Snapshot.Attendance.TotalMissedHours)
	repo.AssertNumberOfCalls(t, "Upsert", 2)
}

func TestTrackerService_UpdateConfiguration(t *testing.T) {
	ctx := context.Background()
	ptrF := func(v float64) *float64 { return &v }
	ptrI := func(v int) *int { return &v }
	ptrS := func(v string) *string { return &v }

	t.Run("正常系: 0 と未指定はデフォルトに戻し出席率を再計算", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)
		repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		result, err := svc.UpdateConfiguration(ctx, &model.UpdateConfigRequest{
			TotalCourseHours:   ptrF(1000),
			HoursPerDay:        ptrF(0),
			WorkingDaysPerWeek: ptrI(4),
			ProjectedEnd:       ptrS("2026-03-31"),
		})
		require.NoError(t, err)

		cfg := result.Snapshot.Config
		assert.Equal(t, 1000.0, cfg.TotalCourseHours)
		assert.Equal(t, 4.0, cfg.HoursPerDay)
		assert.Equal(t, 4, cfg.WorkingDaysPerWeek)
		assert.Equal(t, 0.25, cfg.AbsenceImpact)
		assert.Equal(t, "2026-03-31", cfg.ProjectedEnd.String())
		assert.Equal(t, "2025-01-01", cfg.CourseStart.String())
		assert.InDelta(t, 78.3, result.Snapshot.Attendance.FrequencyPercent, 0.001)
	})

	t.Run("異常系: 負の値と日付の逆転は拒否", func(t *testing.T) {
		svc, repo := newTestService(t, testSettings(), nov19)

		_, err := svc.UpdateConfiguration(ctx, &model.UpdateConfigRequest{HoursPerDay: ptrF(-1)})
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = svc.UpdateConfiguration(ctx, &model.UpdateConfigRequest{ProjectedEnd: ptrS("2024-12-31")})
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = svc.UpdateConfiguration(ctx, nil)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		assert.Equal(t, testCourse().HoursPerDay, svc.Snapshot(ctx).Config.HoursPerDay)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTrackerService_InferProgress(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testSettings(), nov19)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.InferProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, result.Added)
	assert.True(t, result.Persisted)

	result, err = svc.InferProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.False(t, result.Persisted)
	assert.Equal(t, 13, result.Snapshot.Months[10].CompletedDays)
}

func TestTrackerService_PersistFailure(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testSettings(), nov19)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("database is locked")).Once()

	result, err := svc.AddDays(ctx, "2")
	require.NoError(t, err, "保存の失敗は操作自体の失敗にしない")

	assert.False(t, result.Persisted)
	last := result.Notifications[len(result.Notifications)-1]
	assert.Equal(t, model.LevelWarning, last.Level)
	assert.Equal(t, 2, svc.Snapshot(ctx).Summary.Totals.CompletedDays, "メモリ上の状態は残る")
}

func TestTrackerService_Export(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()
	settings.Ledger = model.DefaultLedger()
	settings.Ledger[0].CompletedDays = 15
	settings.Ledger[1].CompletedDays = 9
	svc, repo := newTestService(t, settings, nov19)

	report := svc.Export(ctx)

	assert.NotEqual(t, uuid.Nil, report.ExportID)
	assert.Equal(t, model.ProgressReport{TotalDays: 55, CompletedDays: 24, RemainingDays: 31, PercentComplete: 44}, report.Progress)
	assert.Equal(t, model.HourBreakdown{Total: 1200, Completed: 96, Remaining: 1104}, report.Hours)
	require.Len(t, report.Months, 5)
	assert.Equal(t, "January", report.Months[0].Name)
	assert.Equal(t, "December", report.Months[4].Name)
	assert.Equal(t, model.CurrentSchemaVersion, report.Version)
	assert.Equal(t, nov19, report.ExportedAt)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackerService_Load(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testSettings(), nov19)

	payload := `{"months":[{"availableDays":15,"completedDays":4}],"metadata":{"version":"2.0"}}`
	repo.On("FindByKey", mock.Anything, mock.Anything, testStorageKey).
		Return(&model.StoredState{Payload: payload}, nil).Once()

	result, err := svc.Load(ctx)
	require.NoError(t, err)

	assert.False(t, result.Persisted)
	assert.Empty(t, result.Notifications)
	assert.Equal(t, 4, result.Snapshot.Summary.Totals.CompletedDays)
	assert.Equal(t, 0, result.Snapshot.Months[10].CompletedDays, "読み込みだけでは推定しない")
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}
