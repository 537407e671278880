// internal/handlers/tracker_handler_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go_course_tracker/internal/model"
	"go_course_tracker/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okResult(n ...model.Notification) *model.CommandResult {
	return &model.CommandResult{Persisted: true, Snapshot: model.Snapshot{Months: model.DefaultLedger()}, Notifications: n}
}

func TestTrackerHandler_Commands(t *testing.T) {
	tests := []struct {
		name         string
		request      httpRequestDetails
		setupMock    func(m *mocks.TrackerService)
		expectations httpResponseExpectations
	}{
		{
			name:    "正常系: 今日の分を完了",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/complete-today"},
			setupMock: func(m *mocks.TrackerService) {
				m.On("CompleteToday", mock.Anything).Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "異常系: 今月が埋まっている",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/complete-today"},
			setupMock: func(m *mocks.TrackerService) {
				err := model.NewAppError("MONTH_COMPLETE", "November is already complete.", "", model.ErrCapacityExceeded)
				m.On("CompleteToday", mock.Anything).Return(nil, err).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusConflict, ExpectedErrorCode: "MONTH_COMPLETE"},
		},
		{
			name:    "正常系: 数値の日数",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/days", Body: `{"count": 3}`},
			setupMock: func(m *mocks.TrackerService) {
				m.On("AddDays", mock.Anything, "3").Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: 文字列の日数はそのままサービスへ",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/days", Body: `{"count": "2 days"}`},
			setupMock: func(m *mocks.TrackerService) {
				m.On("AddDays", mock.Anything, "2 days").Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: ボディなしはデフォルト",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/days/remove"},
			setupMock: func(m *mocks.TrackerService) {
				m.On("RemoveDays", mock.Anything, "").Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:         "異常系: JSONでないボディ",
			request:      httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/days", Body: `{"count":`},
			setupMock:    func(m *mocks.TrackerService) {},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_REQUEST_BODY"},
		},
		{
			name:         "異常系: 未知のフィールド",
			request:      httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/days", Body: `{"days": 1}`},
			setupMock:    func(m *mocks.TrackerService) {},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_REQUEST_BODY"},
		},
		{
			name:    "異常系: 合計が範囲外",
			request: httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/progress/total", Body: `{"total": "99"}`},
			setupMock: func(m *mocks.TrackerService) {
				err := model.NewAppError("INVALID_TOTAL", "Total must be a whole number between 0 and 55.", "total", model.ErrInvalidInput)
				m.On("SetTotal", mock.Anything, "99").Return(nil, err).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_TOTAL"},
		},
		{
			name:    "正常系: 月の授業日数を変更",
			request: httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/months/10/capacity", Body: model.MonthCapacityRequest{AvailableDays: "15"}},
			setupMock: func(m *mocks.TrackerService) {
				m.On("SetMonthCapacity", mock.Anything, 10, "15").Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:         "異常系: 月の番号が範囲外",
			request:      httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/months/12/clear"},
			setupMock:    func(m *mocks.TrackerService) {},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_MONTH"},
		},
		{
			name:         "異常系: 月の番号が数値でない",
			request:      httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/months/november/toggle-edit"},
			setupMock:    func(m *mocks.TrackerService) {},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_MONTH"},
		},
		{
			name:    "正常系: 全月の編集切り替え",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/months/toggle-edit"},
			setupMock: func(m *mocks.TrackerService) {
				m.On("ToggleEditAll", mock.Anything).Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: 欠席時間",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/attendance/absences", Body: `{"hours": 2.5}`},
			setupMock: func(m *mocks.TrackerService) {
				m.On("RecordAbsence", mock.Anything, "2.5").Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: 欠席のリセット",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/attendance/reset"},
			setupMock: func(m *mocks.TrackerService) {
				m.On("ResetAttendance", mock.Anything).Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: 全体リセット",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/reset"},
			setupMock: func(m *mocks.TrackerService) {
				m.On("ResetAll", mock.Anything).Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: 進捗の推定",
			request: httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/infer"},
			setupMock: func(m *mocks.TrackerService) {
				m.On("InferProgress", mock.Anything).Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:    "正常系: 設定の保存",
			request: httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/config", Body: `{"totalCourseHours": 1000, "courseStart": "2025-02-01"}`},
			setupMock: func(m *mocks.TrackerService) {
				m.On("UpdateConfiguration", mock.Anything, mock.MatchedBy(func(req *model.UpdateConfigRequest) bool {
					return req.TotalCourseHours != nil && *req.TotalCourseHours == 1000 &&
						req.CourseStart != nil && *req.CourseStart == "2025-02-01" && req.HoursPerDay == nil
				})).Return(okResult(), nil).Once()
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:         "異常系: 設定が負の値",
			request:      httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/config", Body: `{"hoursPerDay": -4}`},
			setupMock:    func(m *mocks.TrackerService) {},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "VALIDATION_ERROR"},
		},
		{
			name:         "異常系: 日付の形式が違う",
			request:      httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/config", Body: `{"projectedEnd": "12/02/2026"}`},
			setupMock:    func(m *mocks.TrackerService) {},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "VALIDATION_ERROR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewTrackerService(t)
			tt.setupMock(svc)
			server := newTestServer(t, svc, stubPinger{})

			_, body := sendRequest(t, server, tt.request, tt.expectations)

			if tt.expectations.ExpectedCode == http.StatusOK {
				result := decodeResult(t, body)
				assert.True(t, result.Persisted)
				assert.NotNil(t, result.Notifications, "通知は空でも配列で返す")
				assert.Contains(t, string(body), `"notifications":[]`)
			}
		})
	}
}

func TestTrackerHandler_GetState(t *testing.T) {
	svc := mocks.NewTrackerService(t)
	snap := model.Snapshot{Months: model.DefaultLedger(), Config: model.DefaultCourseConfig()}
	snap.Summary.Totals = model.DerivedTotals{TotalDays: 55, CompletedDays: 10}
	svc.On("Snapshot", mock.Anything).Return(snap).Once()
	server := newTestServer(t, svc, stubPinger{})

	_, body := sendRequest(t, server,
		httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/state"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	var got model.Snapshot
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, snap.Months, got.Months)
	assert.Equal(t, 10, got.Summary.Totals.CompletedDays)
	assert.Equal(t, "2025-01-01", got.Config.CourseStart.String())
}

func TestTrackerHandler_Export(t *testing.T) {
	svc := mocks.NewTrackerService(t)
	report := model.ExportReport{
		ExportID:   uuid.New(),
		Progress:   model.ProgressReport{TotalDays: 55, CompletedDays: 11, RemainingDays: 44, PercentComplete: 20},
		Months:     model.DefaultLedger().NonEmpty(),
		ExportedAt: time.Date(2025, time.November, 19, 10, 0, 0, 0, time.UTC),
		Version:    model.CurrentSchemaVersion,
	}
	svc.On("Export", mock.Anything).Return(report).Once()
	server := newTestServer(t, svc, stubPinger{})

	resp, body := sendRequest(t, server,
		httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/export"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	assert.Equal(t, `attachment; filename="course-progress-2025-11-19.json"`, resp.Header.Get("Content-Disposition"))
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, report.ExportID.String(), got["exportId"])
	assert.Equal(t, "2.0", got["version"])
	assert.Len(t, got["months"], 5)
	for _, key := range []string{"progress", "attendance", "hours", "statistics", "config", "exportedAt"} {
		assert.Contains(t, got, key, fmt.Sprintf("export must contain %q", key))
	}
}
