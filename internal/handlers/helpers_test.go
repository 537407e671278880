// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_course_tracker/internal/calendarsync"
	"go_course_tracker/internal/handlers"
	"go_course_tracker/internal/model"
	"go_course_tracker/internal/service"
	"go_course_tracker/internal/view"

	"github.com/rs/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

// newTestServer は本番と同じルーティングでテストサーバーを起動する
func newTestServer(t *testing.T, svc service.TrackerService, pinger handlers.Pinger) *httptest.Server {
	t.Helper()
	dashboard, err := view.NewDashboard()
	require.NoError(t, err)

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:    testLogger,
		CORS:      cors.Options{AllowedOrigins: []string{"http://localhost:3000"}},
		Tracker:   handlers.NewTrackerHandler(svc, testLogger),
		Calendar:  handlers.NewCalendarHandler(calendarsync.NewHook(2025, nil), testLogger),
		Dashboard: handlers.NewDashboardHandler(svc, dashboard, testLogger),
		Health:    handlers.NewHealthHandler(pinger, testLogger),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// sendRequest はHTTPリクエストを送信し、基本的なレスポンス情報を返します。
// ステータスコードとエラーコードのアサーションもここで行います。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) (*http.Response, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch")

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	if expectations.ExpectedErrorCode != "" {
		var errResp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(respBodyBytes, &errResp), "body: %s", respBodyBytes)
		assert.Equal(t, expectations.ExpectedErrorCode, errResp.Error.Code)
	}
	return resp, respBodyBytes
}

// decodeResult は成功レスポンスのボディを CommandResult に読む
func decodeResult(t *testing.T, body []byte) model.CommandResult {
	t.Helper()
	var result model.CommandResult
	require.NoError(t, json.Unmarshal(body, &result), "body: %s", body)
	return result
}
