package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// maxLoggedBody を超えるボディはデバッグログで切り詰める
const maxLoggedBody = 4 << 10

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名 (小文字)
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
	"x-csrf-token":  true,
}

// responseRecorder はステータスコードと書き込みバイト数を記録する
// デバッグ時のみボディも保持する
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int
	body       *bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter, captureBody bool) *responseRecorder {
	rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
	if captureBody {
		rr.body = new(bytes.Buffer)
	}
	return rr
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if rr.body != nil && rr.body.Len() < maxLoggedBody {
		rr.body.Write(b)
	}
	n, err := rr.ResponseWriter.Write(b)
	rr.written += n
	return n, err
}

// LoggingMiddleware はリクエスト単位のロガーをコンテキストに入れ、完了時に1行出力する
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqBody []byte
			if debug && r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			rr := newResponseRecorder(w, debug)
			next.ServeHTTP(rr, r)

			level := slog.LevelInfo
			if rr.statusCode >= 500 {
				level = slog.LevelError
			} else if rr.statusCode >= 400 {
				level = slog.LevelWarn
			}
			requestLogger.Log(r.Context(), level, "Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rr.statusCode,
				"latency_ms", float64(time.Since(startTime).Nanoseconds())/1e6,
				"bytes_out", rr.written,
			)

			if debug {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", truncate(reqBody),
				)
				requestLogger.Debug("Response detail",
					"status", rr.statusCode,
					"headers", formatHeaders(rr.Header()),
					"body", truncate(rr.body.Bytes()),
				)
			}
		})
	}
}

// WithLogger はロガーをコンテキストに入れる (HTTP 以外の呼び出し元用)
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
