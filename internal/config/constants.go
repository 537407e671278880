// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "course-tracker"
	AppVersion = "2.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDatabaseDriver = "sqlite"
	DefaultSQLitePath     = "course_tracker.db"
	DefaultStorageKey     = "course_progress_2025"

	DefaultBaselineFrequency   = 81.91
	DefaultBaselineMissedHours = 217.00
)
