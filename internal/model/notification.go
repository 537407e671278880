// internal/model/notification.go
package model

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelDanger  NotificationLevel = "danger"
	LevelInfo    NotificationLevel = "info"
)

// Notification は画面に出す通知
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// CommandResult はコマンド実行の結果
type CommandResult struct {
	Snapshot      Snapshot       `json:"snapshot"`
	Added         int            `json:"added,omitempty"`
	Removed       int            `json:"removed,omitempty"`
	Unfulfilled   int            `json:"unfulfilled,omitempty"`
	Persisted     bool           `json:"persisted"`
	Notifications []Notification `json:"notifications"`
}

func (r *CommandResult) Notify(level NotificationLevel, message string) {
	r.Notifications = append(r.Notifications, Notification{Level: level, Message: message})
}
