// internal/model/document.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CurrentSchemaVersion は書き込み時に必ず付けるバージョン
const CurrentSchemaVersion = "2.0"

// Metadata は保存ドキュメントのメタ情報
type Metadata struct {
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
	Fingerprint string    `json:"fingerprint"`
}

// Document は永続化するドキュメントの形
type Document struct {
	Months     Ledger           `json:"months"`
	Config     CourseConfig     `json:"config"`
	Attendance AttendanceRecord `json:"attendance"`
	Metadata   Metadata         `json:"metadata"`
}

// StoredState は保存キーごとに1行のテーブル
type StoredState struct {
	StateID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	StorageKey  string    `gorm:"not null;uniqueIndex"`
	Version     string    `gorm:"not null"`
	Fingerprint string    `gorm:"not null"`
	Payload     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (StoredState) TableName() string {
	return "tracker_states"
}
