// internal/repository/state_repository.go
package repository

import (
	"context"
	"errors"

	"go_course_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRepository は保存キーごとのドキュメントを読み書きする
type StateRepository interface {
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*model.StoredState, error)
	Upsert(ctx context.Context, db *gorm.DB, state *model.StoredState) error
}

type gormStateRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormStateRepository() StateRepository {
	return &gormStateRepository{}
}

func (r *gormStateRepository) FindByKey(ctx context.Context, db *gorm.DB, key string) (*model.StoredState, error) {
	var state model.StoredState
	result := db.WithContext(ctx).Where("storage_key = ?", key).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &state, nil
}

// Upsert は storage_key が同じ行を上書きする。後から書いた方が勝つ
func (r *gormStateRepository) Upsert(ctx context.Context, db *gorm.DB, state *model.StoredState) error {
	if state.StateID == uuid.Nil {
		state.StateID = uuid.New()
	}
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "fingerprint", "payload", "updated_at"}),
	}).Create(state)
	return result.Error
}
