// internal/model/completion.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CompletionRecord はロードマップ完走の台帳レコードです。
// (user_id, roadmap_id) で一意。作成後は不変で、コアのAPIから削除されることはありません。
type CompletionRecord struct {
	CompletionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"completion_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roadmap,unique" json:"user_id"`
	RoadmapID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roadmap,unique" json:"roadmap_id"`
	// 完走時点のロードマップ名のスナップショット (後から名前が変わっても追従しない)
	RoadmapName    string                      `gorm:"not null" json:"roadmap_name"`
	Category       string                      `gorm:"index" json:"category,omitempty"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	StartedAt      time.Time                   `gorm:"not null" json:"started_at"`
	CompletedAt    time.Time                   `gorm:"not null" json:"completed_at"`
	DaysToComplete int                         `gorm:"not null" json:"days_to_complete"` // 1以上
	CreatedAt      time.Time                   `json:"created_at"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}

// RecordCompletionRequest は完走記録APIのリクエストボディ (DTO)
type RecordCompletionRequest struct {
	RoadmapID   string     `json:"roadmap_id" validate:"required,uuid"`
	RoadmapName string     `json:"roadmap_name" validate:"required,min=1,max=200"`
	Category    string     `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags        []string   `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	StartedAt   *time.Time `json:"started_at,omitempty"` // 省略時は現在時刻
}

// RecordCompletionResponse は完走記録APIのレスポンス
type RecordCompletionResponse struct {
	Completion *CompletionRecord `json:"completion"`
}
