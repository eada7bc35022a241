// internal/model/roadmap.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap はスキル習得のための順序付きステップ列を表します。
// 作成・編集 (ガイドCRUD) は対象外のサブシステムの責務で、
// このコアはフィルタ語彙 (カテゴリ・タグ) の集約のために読み取ります。
type Roadmap struct {
	RoadmapID uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"roadmap_id"`
	OwnerID   uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string                      `gorm:"not null" json:"title"`
	Category  string                      `gorm:"index" json:"category,omitempty"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	StepCount int                         `gorm:"not null;default:0" json:"step_count"` // ステップ総数 (ミラーのスナップショット元)
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	DeletedAt gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}
