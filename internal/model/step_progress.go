// internal/model/step_progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StepProgressRecord はロードマップの1ステップに対する開始・完了の記録です。
// (user_id, roadmap_id, step_index) で一意。
// 不変条件: IsCompleted が true なら CompletedAt は非nilかつ StartedAt 以降。
// 完了を取り消す操作は存在しません。
type StepProgressRecord struct {
	ProgressID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_roadmap_step,unique" json:"user_id"`
	RoadmapID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_roadmap_step,unique;index" json:"roadmap_id"`
	StepIndex   int        `gorm:"not null;index:idx_user_roadmap_step,unique" json:"step_index"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (StepProgressRecord) TableName() string {
	return "step_progress_records"
}

// StepProgressRequest はステップ開始・完了APIのリクエストボディ (DTO)。
// StepIndex はゼロが有効値のためポインタで受ける。
type StepProgressRequest struct {
	RoadmapID string `json:"roadmap_id" validate:"required,uuid"`
	StepIndex *int   `json:"step_index" validate:"required,min=0"`
}

// StepProgressResponse はステップ進捗APIのレスポンス
type StepProgressResponse struct {
	StepProgress *StepProgressRecord `json:"step_progress"`
}

// FriendProgress はフレンド1人分の「現在位置」の集約結果 (導出値、非永続)
type FriendProgress struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	// 完了済みステップがあればその最大 step_index。
	// 未完了の着手ステップのみなら最小 step_index。どちらも無ければ -1。
	CurrentStepIndex int        `json:"current_step_index"`
	TotalCompleted   int        `json:"total_completed"`
	LastActivity     *time.Time `json:"last_activity,omitempty"`
}

// FriendProgressResponse はフレンド進捗APIのレスポンス
type FriendProgressResponse struct {
	FriendProgress []*FriendProgress `json:"friend_progress"`
}
