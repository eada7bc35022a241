package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ユーザーの基本情報。
// 登録・認証 (トークン発行) は外部サブシステムの責務で、
// このコアはユーザー名の解決と表示のためにのみ読み取ります。
type User struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"-"`
	IsActive  bool           `json:"is_active" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)
