package model

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
)

// Friendship はユーザー間のフレンド関係を表します。
// 申請・承認のワークフローは外部サブシステムが書き込み、
// このコアは「承認済み」の関係だけを読み取ります (無向グラフとして扱う)。
type Friendship struct {
	FriendshipID uuid.UUID        `gorm:"type:uuid;primaryKey" json:"friendship_id"`
	RequesterID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_requester_addressee,unique" json:"requester_id"`
	AddresseeID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_requester_addressee,unique" json:"addressee_id"`
	Status       FriendshipStatus `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}
