//go:generate mockery --name FriendshipRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipRepository はフレンドグラフの読み取り専用アクセスを提供します。
// 申請・承認のワークフローは外部サブシステムが書き込む。
type FriendshipRepository interface {
	// FindFriendIDs は承認済みフレンドのID集合を返します。
	// 関係は無向のため、申請者・被申請者どちらの側でも対象になる。
	FindFriendIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type gormFriendshipRepository struct{}

func NewGormFriendshipRepository() FriendshipRepository {
	return &gormFriendshipRepository{}
}

func (r *gormFriendshipRepository) FindFriendIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	logger := middleware.GetLogger(ctx)
	var friendships []*model.Friendship
	result := db.WithContext(ctx).
		Where("status = ?", model.FriendshipAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Find(&friendships)
	if result.Error != nil {
		logger.Error("Error finding friend IDs in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormFriendshipRepository.FindFriendIDs: %w", result.Error)
	}

	friendIDs := make([]uuid.UUID, 0, len(friendships))
	seen := make(map[uuid.UUID]bool, len(friendships))
	for _, f := range friendships {
		other := f.RequesterID
		if other == userID {
			other = f.AddresseeID
		}
		if other == userID || seen[other] {
			continue
		}
		seen[other] = true
		friendIDs = append(friendIDs, other)
	}
	return friendIDs, nil
}
