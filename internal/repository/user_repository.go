//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository はユーザー情報の読み取り専用アクセスを提供します。
// 登録・更新は認証サブシステム側の責務。
type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	// FindUsernames はID集合からユーザー名を一括解決します。
	// 見つからないIDはマップに含まれない (エラーにはしない)。
	FindUsernames(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindUsernames(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	logger := middleware.GetLogger(ctx)
	names := make(map[uuid.UUID]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}
	var users []*model.User
	result := db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&users)
	if result.Error != nil {
		logger.Error("Error resolving usernames in DB", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.FindUsernames: %w", result.Error)
	}
	for _, u := range users {
		names[u.UserID] = u.Username
	}
	return names, nil
}
