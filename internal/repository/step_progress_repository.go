//go:generate mockery --name StepProgressRepository --output ./mocks --outpkg mocks --case=underscore
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

// StepProgressRepository はステップ進捗レコードへのアクセスを提供します。
type StepProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.StepProgressRecord) error
	FindByStep(ctx context.Context, db *gorm.DB, userID, roadmapID uuid.UUID, stepIndex int) (*model.StepProgressRecord, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.StepProgressRecord) error
	// FindByRoadmapAndUsers はフレンド進捗の再構成用。
	// 閲覧者は他人のレコードを読み取るだけで、変更は所有者本人の操作に限られる。
	FindByRoadmapAndUsers(ctx context.Context, db *gorm.DB, roadmapID uuid.UUID, userIDs []uuid.UUID) ([]*model.StepProgressRecord, error)
}

type gormStepProgressRepository struct{}

func NewGormStepProgressRepository() StepProgressRepository {
	return &gormStepProgressRepository{}
}

func (r *gormStepProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.StepProgressRecord) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			// (user_id, roadmap_id, step_index) の一意制約違反
			return model.ErrConflict
		}
		logger.Error("Error creating step progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"roadmap_id", progress.RoadmapID.String(),
			"step_index", progress.StepIndex,
		)
		return fmt.Errorf("gormStepProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormStepProgressRepository) FindByStep(ctx context.Context, db *gorm.DB, userID, roadmapID uuid.UUID, stepIndex int) (*model.StepProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.StepProgressRecord
	result := db.WithContext(ctx).
		Where("user_id = ? AND roadmap_id = ? AND step_index = ?", userID, roadmapID, stepIndex).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding step progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"roadmap_id", roadmapID.String(),
			"step_index", stepIndex,
		)
		return nil, fmt.Errorf("gormStepProgressRepository.FindByStep: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormStepProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.StepProgressRecord) error {
	logger := middleware.GetLogger(ctx)
	// 主キーに基づく更新。存在確認は呼び出し元 (Service) が行っている想定
	result := tx.WithContext(ctx).Save(progress)
	if result.Error != nil {
		logger.Error("Error updating step progress in DB",
			"error", result.Error,
			"progress_id", progress.ProgressID.String(),
		)
		return fmt.Errorf("gormStepProgressRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormStepProgressRepository) FindByRoadmapAndUsers(ctx context.Context, db *gorm.DB, roadmapID uuid.UUID, userIDs []uuid.UUID) ([]*model.StepProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	if len(userIDs) == 0 {
		return []*model.StepProgressRecord{}, nil
	}
	var records []*model.StepProgressRecord
	result := db.WithContext(ctx).
		Where("roadmap_id = ? AND user_id IN ?", roadmapID, userIDs).
		Order("user_id ASC, step_index ASC").
		Find(&records)
	if result.Error != nil {
		logger.Error("Error finding step progress by roadmap and users in DB",
			"error", result.Error,
			"roadmap_id", roadmapID.String(),
		)
		return nil, fmt.Errorf("gormStepProgressRepository.FindByRoadmapAndUsers: %w", result.Error)
	}
	return records, nil
}
