//go:generate mockery --name RoadmapRepository --output ./mocks --outpkg mocks --case=underscore
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

// RoadmapRepository はロードマップの読み取り専用アクセスを提供します。
// CRUDはガイド編集サブシステム側の責務で、コアはフィルタ語彙の集約に使う。
type RoadmapRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, roadmapID uuid.UUID) (*model.Roadmap, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]string, error)
	ListTagSets(ctx context.Context, db *gorm.DB) ([][]string, error)
}

type gormRoadmapRepository struct{}

func NewGormRoadmapRepository() RoadmapRepository {
	return &gormRoadmapRepository{}
}

func (r *gormRoadmapRepository) FindByID(ctx context.Context, db *gorm.DB, roadmapID uuid.UUID) (*model.Roadmap, error) {
	logger := middleware.GetLogger(ctx)
	var roadmap model.Roadmap
	result := db.WithContext(ctx).Where("roadmap_id = ?", roadmapID).First(&roadmap)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding roadmap by ID in DB",
			"error", result.Error,
			"roadmap_id", roadmapID.String(),
		)
		return nil, fmt.Errorf("gormRoadmapRepository.FindByID: %w", result.Error)
	}
	return &roadmap, nil
}

func (r *gormRoadmapRepository) ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	logger := middleware.GetLogger(ctx)
	var categories []string
	result := db.WithContext(ctx).Model(&model.Roadmap{}).
		Where("category <> ''").
		Distinct().
		Pluck("category", &categories)
	if result.Error != nil {
		logger.Error("Error listing roadmap categories in DB", "error", result.Error)
		return nil, fmt.Errorf("gormRoadmapRepository.ListCategories: %w", result.Error)
	}
	return categories, nil
}

func (r *gormRoadmapRepository) ListTagSets(ctx context.Context, db *gorm.DB) ([][]string, error) {
	logger := middleware.GetLogger(ctx)
	var roadmaps []*model.Roadmap
	result := db.WithContext(ctx).Select("tags").Find(&roadmaps)
	if result.Error != nil {
		logger.Error("Error listing roadmap tag sets in DB", "error", result.Error)
		return nil, fmt.Errorf("gormRoadmapRepository.ListTagSets: %w", result.Error)
	}
	tagSets := make([][]string, 0, len(roadmaps))
	for _, rm := range roadmaps {
		if len(rm.Tags) > 0 {
			tagSets = append(tagSets, rm.Tags)
		}
	}
	return tagSets, nil
}
