//go:generate mockery --name CompletionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CompletionRepository は完走台帳へのアクセスを提供します。
// レコードは作成のみで、更新・削除のメソッドは意図的に存在しません。
type CompletionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *model.CompletionRecord) error
	FindByUserAndRoadmap(ctx context.Context, db *gorm.DB, userID, roadmapID uuid.UUID) (*model.CompletionRecord, error)
	// FindForRanking はランキング集計用の完走レコードを取得します。
	// userIDs が nil なら全ユーザー、category が空文字なら全カテゴリが対象。
	// タグの所属判定はJSONカラムのためサービス層で行う。
	FindForRanking(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID, category string, limit int) ([]*model.CompletionRecord, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]string, error)
	ListTagSets(ctx context.Context, db *gorm.DB) ([][]string, error)
}

type gormCompletionRepository struct{}

func NewGormCompletionRepository() CompletionRepository {
	return &gormCompletionRepository{}
}

// isDuplicateKeyError は一意制約違反かどうかを判定します。
// TranslateError 有効時は gorm.ErrDuplicatedKey になるが、
// ドライバのエラーが素通りするケースに備えて pgconn のコード23505も見る。
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

func (r *gormCompletionRepository) Create(ctx context.Context, tx *gorm.DB, record *model.CompletionRecord) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(record)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			// (user_id, roadmap_id) の一意制約違反。呼び出し元が既存レコードを取り直す
			return model.ErrConflict
		}
		logger.Error("Error creating completion record in DB",
			"error", result.Error,
			"user_id", record.UserID.String(),
			"roadmap_id", record.RoadmapID.String(),
		)
		return fmt.Errorf("gormCompletionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCompletionRepository) FindByUserAndRoadmap(ctx context.Context, db *gorm.DB, userID, roadmapID uuid.UUID) (*model.CompletionRecord, error) {
	logger := middleware.GetLogger(ctx)
	var record model.CompletionRecord
	result := db.WithContext(ctx).Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding completion record in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"roadmap_id", roadmapID.String(),
		)
		return nil, fmt.Errorf("gormCompletionRepository.FindByUserAndRoadmap: %w", result.Error)
	}
	return &record, nil
}

func (r *gormCompletionRepository) FindForRanking(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID, category string, limit int) ([]*model.CompletionRecord, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.CompletionRecord

	query := db.WithContext(ctx).Model(&model.CompletionRecord{})
	if userIDs != nil {
		query = query.Where("user_id IN ?", userIDs)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Order("completed_at ASC").Find(&records)
	if result.Error != nil {
		logger.Error("Error finding completion records for ranking in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCompletionRepository.FindForRanking: %w", result.Error)
	}
	return records, nil
}

func (r *gormCompletionRepository) ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	logger := middleware.GetLogger(ctx)
	var categories []string
	result := db.WithContext(ctx).Model(&model.CompletionRecord{}).
		Where("category <> ''").
		Distinct().
		Pluck("category", &categories)
	if result.Error != nil {
		logger.Error("Error listing completion categories in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCompletionRepository.ListCategories: %w", result.Error)
	}
	return categories, nil
}

func (r *gormCompletionRepository) ListTagSets(ctx context.Context, db *gorm.DB) ([][]string, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.CompletionRecord
	// タグはJSONカラムのため行ごとに取得してGo側で展開する
	result := db.WithContext(ctx).Select("tags").Find(&records)
	if result.Error != nil {
		logger.Error("Error listing completion tag sets in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCompletionRepository.ListTagSets: %w", result.Error)
	}
	tagSets := make([][]string, 0, len(records))
	for _, rec := range records {
		if len(rec.Tags) > 0 {
			tagSets = append(tagSets, rec.Tags)
		}
	}
	return tagSets, nil
}
