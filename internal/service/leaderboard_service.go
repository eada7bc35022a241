package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"ascent_backend/internal/config"
	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"
	"ascent_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardService は完走台帳への記録とランキング計算を提供します。
type LeaderboardService interface {
	// RecordCompletion は完走を記録します。2番目の戻り値は新規作成なら true、
	// 既存レコードを返した (冪等な再送) なら false。
	RecordCompletion(ctx context.Context, userID uuid.UUID, req *model.RecordCompletionRequest) (*model.CompletionRecord, bool, error)
	GetLeaderboard(ctx context.Context, viewerID uuid.UUID, query model.LeaderboardQuery) (*model.LeaderboardResponse, error)
	GetFilterOptions(ctx context.Context) (*model.FilterOptionsResponse, error)
}

type leaderboardService struct {
	db             *gorm.DB
	completionRepo repository.CompletionRepository
	friendRepo     repository.FriendshipRepository
	userRepo       repository.UserRepository
	roadmapRepo    repository.RoadmapRepository
	cfg            *config.Config
}

func NewLeaderboardService(
	db *gorm.DB,
	completionRepo repository.CompletionRepository,
	friendRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	roadmapRepo repository.RoadmapRepository,
	cfg *config.Config,
) LeaderboardService {
	return &leaderboardService{
		db:             db,
		completionRepo: completionRepo,
		friendRepo:     friendRepo,
		userRepo:       userRepo,
		roadmapRepo:    roadmapRepo,
		cfg:            cfg,
	}
}

// RecordCompletion は (user, roadmap) ごとに完走を一度だけ記録します。
// 既存チェックと一意制約違反の両方の競合経路を「既存レコードを返す」に正規化し、
// 呼び出し元に409を見せることはありません。
func (s *leaderboardService) RecordCompletion(ctx context.Context, userID uuid.UUID, req *model.RecordCompletionRequest) (*model.CompletionRecord, bool, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	roadmapID, err := uuid.Parse(req.RoadmapID)
	if err != nil {
		return nil, false, model.NewAppError("VALIDATION_ERROR", "ロードマップIDの形式が正しくありません。", "roadmap_id", model.ErrInvalidInput)
	}
	if req.RoadmapName == "" {
		return nil, false, model.NewAppError("VALIDATION_ERROR", "ロードマップ名は必須項目です。", "roadmap_name", model.ErrInvalidInput)
	}
	logger = logger.With("roadmap_id", roadmapID)

	// 完了時刻は呼び出し時点。開始時刻は指定が無ければ完了時刻と同じ (日数は下限1に丸まる)
	completedAt := time.Now()
	startedAt := completedAt
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	var record *model.CompletionRecord
	created := false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 既存チェック (冪等な再送はここで既存を返して終わり)
		existing, findErr := s.completionRepo.FindByUserAndRoadmap(ctx, tx, userID, roadmapID)
		if findErr == nil {
			record = existing
			return nil
		}
		if !errors.Is(findErr, model.ErrNotFound) {
			logger.Error("Error checking existing completion", "error", findErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "完走記録の確認中にエラーが発生しました。", "", findErr)
		}

		// 2. 新規作成
		newRecord := &model.CompletionRecord{
			CompletionID:   uuid.New(),
			UserID:         userID,
			RoadmapID:      roadmapID,
			RoadmapName:    req.RoadmapName,
			Category:       req.Category,
			Tags:           req.Tags,
			StartedAt:      startedAt,
			CompletedAt:    completedAt,
			DaysToComplete: daysToComplete(startedAt, completedAt),
		}
		if createErr := s.completionRepo.Create(ctx, tx, newRecord); createErr != nil {
			if errors.Is(createErr, model.ErrConflict) {
				// 既存チェックとINSERTの間に別リクエストが勝った。
				// 一意制約が競合を1勝者+N冪等に直列化するので、既存を取り直して返す
				logger.Info("Lost completion insert race, fetching winner's record")
				winner, refetchErr := s.completionRepo.FindByUserAndRoadmap(ctx, tx, userID, roadmapID)
				if refetchErr != nil {
					logger.Error("Error refetching completion after conflict", "error", refetchErr)
					return model.NewAppError("INTERNAL_SERVER_ERROR", "完走記録の取得に失敗しました。", "", refetchErr)
				}
				record = winner
				return nil
			}
			logger.Error("Error creating completion record", "error", createErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "完走記録の作成に失敗しました。", "", createErr)
		}
		record = newRecord
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	logger.Info("Completion recorded", "created", created, "days_to_complete", record.DaysToComplete)
	return record, created, nil
}

// GetLeaderboard はリーダーボードをリクエストごとに再計算します (キャッシュしない)。
func (s *leaderboardService) GetLeaderboard(ctx context.Context, viewerID uuid.UUID, query model.LeaderboardQuery) (*model.LeaderboardResponse, error) {
	logger := middleware.GetLogger(ctx).With("viewer_id", viewerID, "scope", query.Scope)

	// 1. スコープの解決。friends なら承認済みフレンド + 自分自身に絞る
	var scopeUserIDs []uuid.UUID // nil = 全ユーザー
	var friendIDs []uuid.UUID
	if query.Scope == model.ScopeFriends {
		ids, err := s.friendRepo.FindFriendIDs(ctx, s.db, viewerID)
		if err != nil {
			logger.Error("Failed to resolve friend IDs", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレンド情報の取得に失敗しました。", "", err)
		}
		friendIDs = ids
		scopeUserIDs = append([]uuid.UUID{viewerID}, ids...)
	}

	// 2. 対象の完走レコードを取得し、タグ絞り込みはGo側で行う
	records, err := s.completionRepo.FindForRanking(ctx, s.db, scopeUserIDs, query.Category, s.cfg.App.LeaderboardFetchLimit)
	if err != nil {
		logger.Error("Failed to fetch completion records for ranking", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ランキングの取得に失敗しました。", "", err)
	}
	records = filterByTag(records, query.Tag)

	// 3. ユーザー名の一括解決 (合成ゼロエントリの分も含める)
	nameIDs := make([]uuid.UUID, 0, len(records)+len(friendIDs)+1)
	seen := make(map[uuid.UUID]bool)
	addID := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			nameIDs = append(nameIDs, id)
		}
	}
	for _, rec := range records {
		addID(rec.UserID)
	}
	addID(viewerID)
	for _, id := range friendIDs {
		addID(id)
	}
	usernames, err := s.userRepo.FindUsernames(ctx, s.db, nameIDs)
	if err != nil {
		logger.Error("Failed to resolve usernames", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の取得に失敗しました。", "", err)
	}

	// 4. 集約して1回目のソート
	entries := aggregateCompletions(records, usernames)
	sortAndRank(entries)

	// 5. 合成ゼロエントリの追加。
	// 閲覧者はフィルタに関わらず必ず自分を見られる。friends スコープでは
	// 完走の無いフレンドも全員無条件で現れる (カテゴリ・タグ絞り込みの対象外)。
	present := make(map[uuid.UUID]bool, len(entries))
	for _, entry := range entries {
		present[entry.UserID] = true
	}
	if !present[viewerID] {
		entries = append(entries, newZeroEntry(viewerID, usernames[viewerID]))
		present[viewerID] = true
	}
	if query.Scope == model.ScopeFriends {
		for _, id := range friendIDs {
			if !present[id] {
				entries = append(entries, newZeroEntry(id, usernames[id]))
				present[id] = true
			}
		}
	}

	// 6. 合成エントリを正しい位置に入れるための2回目のソート (同じ比較器)
	sortAndRank(entries)

	// 7. 閲覧者自身の位置
	var currentUserIndex *int
	for i, entry := range entries {
		if entry.UserID == viewerID {
			idx := i
			currentUserIndex = &idx
			break
		}
	}

	logger.Info("Leaderboard computed", "entries", len(entries))
	return &model.LeaderboardResponse{
		Rankings:         entries,
		CurrentUserIndex: currentUserIndex,
		Scope:            query.Scope,
		Category:         query.Category,
		Tag:              query.Tag,
	}, nil
}

// GetFilterOptions は完走レコードとロードマップ双方に出現したカテゴリ・タグの和集合を返します。
func (s *leaderboardService) GetFilterOptions(ctx context.Context) (*model.FilterOptionsResponse, error) {
	logger := middleware.GetLogger(ctx)

	completionCategories, err := s.completionRepo.ListCategories(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list completion categories", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フィルタ候補の取得に失敗しました。", "", err)
	}
	roadmapCategories, err := s.roadmapRepo.ListCategories(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list roadmap categories", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フィルタ候補の取得に失敗しました。", "", err)
	}
	completionTagSets, err := s.completionRepo.ListTagSets(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list completion tags", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フィルタ候補の取得に失敗しました。", "", err)
	}
	roadmapTagSets, err := s.roadmapRepo.ListTagSets(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list roadmap tags", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フィルタ候補の取得に失敗しました。", "", err)
	}

	categories := uniqueSorted(append(completionCategories, roadmapCategories...))

	var tags []string
	for _, set := range completionTagSets {
		tags = append(tags, set...)
	}
	for _, set := range roadmapTagSets {
		tags = append(tags, set...)
	}
	tags = uniqueSorted(tags)

	return &model.FilterOptionsResponse{
		Categories: categories,
		Tags:       tags,
	}, nil
}

// uniqueSorted は空文字を除いた重複なしのソート済みリストを返します。
func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}
