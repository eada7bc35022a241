package service

import (
	"context"
	"errors"
	"time"

	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"
	"ascent_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService はステップ単位の開始・完了の記録と、
// フレンドの「現在位置」の再構成を提供します。
type ProgressService interface {
	StartStep(ctx context.Context, userID, roadmapID uuid.UUID, stepIndex int) (*model.StepProgressRecord, error)
	CompleteStep(ctx context.Context, userID, roadmapID uuid.UUID, stepIndex int) (*model.StepProgressRecord, error)
	GetFriendProgress(ctx context.Context, viewerID, roadmapID uuid.UUID) ([]*model.FriendProgress, error)
}

type progressService struct {
	db           *gorm.DB
	progressRepo repository.StepProgressRepository
	friendRepo   repository.FriendshipRepository
	userRepo     repository.UserRepository
}

func NewProgressService(
	db *gorm.DB,
	progressRepo repository.StepProgressRepository,
	friendRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
) ProgressService {
	return &progressService{
		db:           db,
		progressRepo: progressRepo,
		friendRepo:   friendRepo,
		userRepo:     userRepo,
	}
}

// StartStep はステップの着手を記録します。
// レコードが無ければ作成、未完了なら開始時刻を更新、完了済みなら何もしない
// (完了を取り消すことはない)。
func (s *progressService) StartStep(ctx context.Context, userID, roadmapID uuid.UUID, stepIndex int) (*model.StepProgressRecord, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "roadmap_id", roadmapID, "step_index", stepIndex)

	var record *model.StepProgressRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.progressRepo.FindByStep(ctx, tx, userID, roadmapID, stepIndex)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding step progress", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の確認中にエラーが発生しました。", "", err)
		}

		now := time.Now()

		if errors.Is(err, model.ErrNotFound) {
			newRecord := &model.StepProgressRecord{
				ProgressID: uuid.New(),
				UserID:     userID,
				RoadmapID:  roadmapID,
				StepIndex:  stepIndex,
				StartedAt:  now,
			}
			if createErr := s.progressRepo.Create(ctx, tx, newRecord); createErr != nil {
				if errors.Is(createErr, model.ErrConflict) {
					// 同一ステップへの同時startに負けた。勝者のレコードをそのまま返す
					winner, refetchErr := s.progressRepo.FindByStep(ctx, tx, userID, roadmapID, stepIndex)
					if refetchErr != nil {
						return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の取得に失敗しました。", "", refetchErr)
					}
					record = winner
					return nil
				}
				logger.Error("Error creating step progress", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の作成に失敗しました。", "", createErr)
			}
			record = newRecord
			return nil
		}

		if existing.IsCompleted {
			// 完了済みステップの再start: 完了をリセットしない no-op
			record = existing
			return nil
		}

		existing.StartedAt = now
		if updateErr := s.progressRepo.Update(ctx, tx, existing); updateErr != nil {
			logger.Error("Error refreshing step start time", "error", updateErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の更新に失敗しました。", "", updateErr)
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Step started", "progress_id", record.ProgressID)
	return record, nil
}

// CompleteStep はステップの完了を記録します。
// レコードが無ければ開始時刻=完了時刻で作成。完了済みでも完了時刻を現在に
// 再設定するだけでエラーにはしない (冪等)。
func (s *progressService) CompleteStep(ctx context.Context, userID, roadmapID uuid.UUID, stepIndex int) (*model.StepProgressRecord, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "roadmap_id", roadmapID, "step_index", stepIndex)

	var record *model.StepProgressRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.progressRepo.FindByStep(ctx, tx, userID, roadmapID, stepIndex)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding step progress", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の確認中にエラーが発生しました。", "", err)
		}

		now := time.Now()

		if errors.Is(err, model.ErrNotFound) {
			newRecord := &model.StepProgressRecord{
				ProgressID:  uuid.New(),
				UserID:      userID,
				RoadmapID:   roadmapID,
				StepIndex:   stepIndex,
				StartedAt:   now,
				CompletedAt: &now,
				IsCompleted: true,
			}
			if createErr := s.progressRepo.Create(ctx, tx, newRecord); createErr != nil {
				if !errors.Is(createErr, model.ErrConflict) {
					logger.Error("Error creating step progress", "error", createErr)
					return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の作成に失敗しました。", "", createErr)
				}
				// 競合に負けた場合は勝者のレコードに完了をマークし直す
				winner, refetchErr := s.progressRepo.FindByStep(ctx, tx, userID, roadmapID, stepIndex)
				if refetchErr != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の取得に失敗しました。", "", refetchErr)
				}
				existing = winner
			} else {
				record = newRecord
				return nil
			}
		}

		existing.IsCompleted = true
		existing.CompletedAt = &now
		if updateErr := s.progressRepo.Update(ctx, tx, existing); updateErr != nil {
			logger.Error("Error marking step completed", "error", updateErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ステップ進捗の更新に失敗しました。", "", updateErr)
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Step completed", "progress_id", record.ProgressID)
	return record, nil
}

// GetFriendProgress は閲覧者の承認済みフレンド全員について、
// 指定ロードマップ上の「現在位置」を再構成します。読み取り専用で、
// 閲覧によって他人のレコードが変化することはありません。
// フレンドがいない・誰も着手していない場合は空リストを返します (エラーではない)。
func (s *progressService) GetFriendProgress(ctx context.Context, viewerID, roadmapID uuid.UUID) ([]*model.FriendProgress, error) {
	logger := middleware.GetLogger(ctx).With("viewer_id", viewerID, "roadmap_id", roadmapID)

	friendIDs, err := s.friendRepo.FindFriendIDs(ctx, s.db, viewerID)
	if err != nil {
		logger.Error("Failed to resolve friend IDs", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレンド情報の取得に失敗しました。", "", err)
	}
	if len(friendIDs) == 0 {
		return []*model.FriendProgress{}, nil
	}

	records, err := s.progressRepo.FindByRoadmapAndUsers(ctx, s.db, roadmapID, friendIDs)
	if err != nil {
		logger.Error("Failed to fetch friend step progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレンド進捗の取得に失敗しました。", "", err)
	}
	if len(records) == 0 {
		return []*model.FriendProgress{}, nil
	}

	usernames, err := s.userRepo.FindUsernames(ctx, s.db, friendIDs)
	if err != nil {
		logger.Error("Failed to resolve usernames", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の取得に失敗しました。", "", err)
	}

	// レコードは user_id, step_index の昇順で届く。ユーザーごとに1エントリへ畳む
	results := make([]*model.FriendProgress, 0)
	index := make(map[uuid.UUID]*model.FriendProgress)
	bestCompleted := make(map[uuid.UUID]*model.StepProgressRecord)
	firstInProgress := make(map[uuid.UUID]*model.StepProgressRecord)

	for _, rec := range records {
		entry, ok := index[rec.UserID]
		if !ok {
			entry = &model.FriendProgress{
				UserID:           rec.UserID,
				Username:         usernames[rec.UserID],
				CurrentStepIndex: -1,
			}
			index[rec.UserID] = entry
			results = append(results, entry)
		}

		if rec.IsCompleted {
			entry.TotalCompleted++
			// 完了済みの最大 step_index が現在位置
			if best := bestCompleted[rec.UserID]; best == nil || rec.StepIndex > best.StepIndex {
				bestCompleted[rec.UserID] = rec
			}
		} else if firstInProgress[rec.UserID] == nil {
			// 完了が1つも無い場合のフォールバック。step_index 昇順で
			// 最初に現れた着手中レコード = 最小 step_index を決定的に選ぶ
			firstInProgress[rec.UserID] = rec
		}
	}

	for _, entry := range results {
		if best := bestCompleted[entry.UserID]; best != nil {
			entry.CurrentStepIndex = best.StepIndex
			entry.LastActivity = best.CompletedAt
		} else if inProgress := firstInProgress[entry.UserID]; inProgress != nil {
			entry.CurrentStepIndex = inProgress.StepIndex
			startedAt := inProgress.StartedAt
			entry.LastActivity = &startedAt
		}
	}

	logger.Info("Friend progress computed", "friends", len(results))
	return results, nil
}
