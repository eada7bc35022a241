// internal/service/leaderboard_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ascent_backend/internal/config"
	"ascent_backend/internal/model"
	"ascent_backend/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー ---
func setupTestDBLeaderboard() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.LeaderboardFetchLimit = 1000
	return cfg
}

// --- Test RecordCompletion ---
func Test_leaderboardService_RecordCompletion(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	userID := uuid.New()
	roadmapID := uuid.New()
	// 9.5日前開始。完了は呼び出し時点の現在時刻なので切り上げで10日になる
	startedAt := time.Now().Add(-9*24*time.Hour - 12*time.Hour)

	validReq := func() *model.RecordCompletionRequest {
		return &model.RecordCompletionRequest{
			RoadmapID:   roadmapID.String(),
			RoadmapName: "Go Backend Roadmap",
			Category:    "backend",
			Tags:        []string{"go", "api"},
			StartedAt:   &startedAt,
		}
	}

	existingRecord := &model.CompletionRecord{
		CompletionID:   uuid.New(),
		UserID:         userID,
		RoadmapID:      roadmapID,
		RoadmapName:    "Go Backend Roadmap",
		StartedAt:      startedAt,
		CompletedAt:    time.Now().AddDate(0, 0, -1),
		DaysToComplete: 9,
	}

	tests := []struct {
		name        string
		req         *model.RecordCompletionRequest
		setupMock   func(completionRepo *mocks.CompletionRepository)
		wantErr     error
		wantAnyErr  bool
		wantCreated bool
		wantRecord  func(t *testing.T, record *model.CompletionRecord)
	}{
		{
			name: "正常系: 新規の完走を記録",
			req:  validReq(),
			setupMock: func(completionRepo *mocks.CompletionRepository) {
				completionRepo.On("FindByUserAndRoadmap", ctx, mock.AnythingOfType("*gorm.DB"), userID, roadmapID).
					Return(nil, model.ErrNotFound).Once()
				completionRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.CompletionRecord")).
					Run(func(args mock.Arguments) {
						rec := args.Get(2).(*model.CompletionRecord)
						assert.Equal(t, userID, rec.UserID)
						assert.Equal(t, roadmapID, rec.RoadmapID)
						assert.Equal(t, "Go Backend Roadmap", rec.RoadmapName)
						assert.Equal(t, "backend", rec.Category)
						assert.NotEqual(t, uuid.Nil, rec.CompletionID)
						assert.Equal(t, 10, rec.DaysToComplete)
					}).Return(nil).Once()
			},
			wantErr:     nil,
			wantCreated: true,
			wantRecord: func(t *testing.T, record *model.CompletionRecord) {
				assert.Equal(t, 10, record.DaysToComplete)
			},
		},
		{
			name: "正常系: 既存レコードがあれば冪等にそれを返す (Createは呼ばれない)",
			req:  validReq(),
			setupMock: func(completionRepo *mocks.CompletionRepository) {
				completionRepo.On("FindByUserAndRoadmap", ctx, mock.AnythingOfType("*gorm.DB"), userID, roadmapID).
					Return(existingRecord, nil).Once()
			},
			wantErr:     nil,
			wantCreated: false,
			wantRecord: func(t *testing.T, record *model.CompletionRecord) {
				assert.Equal(t, existingRecord.CompletionID, record.CompletionID)
				assert.Equal(t, 9, record.DaysToComplete)
			},
		},
		{
			name: "正常系: INSERT競合に負けたら勝者のレコードを返す",
			req:  validReq(),
			setupMock: func(completionRepo *mocks.CompletionRepository) {
				// 既存チェック時点ではまだ無い
				completionRepo.On("FindByUserAndRoadmap", ctx, mock.AnythingOfType("*gorm.DB"), userID, roadmapID).
					Return(nil, model.ErrNotFound).Once()
				// 一意制約違反 (別リクエストが先にINSERTした)
				completionRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.CompletionRecord")).
					Return(model.ErrConflict).Once()
				// 取り直し
				completionRepo.On("FindByUserAndRoadmap", ctx, mock.AnythingOfType("*gorm.DB"), userID, roadmapID).
					Return(existingRecord, nil).Once()
			},
			wantErr:     nil,
			wantCreated: false,
			wantRecord: func(t *testing.T, record *model.CompletionRecord) {
				assert.Equal(t, existingRecord.CompletionID, record.CompletionID)
			},
		},
		{
			name: "異常系: ロードマップIDがUUIDでない",
			req: &model.RecordCompletionRequest{
				RoadmapID:   "not-a-uuid",
				RoadmapName: "Go Backend Roadmap",
			},
			setupMock: func(completionRepo *mocks.CompletionRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name: "異常系: ロードマップ名が空",
			req: &model.RecordCompletionRequest{
				RoadmapID:   roadmapID.String(),
				RoadmapName: "",
			},
			setupMock: func(completionRepo *mocks.CompletionRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name: "異常系: 既存チェックでDBエラー",
			req:  validReq(),
			setupMock: func(completionRepo *mocks.CompletionRepository) {
				completionRepo.On("FindByUserAndRoadmap", ctx, mock.AnythingOfType("*gorm.DB"), userID, roadmapID).
					Return(nil, errors.New("db error")).Once()
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completionRepo := new(mocks.CompletionRepository)
			friendRepo := new(mocks.FriendshipRepository)
			userRepo := new(mocks.UserRepository)
			roadmapRepo := new(mocks.RoadmapRepository)
			tt.setupMock(completionRepo)

			svc := NewLeaderboardService(db, completionRepo, friendRepo, userRepo, roadmapRepo, cfg)
			record, created, err := svc.RecordCompletion(ctx, userID, tt.req)

			if tt.wantAnyErr {
				require.Error(t, err)
				assert.Nil(t, record)
			} else if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, record)
				assert.False(t, created)
			} else {
				require.NoError(t, err)
				require.NotNil(t, record)
				assert.Equal(t, tt.wantCreated, created)
				if tt.wantRecord != nil {
					tt.wantRecord(t, record)
				}
			}

			completionRepo.AssertExpectations(t)
		})
	}
}

// 開始時刻を省略した完走は日数が下限の1日になる
func Test_leaderboardService_RecordCompletion_DefaultStartedAt(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	userID := uuid.New()
	roadmapID := uuid.New()

	completionRepo := new(mocks.CompletionRepository)
	completionRepo.On("FindByUserAndRoadmap", ctx, mock.AnythingOfType("*gorm.DB"), userID, roadmapID).
		Return(nil, model.ErrNotFound).Once()
	completionRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.CompletionRecord")).
		Return(nil).Once()

	svc := NewLeaderboardService(db, completionRepo, new(mocks.FriendshipRepository), new(mocks.UserRepository), new(mocks.RoadmapRepository), cfg)

	record, created, err := svc.RecordCompletion(ctx, userID, &model.RecordCompletionRequest{
		RoadmapID:   roadmapID.String(),
		RoadmapName: "SQL Roadmap",
	})

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, created)
	assert.Equal(t, 1, record.DaysToComplete)
	assert.Equal(t, record.StartedAt, record.CompletedAt)
	completionRepo.AssertExpectations(t)
}

// --- Test GetLeaderboard ---
func Test_leaderboardService_GetLeaderboard_AllScope(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	viewerID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()

	// userA: 3完走 (計30日)、userB: 3完走 (計15日)。閲覧者は完走ゼロ
	records := []*model.CompletionRecord{
		{UserID: userA, DaysToComplete: 10},
		{UserID: userA, DaysToComplete: 10},
		{UserID: userB, DaysToComplete: 5},
		{UserID: userA, DaysToComplete: 10},
		{UserID: userB, DaysToComplete: 5},
		{UserID: userB, DaysToComplete: 5},
	}
	usernames := map[uuid.UUID]string{
		userA:    "alice",
		userB:    "bob",
		viewerID: "viewer",
	}

	completionRepo := new(mocks.CompletionRepository)
	userRepo := new(mocks.UserRepository)
	completionRepo.On("FindForRanking", ctx, db, ([]uuid.UUID)(nil), "", 1000).
		Return(records, nil).Once()
	userRepo.On("FindUsernames", ctx, db, []uuid.UUID{userA, userB, viewerID}).
		Return(usernames, nil).Once()

	svc := NewLeaderboardService(db, completionRepo, new(mocks.FriendshipRepository), userRepo, new(mocks.RoadmapRepository), cfg)

	resp, err := svc.GetLeaderboard(ctx, viewerID, model.LeaderboardQuery{Scope: model.ScopeAll})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Rankings, 3)

	// 完走数は同数 (3)、平均日数の少ない bob が上位
	assert.Equal(t, userB, resp.Rankings[0].UserID)
	assert.Equal(t, "bob", resp.Rankings[0].Username)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.InDelta(t, 5.0, resp.Rankings[0].AverageDays, 0.0001)

	assert.Equal(t, userA, resp.Rankings[1].UserID)
	assert.Equal(t, 2, resp.Rankings[1].Rank)

	// 完走ゼロの閲覧者は合成エントリとして末尾に必ず現れる
	assert.Equal(t, viewerID, resp.Rankings[2].UserID)
	assert.Equal(t, "viewer", resp.Rankings[2].Username)
	assert.Equal(t, 3, resp.Rankings[2].Rank)
	assert.Equal(t, 0, resp.Rankings[2].TotalCompleted)

	require.NotNil(t, resp.CurrentUserIndex)
	assert.Equal(t, 2, *resp.CurrentUserIndex)

	completionRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func Test_leaderboardService_GetLeaderboard_FriendsScope(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	viewerID := uuid.New()
	friend1 := uuid.New()
	friend2 := uuid.New()

	completionRepo := new(mocks.CompletionRepository)
	friendRepo := new(mocks.FriendshipRepository)
	userRepo := new(mocks.UserRepository)

	friendRepo.On("FindFriendIDs", ctx, db, viewerID).
		Return([]uuid.UUID{friend1, friend2}, nil).Once()
	// スコープは閲覧者 + フレンド
	completionRepo.On("FindForRanking", ctx, db, []uuid.UUID{viewerID, friend1, friend2}, "", 1000).
		Return([]*model.CompletionRecord{
			{UserID: friend1, DaysToComplete: 4},
		}, nil).Once()
	userRepo.On("FindUsernames", ctx, db, []uuid.UUID{friend1, viewerID, friend2}).
		Return(map[uuid.UUID]string{
			friend1:  "friend_one",
			friend2:  "friend_two",
			viewerID: "viewer",
		}, nil).Once()

	svc := NewLeaderboardService(db, completionRepo, friendRepo, userRepo, new(mocks.RoadmapRepository), cfg)

	resp, err := svc.GetLeaderboard(ctx, viewerID, model.LeaderboardQuery{Scope: model.ScopeFriends})
	require.NoError(t, err)

	// 完走の無いフレンドと閲覧者も合成ゼロエントリで全員現れる
	require.Len(t, resp.Rankings, 3)
	assert.Equal(t, friend1, resp.Rankings[0].UserID)
	assert.Equal(t, 1, resp.Rankings[0].Rank)

	// ゼロエントリは追加順 (閲覧者 → フレンド) を安定ソートが保つ
	assert.Equal(t, viewerID, resp.Rankings[1].UserID)
	assert.Equal(t, friend2, resp.Rankings[2].UserID)
	assert.Equal(t, "friend_two", resp.Rankings[2].Username)

	require.NotNil(t, resp.CurrentUserIndex)
	assert.Equal(t, 1, *resp.CurrentUserIndex)

	friendRepo.AssertExpectations(t)
	completionRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

// タグで全レコードが除外されても閲覧者の合成エントリは残る
func Test_leaderboardService_GetLeaderboard_TagFilter(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	viewerID := uuid.New()
	userA := uuid.New()

	completionRepo := new(mocks.CompletionRepository)
	userRepo := new(mocks.UserRepository)

	completionRepo.On("FindForRanking", ctx, db, ([]uuid.UUID)(nil), "", 1000).
		Return([]*model.CompletionRecord{
			{UserID: userA, DaysToComplete: 3, Tags: []string{"python"}},
		}, nil).Once()
	// タグ絞り込みはGo側で行われるため、レコードのユーザーも名前解決の対象に含まれる
	userRepo.On("FindUsernames", ctx, db, []uuid.UUID{userA, viewerID}).
		Return(map[uuid.UUID]string{userA: "alice", viewerID: "viewer"}, nil).Once()

	svc := NewLeaderboardService(db, completionRepo, new(mocks.FriendshipRepository), userRepo, new(mocks.RoadmapRepository), cfg)

	resp, err := svc.GetLeaderboard(ctx, viewerID, model.LeaderboardQuery{Scope: model.ScopeAll, Tag: "go"})
	require.NoError(t, err)

	require.Len(t, resp.Rankings, 1)
	assert.Equal(t, viewerID, resp.Rankings[0].UserID)
	assert.Equal(t, 0, resp.Rankings[0].TotalCompleted)
	require.NotNil(t, resp.CurrentUserIndex)
	assert.Equal(t, 0, *resp.CurrentUserIndex)
}

func Test_leaderboardService_GetLeaderboard_FriendRepoError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	viewerID := uuid.New()

	friendRepo := new(mocks.FriendshipRepository)
	friendRepo.On("FindFriendIDs", ctx, db, viewerID).
		Return(nil, errors.New("db error")).Once()

	svc := NewLeaderboardService(db, new(mocks.CompletionRepository), friendRepo, new(mocks.UserRepository), new(mocks.RoadmapRepository), cfg)

	resp, err := svc.GetLeaderboard(ctx, viewerID, model.LeaderboardQuery{Scope: model.ScopeFriends})
	require.Error(t, err)
	assert.Nil(t, resp)
	friendRepo.AssertExpectations(t)
}

// --- Test GetFilterOptions ---
func Test_leaderboardService_GetFilterOptions(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLeaderboard()
	cfg := newTestConfig()

	completionRepo := new(mocks.CompletionRepository)
	roadmapRepo := new(mocks.RoadmapRepository)

	completionRepo.On("ListCategories", ctx, db).Return([]string{"backend", "web"}, nil).Once()
	roadmapRepo.On("ListCategories", ctx, db).Return([]string{"web", "data"}, nil).Once()
	completionRepo.On("ListTagSets", ctx, db).Return([][]string{{"go", "api"}}, nil).Once()
	roadmapRepo.On("ListTagSets", ctx, db).Return([][]string{{"go", "sql"}}, nil).Once()

	svc := NewLeaderboardService(db, completionRepo, new(mocks.FriendshipRepository), new(mocks.UserRepository), roadmapRepo, cfg)

	resp, err := svc.GetFilterOptions(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp)

	// 双方の和集合が重複なしソート済みで返る
	assert.Equal(t, []string{"backend", "data", "web"}, resp.Categories)
	assert.Equal(t, []string{"api", "go", "sql"}, resp.Tags)

	completionRepo.AssertExpectations(t)
	roadmapRepo.AssertExpectations(t)
}
