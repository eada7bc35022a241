// leaderboard_api_integration_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"ascent_backend/internal/config"
	"ascent_backend/internal/handlers"
	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"
	"ascent_backend/internal/repository"
	"ascent_backend/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB
var integrationLogger *slog.Logger

const dbContainerName = "test_postgres_ascent_api"

func TestMain(m *testing.M) {
	integrationLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       dbContainerName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=ascent_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	hostMappedPort := resource.GetPort("5432/tcp")
	if hostMappedPort == "" {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after failing to get mapped port: %s", pErr)
		}
		log.Fatalf("Could not get mapped port for 5432/tcp from container %s", dbContainerName)
	}

	gormDSN := fmt.Sprintf("host=localhost port=%s user=user password=secret dbname=ascent_test sslmode=disable TimeZone=Asia/Tokyo", hostMappedPort)

	integrationLogger.Info("PostgreSQL container started",
		slog.String("container_name", dbContainerName),
		slog.String("host_port", hostMappedPort),
	)

	if err = pool.Retry(func() error {
		var errRetry error
		testDB, errRetry = gorm.Open(postgres.Open(gormDSN), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if errRetry != nil {
			return errRetry
		}
		sqlDB, errRetry := testDB.DB()
		if errRetry != nil {
			testDB = nil
			return errRetry
		}
		return sqlDB.Ping()
	}); err != nil {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after connection retry failed: %s", pErr)
		}
		log.Fatalf("Could not connect to PostgreSQL container after retries: %s (GORM DSN: %s)", err, gormDSN)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Friendship{},
		&model.Roadmap{},
		&model.CompletionRecord{},
		&model.StepProgressRecord{},
	)
	if err != nil {
		log.Fatalf("Could not migrate database: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge PostgreSQL resource: %s", err)
	}

	os.Exit(code)
}

type testApp struct {
	router *chi.Mux
	logger *slog.Logger
}

// setupTestApp は実DB・実リポジトリ・実サービスでAPIを組み立てる。
// 認証は DevUserContextMiddleware (X-User-ID ヘッダー) を使う。
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	require.NotNil(t, testDB, "TestDB should have been initialized in TestMain")

	cfg := &config.Config{}
	cfg.App.LeaderboardFetchLimit = 1000

	completionRepo := repository.NewGormCompletionRepository()
	stepProgressRepo := repository.NewGormStepProgressRepository()
	userRepo := repository.NewGormUserRepository()
	friendshipRepo := repository.NewGormFriendshipRepository()
	roadmapRepo := repository.NewGormRoadmapRepository()

	leaderboardService := service.NewLeaderboardService(testDB, completionRepo, friendshipRepo, userRepo, roadmapRepo, cfg)
	progressService := service.NewProgressService(testDB, stepProgressRepo, friendshipRepo, userRepo)

	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, integrationLogger)
	progressHandler := handlers.NewProgressHandler(progressService, integrationLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(integrationLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(5 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.DevUserContextMiddleware)
		r.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
		r.Get("/leaderboard/filters", leaderboardHandler.GetFilters)
		r.Post("/leaderboard/complete", leaderboardHandler.PostCompletion)
		r.Post("/progress/start", progressHandler.PostStartStep)
		r.Post("/progress/complete", progressHandler.PostCompleteStep)
		r.Get("/progress/friends/{roadmap_id}", progressHandler.GetFriendProgress)
	})
	return &testApp{router: r, logger: integrationLogger}
}

func clearTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, m := range []interface{}{
		&model.CompletionRecord{},
		&model.StepProgressRecord{},
		&model.Friendship{},
		&model.User{},
		&model.Roadmap{},
	} {
		require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error)
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	user := &model.User{
		UserID:   uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user.UserID
}

// sendAuthedRequest は X-User-ID 付きでサーバーにリクエストを送る
func sendAuthedRequest(t *testing.T, server *httptest.Server, method, path string, userID uuid.UUID, body interface{}) (int, []byte) {
	t.Helper()
	req := newJsonRequest(t, method, server.URL+path, body)
	req.Header.Set("X-User-ID", userID.String())

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf []byte
	buf, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf
}

func TestLeaderboardAPI_CompletionIdempotency(t *testing.T) {
	app := setupTestApp(t)
	server := httptest.NewServer(app.router)
	defer server.Close()

	clearTables(t, testDB)
	userID := createTestUser(t, testDB, "integration_alice")
	roadmapID := uuid.New()

	payload := map[string]interface{}{
		"roadmap_id":   roadmapID.String(),
		"roadmap_name": "Go Backend Roadmap",
		"category":     "backend",
		"tags":         []string{"go", "api"},
		"started_at":   time.Now().Add(-49 * time.Hour).Format(time.RFC3339Nano),
	}

	// 1回目: 新規作成で 201
	statusCode, bodyBytes := sendAuthedRequest(t, server, http.MethodPost, "/api/v1/leaderboard/complete", userID, payload)
	require.Equal(t, http.StatusCreated, statusCode, "body: %s", string(bodyBytes))

	var first model.RecordCompletionResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &first))
	require.NotNil(t, first.Completion)
	assert.Equal(t, userID, first.Completion.UserID)
	assert.Equal(t, roadmapID, first.Completion.RoadmapID)
	// 49時間 → 切り上げで3日
	assert.Equal(t, 3, first.Completion.DaysToComplete)

	// 2回目: 同じ (user, roadmap) の再送は既存レコードを 200 で返す
	statusCode, bodyBytes = sendAuthedRequest(t, server, http.MethodPost, "/api/v1/leaderboard/complete", userID, payload)
	require.Equal(t, http.StatusOK, statusCode, "body: %s", string(bodyBytes))

	var second model.RecordCompletionResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &second))
	require.NotNil(t, second.Completion)
	assert.Equal(t, first.Completion.CompletionID, second.Completion.CompletionID)

	// DBには1行だけ (一意制約 + 冪等な再送)
	var count int64
	require.NoError(t, testDB.Model(&model.CompletionRecord{}).
		Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 別ロードマップの完走は新規で通る
	otherPayload := map[string]interface{}{
		"roadmap_id":   uuid.New().String(),
		"roadmap_name": "SQL Roadmap",
	}
	statusCode, _ = sendAuthedRequest(t, server, http.MethodPost, "/api/v1/leaderboard/complete", userID, otherPayload)
	assert.Equal(t, http.StatusCreated, statusCode)
}

func TestLeaderboardAPI_RankingOverRealDB(t *testing.T) {
	app := setupTestApp(t)
	server := httptest.NewServer(app.router)
	defer server.Close()

	clearTables(t, testDB)
	alice := createTestUser(t, testDB, "rank_alice")
	bob := createTestUser(t, testDB, "rank_bob")
	viewer := createTestUser(t, testDB, "rank_viewer")

	complete := func(userID uuid.UUID, name, category string, tags []string, hoursAgo int) {
		payload := map[string]interface{}{
			"roadmap_id":   uuid.New().String(),
			"roadmap_name": name,
			"category":     category,
			"tags":         tags,
			"started_at":   time.Now().Add(-time.Duration(hoursAgo) * time.Hour).Format(time.RFC3339Nano),
		}
		statusCode, bodyBytes := sendAuthedRequest(t, server, http.MethodPost, "/api/v1/leaderboard/complete", userID, payload)
		require.Equal(t, http.StatusCreated, statusCode, "body: %s", string(bodyBytes))
	}

	// alice: 2完走 (平均が重い)、bob: 2完走 (平均が軽い) → 同数なら平均日数の少ない bob が上
	complete(alice, "Go Roadmap", "backend", []string{"go"}, 10*24)
	complete(alice, "SQL Roadmap", "data", []string{"sql"}, 10*24)
	complete(bob, "Web Roadmap", "web", []string{"html"}, 2*24)
	complete(bob, "CSS Roadmap", "web", []string{"css"}, 2*24)

	statusCode, bodyBytes := sendAuthedRequest(t, server, http.MethodGet, "/api/v1/leaderboard?scope=all", viewer, nil)
	require.Equal(t, http.StatusOK, statusCode, "body: %s", string(bodyBytes))

	var resp model.LeaderboardResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &resp))
	require.Len(t, resp.Rankings, 3)

	assert.Equal(t, "rank_bob", resp.Rankings[0].Username)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "rank_alice", resp.Rankings[1].Username)
	assert.Equal(t, 2, resp.Rankings[1].Rank)

	// 完走ゼロの閲覧者は合成エントリで末尾に入る
	assert.Equal(t, "rank_viewer", resp.Rankings[2].Username)
	assert.Equal(t, 0, resp.Rankings[2].TotalCompleted)
	require.NotNil(t, resp.CurrentUserIndex)
	assert.Equal(t, 2, *resp.CurrentUserIndex)

	// カテゴリ絞り込み (JSONBタグ列を含む実DBのクエリ経路を通す)
	statusCode, bodyBytes = sendAuthedRequest(t, server, http.MethodGet, "/api/v1/leaderboard?scope=all&category=web", viewer, nil)
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(bodyBytes, &resp))
	require.Len(t, resp.Rankings, 2) // bob + 閲覧者の合成エントリ
	assert.Equal(t, "rank_bob", resp.Rankings[0].Username)
	assert.Equal(t, 2, resp.Rankings[0].TotalCompleted)

	// タグ絞り込み
	statusCode, bodyBytes = sendAuthedRequest(t, server, http.MethodGet, "/api/v1/leaderboard?scope=all&tag=go", viewer, nil)
	require.Equal(t, http.StatusOK, statusCode)
	require.NoError(t, json.Unmarshal(bodyBytes, &resp))
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "rank_alice", resp.Rankings[0].Username)
	assert.Equal(t, 1, resp.Rankings[0].TotalCompleted)

	// フィルタ語彙
	statusCode, bodyBytes = sendAuthedRequest(t, server, http.MethodGet, "/api/v1/leaderboard/filters", viewer, nil)
	require.Equal(t, http.StatusOK, statusCode)
	var filters model.FilterOptionsResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &filters))
	assert.Equal(t, []string{"backend", "data", "web"}, filters.Categories)
	assert.Equal(t, []string{"css", "go", "html", "sql"}, filters.Tags)
}

func TestLeaderboardAPI_FriendsScope(t *testing.T) {
	app := setupTestApp(t)
	server := httptest.NewServer(app.router)
	defer server.Close()

	clearTables(t, testDB)
	viewer := createTestUser(t, testDB, "friends_viewer")
	friend := createTestUser(t, testDB, "friends_friend")
	stranger := createTestUser(t, testDB, "friends_stranger")

	require.NoError(t, testDB.Create(&model.Friendship{
		FriendshipID: uuid.New(),
		RequesterID:  friend,
		AddresseeID:  viewer,
		Status:       model.FriendshipAccepted,
	}).Error)

	for _, userID := range []uuid.UUID{friend, stranger} {
		payload := map[string]interface{}{
			"roadmap_id":   uuid.New().String(),
			"roadmap_name": "Go Roadmap",
		}
		statusCode, _ := sendAuthedRequest(t, server, http.MethodPost, "/api/v1/leaderboard/complete", userID, payload)
		require.Equal(t, http.StatusCreated, statusCode)
	}

	statusCode, bodyBytes := sendAuthedRequest(t, server, http.MethodGet, "/api/v1/leaderboard?scope=friends", viewer, nil)
	require.Equal(t, http.StatusOK, statusCode, "body: %s", string(bodyBytes))

	var resp model.LeaderboardResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &resp))

	// フレンドと自分だけ。無関係ユーザーは含まれない
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "friends_friend", resp.Rankings[0].Username)
	assert.Equal(t, "friends_viewer", resp.Rankings[1].Username)
	assert.Equal(t, 0, resp.Rankings[1].TotalCompleted)
}

func TestProgressAPI_StepLifecycleAndFriends(t *testing.T) {
	app := setupTestApp(t)
	server := httptest.NewServer(app.router)
	defer server.Close()

	clearTables(t, testDB)
	viewer := createTestUser(t, testDB, "progress_viewer")
	friend := createTestUser(t, testDB, "progress_friend")
	roadmapID := uuid.New()

	require.NoError(t, testDB.Create(&model.Friendship{
		FriendshipID: uuid.New(),
		RequesterID:  viewer,
		AddresseeID:  friend,
		Status:       model.FriendshipAccepted,
	}).Error)

	stepReq := func(step int) map[string]interface{} {
		return map[string]interface{}{
			"roadmap_id": roadmapID.String(),
			"step_index": step,
		}
	}

	// フレンドがステップ 0, 1 を完了し、2 に着手する
	for _, step := range []int{0, 1} {
		statusCode, bodyBytes := sendAuthedRequest(t, server, http.MethodPost, "/api/v1/progress/complete", friend, stepReq(step))
		require.Equal(t, http.StatusOK, statusCode, "body: %s", string(bodyBytes))
	}
	statusCode, _ := sendAuthedRequest(t, server, http.MethodPost, "/api/v1/progress/start", friend, stepReq(2))
	require.Equal(t, http.StatusOK, statusCode)

	// 完了の再送も冪等に 200
	statusCode, _ = sendAuthedRequest(t, server, http.MethodPost, "/api/v1/progress/complete", friend, stepReq(1))
	require.Equal(t, http.StatusOK, statusCode)

	var count int64
	require.NoError(t, testDB.Model(&model.StepProgressRecord{}).
		Where("user_id = ? AND roadmap_id = ?", friend, roadmapID).
		Count(&count).Error)
	assert.Equal(t, int64(3), count)

	// 閲覧者から見たフレンド進捗: 最大の完了ステップ 1 が現在地
	statusCode, bodyBytes := sendAuthedRequest(t, server, http.MethodGet, "/api/v1/progress/friends/"+roadmapID.String(), viewer, nil)
	require.Equal(t, http.StatusOK, statusCode, "body: %s", string(bodyBytes))

	var resp model.FriendProgressResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &resp))
	require.Len(t, resp.FriendProgress, 1)
	assert.Equal(t, "progress_friend", resp.FriendProgress[0].Username)
	assert.Equal(t, 1, resp.FriendProgress[0].CurrentStepIndex)
	assert.Equal(t, 2, resp.FriendProgress[0].TotalCompleted)
}
