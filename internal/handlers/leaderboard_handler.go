// internal/handlers/leaderboard_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"
	"ascent_backend/internal/service"
	"ascent_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  *slog.Logger
}

func NewLeaderboardHandler(s service.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCompletion はロードマップ完走を記録するハンドラ。
// 同じ (user, roadmap) の再送は既存レコードを200で返す (エラーにしない)。
func (h *LeaderboardHandler) PostCompletion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCompletion"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.RecordCompletionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	record, created, err := h.service.RecordCompletion(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error recording completion in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	logger.Info("Completion recorded successfully",
		slog.String("completion_id", record.CompletionID.String()),
		slog.Bool("created", created),
	)
	webutil.RespondWithJSON(w, statusCode, model.RecordCompletionResponse{Completion: record}, logger)
}

// GetLeaderboard はランキングを返すハンドラ。
// クエリパラメータ: scope (all | friends, 省略時 all), category, tag
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetLeaderboard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	query := model.LeaderboardQuery{
		Scope:    model.ScopeAll,
		Category: r.URL.Query().Get("category"),
		Tag:      r.URL.Query().Get("tag"),
	}
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", string(model.ScopeAll):
		query.Scope = model.ScopeAll
	case string(model.ScopeFriends):
		query.Scope = model.ScopeFriends
	default:
		logger.Warn("Invalid scope parameter", slog.String("scope", scope))
		appErr := model.NewAppError("VALIDATION_ERROR", "scopeは all または friends を指定してください。", "scope", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	response, err := h.service.GetLeaderboard(r.Context(), userID, query)
	if err != nil {
		logger.Error("Error computing leaderboard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Leaderboard returned", slog.Int("entries", len(response.Rankings)))
	webutil.RespondWithJSON(w, http.StatusOK, response, logger)
}

// GetFilters はフィルタ語彙 (カテゴリ・タグの候補) を返すハンドラ
func (h *LeaderboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFilters"))

	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	response, err := h.service.GetFilterOptions(r.Context())
	if err != nil {
		logger.Error("Error getting filter options in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, response, logger)
}
