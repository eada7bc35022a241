// internal/handlers/progress_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ascent_backend/internal/middleware"
	"ascent_backend/internal/model"
	"ascent_backend/internal/service"
	"ascent_backend/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// decodeStepRequest はステップ進捗APIの共通デコード+バリデーション
func (h *ProgressHandler) decodeStepRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, int, bool) {
	var req model.StepProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, 0, false
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return uuid.Nil, 0, false
	}

	roadmapID, err := uuid.Parse(req.RoadmapID)
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "ロードマップIDの形式が正しくありません。", "roadmap_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, 0, false
	}

	return roadmapID, *req.StepIndex, true
}

// PostStartStep はステップ着手を記録するハンドラ
func (h *ProgressHandler) PostStartStep(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostStartStep"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	roadmapID, stepIndex, ok := h.decodeStepRequest(w, r, logger)
	if !ok {
		return
	}

	record, err := h.service.StartStep(r.Context(), userID, roadmapID, stepIndex)
	if err != nil {
		logger.Error("Error starting step in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Step started", slog.String("roadmap_id", roadmapID.String()), slog.Int("step_index", stepIndex))
	webutil.RespondWithJSON(w, http.StatusOK, model.StepProgressResponse{StepProgress: record}, logger)
}

// PostCompleteStep はステップ完了を記録するハンドラ
func (h *ProgressHandler) PostCompleteStep(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCompleteStep"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	roadmapID, stepIndex, ok := h.decodeStepRequest(w, r, logger)
	if !ok {
		return
	}

	record, err := h.service.CompleteStep(r.Context(), userID, roadmapID, stepIndex)
	if err != nil {
		logger.Error("Error completing step in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Step completed", slog.String("roadmap_id", roadmapID.String()), slog.Int("step_index", stepIndex))
	webutil.RespondWithJSON(w, http.StatusOK, model.StepProgressResponse{StepProgress: record}, logger)
}

// GetFriendProgress はフレンドの現在位置一覧を返すハンドラ
func (h *ProgressHandler) GetFriendProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFriendProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	roadmapIDStr := chi.URLParam(r, "roadmap_id")
	roadmapID, err := uuid.Parse(roadmapIDStr)
	if err != nil {
		logger.Warn("Invalid roadmap ID format", slog.String("roadmap_id", roadmapIDStr))
		appErr := model.NewAppError("VALIDATION_ERROR", "ロードマップIDの形式が正しくありません。", "roadmap_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	progress, err := h.service.GetFriendProgress(r.Context(), userID, roadmapID)
	if err != nil {
		logger.Error("Error getting friend progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if progress == nil {
		progress = []*model.FriendProgress{}
	}
	logger.Info("Friend progress returned", slog.Int("count", len(progress)))
	webutil.RespondWithJSON(w, http.StatusOK, model.FriendProgressResponse{FriendProgress: progress}, logger)
}
