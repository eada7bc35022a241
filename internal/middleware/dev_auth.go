// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"ascent_backend/internal/model"
	"ascent_backend/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// DBでのユーザー存在チェックは行いません。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			// 開発時でも User ID は必須とする (API利用のために)
			logger.Warn("[DEV AUTH] Failed: X-User-ID header missing")
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-User-IDヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-User-ID format", "value", userIDStr)
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-User-IDの形式が正しくありません。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		// DB検証はスキップ
		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
