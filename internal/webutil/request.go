package webutil

import (
	"encoding/json"
	"net/http"

	"ascent_backend/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。
// 未知のフィールドを含むボディはビジネスロジックに届く前に拒否します。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}
