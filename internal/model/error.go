// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user not found or invalid")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
)

// AppError はエラーコード・メッセージ・対象フィールドを持つアプリケーションエラーです。
// 根本原因のエラー (model.ErrNotFound など) をラップし、HTTPステータスの判定に使います。
type AppError struct {
	Detail ErrorDetail
	Err    error // ラップされた根本原因
}

// ErrorDetail はクライアントに返すエラー情報
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
