package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable バックエンドに到達できないエラー
	ErrUnavailable = errors.New("upstream unavailable")
)

// APIError バックエンドが返した業務エラー
// HTTPエラーボディのmessageフィールドをそのまま保持し、呼び出し側で
// ユーザー通知として表示する。
type APIError struct {
	StatusCode int
	Message    string
}

// Error errorインターフェースの実装
func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// NewAPIError 新しいAPIErrorを作成
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// AsAPIError errからAPIErrorを取り出す
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
