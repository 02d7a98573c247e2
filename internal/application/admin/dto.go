package admin

import "wallet-gateway/internal/domain/user"

// ListUsersRequest ユーザー一覧取得リクエスト
type ListUsersRequest struct {
	Page  int
	Limit int // 0の場合はデフォルト値
}

// ListUsersResponse ユーザー一覧レスポンス
type ListUsersResponse struct {
	Page *user.UserPage
}

// UpdateUserRequest ユーザー更新リクエスト（メールアドレスで指定）
type UpdateUserRequest struct {
	Email     string
	Suspended *bool
	KYCStatus *string
}

// DeleteUserRequest ユーザー削除リクエスト（IDで指定）
// Confirmedがfalseの場合は削除を実行しない。
type DeleteUserRequest struct {
	ID        string
	Confirmed bool
}
