package profile

import "wallet-gateway/internal/domain/user"

// UpdateProfileRequest プロフィール更新リクエスト
// nilのフィールドは変更しない。
type UpdateProfileRequest struct {
	FullName *string
	Country  *string
}

// ProfileResponse プロフィールレスポンス
type ProfileResponse struct {
	User *user.User
}
