package handler

// ProfileResponse プロフィールレスポンス
// @Description プロフィールレスポンス
type ProfileResponse struct {
	ID        string `json:"id" example:"user_123"`
	Email     string `json:"email" example:"user@example.com"`
	FullName  string `json:"full_name" example:"Taro Yamada"`
	Country   string `json:"country" example:"JP"`
	KYCStatus string `json:"kyc_status" example:"verified"`
	Suspended bool   `json:"suspended" example:"false"`
	CreatedAt string `json:"created_at" example:"2024-01-01T12:00:00Z"`
}

// UpdateProfileRequest プロフィール更新リクエスト
// @Description プロフィール更新リクエスト（nilのフィールドは変更しない）
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" example:"Taro Yamada"`
	Country  *string `json:"country,omitempty" example:"JP"`
}
