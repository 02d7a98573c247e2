package handler

// UserPageResponse ユーザー一覧レスポンス
// @Description ユーザー一覧レスポンス
type UserPageResponse struct {
	Users      []ProfileResponse `json:"users"`
	Page       int               `json:"page" example:"1"`
	Limit      int               `json:"limit" example:"10"`
	TotalPages int               `json:"total_pages" example:"3"`
	Total      int               `json:"total" example:"25"`
}

// UpdateUserRequest ユーザー更新リクエスト
// @Description ユーザー更新リクエスト（nilのフィールドは変更しない）
type UpdateUserRequest struct {
	Suspended *bool   `json:"suspended,omitempty" example:"true"`
	KYCStatus *string `json:"kyc_status,omitempty" example:"verified"`
}
