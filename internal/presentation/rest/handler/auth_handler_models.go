package handler

// RequestOTPRequest OTP発行リクエスト
// @Description OTP発行リクエスト
type RequestOTPRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// RequestOTPResponse OTP発行レスポンス
// @Description OTP発行レスポンス
type RequestOTPResponse struct {
	Email     string `json:"email" example:"user@example.com"`
	ExpiresIn int    `json:"expires_in" example:"300"`
}

// VerifyOTPRequest OTP検証リクエスト
// @Description OTP検証リクエスト
type VerifyOTPRequest struct {
	Email string `json:"email" example:"user@example.com"`
	Code  string `json:"otp" example:"123456"`
}

// VerifySeedPhraseRequest シードフレーズ検証リクエスト
// @Description シードフレーズ検証リクエスト
type VerifySeedPhraseRequest struct {
	Email  string `json:"email" example:"user@example.com"`
	Phrase string `json:"phrase" example:"abandon ability able ..."`
}

// LoginResponse 認証完了レスポンス
// @Description 認証完了レスポンス
type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOi..."`
	Role  string `json:"role" example:"user"`
}
