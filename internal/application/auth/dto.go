package auth

// RequestOTPRequest OTP発行リクエスト
type RequestOTPRequest struct {
	Email string
}

// RequestOTPResponse OTP発行レスポンス
type RequestOTPResponse struct {
	Email     string
	ExpiresIn int // 秒
}

// VerifyOTPRequest OTP検証リクエスト
type VerifyOTPRequest struct {
	Email string
	Code  string
}

// VerifySeedPhraseRequest シードフレーズ検証リクエスト
type VerifySeedPhraseRequest struct {
	Email  string
	Phrase string
}

// LoginResponse 認証完了レスポンス
type LoginResponse struct {
	Token string
	Role  string
}
