package session

import "context"

// OTPChallenge OTP発行結果
type OTPChallenge struct {
	Email     string
	ExpiresIn int // 秒
}

// AuthResult 認証フロー完了時にバックエンドが発行する結果
type AuthResult struct {
	Token string
	Role  Role
}

// AuthGateway シードフレーズ/OTP認証フローを提供するインターフェース
// 認証プロトコルそのものはバックエンドが所有し、本システムは転送のみを行う。
type AuthGateway interface {
	// RequestOTP 指定メールアドレス宛のOTP発行を要求
	RequestOTP(ctx context.Context, email string) (*OTPChallenge, error)

	// VerifyOTP OTPを検証しトークンを取得
	VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error)

	// VerifySeedPhrase シードフレーズを検証しトークンを取得
	VerifySeedPhrase(ctx context.Context, email, phrase string) (*AuthResult, error)
}
