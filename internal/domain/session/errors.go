package session

import "errors"

var (
	// ErrMissingToken トークンが未指定
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidRole ロールが無効
	ErrInvalidRole = errors.New("invalid role")
	// ErrUnauthorized 認証エラー（トークン欠落・期限切れ）
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidOTP ワンタイムパスワードが無効
	ErrInvalidOTP = errors.New("invalid otp")
	// ErrInvalidSeedPhrase シードフレーズが無効
	ErrInvalidSeedPhrase = errors.New("invalid seed phrase")
)
