package user

import "errors"

var (
	// ErrUserNotFound ユーザーが見つからないエラー
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidEmail メールアドレスが無効
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidField 更新フィールドが無効
	ErrInvalidField = errors.New("invalid profile field")
	// ErrDeleteNotConfirmed 削除が確認されていないエラー
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
)
