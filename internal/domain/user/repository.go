package user

import (
	"context"

	"wallet-gateway/internal/domain/session"
)

// ProfileUpdate プロフィール更新フィールド
// nilのフィールドは変更しない。
type ProfileUpdate struct {
	FullName *string
	Country  *string
}

// UserPage ユーザー一覧のページネーションエンベロープ
type UserPage struct {
	Users      []*User
	PageNum    int
	Limit      int
	TotalPages int
	Total      int
}

// UserRepository ユーザー情報へのアクセスを提供するインターフェース
// 実体は外部バックエンドAPI。
type UserRepository interface {
	// FetchProfile 認証ユーザー自身のプロフィールを取得
	FetchProfile(ctx context.Context, cred session.Credential) (*User, error)

	// UpdateProfile 認証ユーザー自身のプロフィールを更新
	UpdateProfile(ctx context.Context, cred session.Credential, update ProfileUpdate) (*User, error)

	// ListUsers 全ユーザーの一覧を1ページ取得（管理者用）
	ListUsers(ctx context.Context, cred session.Credential, page, limit int) (*UserPage, error)

	// UpdateUser 指定ユーザーを更新（管理者用、メールアドレスで指定）
	UpdateUser(ctx context.Context, cred session.Credential, email string, suspended *bool, kycStatus *KYCStatus) error

	// DeleteUser 指定ユーザーを削除（管理者用、IDで指定）
	DeleteUser(ctx context.Context, cred session.Credential, id string) error
}
