package ledger

import (
	"context"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
)

// TransactionRepository トランザクション台帳へのアクセスを提供するインターフェース
// 実体は外部バックエンドAPIであり、本システムは読み取りとステータス遷移のみを行う。
type TransactionRepository interface {
	// FetchUserHistory 認証ユーザー自身のトランザクション履歴を1ページ取得
	FetchUserHistory(ctx context.Context, cred session.Credential, page int, limit Limit) (*Page, error)

	// FetchAllTransactions 全ユーザーのトランザクションを1ページ取得（管理者用）
	FetchAllTransactions(ctx context.Context, cred session.Credential, page int, limit Limit) (*Page, error)

	// UpdateStatus 指定トランザクションのステータスのみを変更（管理者用）
	UpdateStatus(ctx context.Context, cred session.Credential, transactionID string, status transaction.TransactionStatus) error
}
