package ledger

import (
	domledger "wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/transaction"
)

// GetHistoryRequest トランザクション履歴取得リクエスト
type GetHistoryRequest struct {
	Page  int
	Limit int // 0の場合はデフォルト値
}

// HistoryResponse トランザクション履歴取得レスポンス
// エンベロープに加え、分割済みビューとページネーションUI用の
// ページ番号列を含む。
type HistoryResponse struct {
	Page      *domledger.Page
	Pending   []*transaction.Transaction
	Settled   []*transaction.Transaction
	PageItems []domledger.PageItem
}

// UpdateStatusRequest ステータス遷移リクエスト
type UpdateStatusRequest struct {
	TransactionID string
	Status        string
}
