package handler

// TransactionItem トランザクションアイテム
// @Description トランザクションアイテム
type TransactionItem struct {
	TransactionID         string `json:"transaction_id" example:"txn_123"`
	Email                 string `json:"email" example:"user@example.com"`
	Type                  string `json:"type" example:"deposit"`
	Amount                int64  `json:"amount" example:"1000"`
	Status                string `json:"status" example:"pending"`
	Coin                  string `json:"coin" example:"BTC"`
	Network               string `json:"network,omitempty" example:"mainnet"`
	Receipt               string `json:"receipt,omitempty" example:"data:image/png;base64,iVBOR..."`
	WithdrawWalletAddress string `json:"withdraw_wallet_address,omitempty" example:"bc1q..."`
	CreatedAt             string `json:"created_at" example:"2024-01-01T12:00:00Z"`
}

// PageItem ページネーションUIの1要素
// @Description ページ番号または省略記号
type PageItem struct {
	Number   int    `json:"number,omitempty" example:"3"`
	Ellipsis bool   `json:"ellipsis,omitempty" example:"false"`
	Label    string `json:"label" example:"3"`
}

// LedgerPageResponse トランザクション履歴レスポンス
// @Description トランザクション履歴レスポンス
type LedgerPageResponse struct {
	Transactions []TransactionItem `json:"transactions"`
	Pending      []TransactionItem `json:"pending"`
	Settled      []TransactionItem `json:"settled"`
	Page         int               `json:"page" example:"1"`
	Limit        int               `json:"limit" example:"10"`
	TotalPages   int               `json:"total_pages" example:"5"`
	Total        int               `json:"total" example:"42"`
	PageNumbers  []PageItem        `json:"page_numbers"`
}

// UpdateStatusRequest ステータス遷移リクエスト
// @Description ステータス遷移リクエスト
type UpdateStatusRequest struct {
	Status string `json:"status" example:"completed"`
}
