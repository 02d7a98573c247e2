package ledger

import (
	"wallet-gateway/internal/domain/transaction"
)

// Page ページネーションエンベロープ
// バックエンドとの唯一のページネーション契約。pageは1始まり。
type Page struct {
	Transactions []*transaction.Transaction
	PageNum      int
	Limit        int
	TotalPages   int
	Total        int
}

// ClampPage ページ番号を[1, totalPages]の範囲に丸める
// totalPagesが0以下の場合は1を返す。
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// HasNext 次のページが存在するかどうかを返す
func (p *Page) HasNext() bool {
	return p.PageNum < p.TotalPages
}

// HasPrev 前のページが存在するかどうかを返す
func (p *Page) HasPrev() bool {
	return p.PageNum > 1
}
