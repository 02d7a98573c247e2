package transaction

import (
	"fmt"
)

// TransactionType トランザクションタイプを表す値オブジェクト
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"    // 入金
	TransactionTypeWithdrawal TransactionType = "withdrawal" // 出金
	TransactionTypePlans      TransactionType = "plans"      // プラン購入
	TransactionTypeYield      TransactionType = "yield"      // 運用益
	TransactionTypeSwap       TransactionType = "swap"       // スワップ
	TransactionTypeBuy        TransactionType = "buy"        // 購入
	TransactionTypeSell       TransactionType = "sell"       // 売却
)

// NewTransactionType 新しいTransactionTypeを作成
func NewTransactionType(s string) (TransactionType, error) {
	switch s {
	case "deposit", "withdrawal", "plans", "yield", "swap", "buy", "sell":
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
}

// String 文字列表現を返す
func (tt TransactionType) String() string {
	return string(tt)
}

// Valid 有効なトランザクションタイプかどうかを返す
func (tt TransactionType) Valid() bool {
	switch tt {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypePlans,
		TransactionTypeYield, TransactionTypeSwap, TransactionTypeBuy, TransactionTypeSell:
		return true
	default:
		return false
	}
}

// IsWithdrawal 出金タイプかどうかを返す
func (tt TransactionType) IsWithdrawal() bool {
	return tt == TransactionTypeWithdrawal
}
