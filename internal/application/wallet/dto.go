package wallet

import "wallet-gateway/internal/domain/transaction"

// SubmitDepositRequest 入金申請リクエスト
type SubmitDepositRequest struct {
	Amount        int64
	Coin          string
	Network       string // 任意
	Image         []byte // 任意の領収書画像
	ImageFilename string
}

// SubmitWithdrawalRequest 出金申請リクエスト
type SubmitWithdrawalRequest struct {
	Amount        int64
	Coin          string
	Network       string // 任意
	WalletAddress string // 必須
}

// SubmitResponse 申請レスポンス
type SubmitResponse struct {
	Transaction *transaction.Transaction
}
