package transaction

import (
	"context"

	"wallet-gateway/internal/domain/session"
)

// Submission 入出金の申請内容
// バックエンドへはmultipartフォームとして転送される。Imageはオプションの
// 領収書画像（生のバイト列）。
type Submission struct {
	SubmissionID  string // クライアント生成の冪等キー
	Type          TransactionType
	Amount        int64
	Coin          string
	Network       *string
	WalletAddress *string // 出金時は必須
	Image         []byte
	ImageFilename string
}

// Validate 申請内容をネットワーク呼び出し前に検証
func (s *Submission) Validate() error {
	if s.Coin == "" {
		return ErrInvalidTransaction
	}
	if s.Amount <= 0 {
		return ErrInvalidAmount
	}
	if s.Amount > MaxAmount {
		return ErrAmountTooLarge
	}
	if s.Type.IsWithdrawal() && (s.WalletAddress == nil || *s.WalletAddress == "") {
		return ErrMissingWalletAddress
	}
	return nil
}

// SubmissionRepository 入出金申請の送信先を表すインターフェース
type SubmissionRepository interface {
	// SubmitDeposit 入金申請を送信
	SubmitDeposit(ctx context.Context, cred session.Credential, sub *Submission) (*Transaction, error)

	// SubmitWithdrawal 出金申請を送信
	SubmitWithdrawal(ctx context.Context, cred session.Credential, sub *Submission) (*Transaction, error)
}
