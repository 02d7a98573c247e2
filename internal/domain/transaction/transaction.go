package transaction

import (
	"regexp"
	"time"
)

const (
	// MaxAmount 最大金額 (10兆)
	MaxAmount = 10_000_000_000_000
)

var (
	idRegex    = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]{1,255}$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

// Transaction トランザクションエンティティ
// バックエンドが所有する外部エンティティであり、本システムはAPI経由で
// 読み取りとステータス遷移のみを行う。
type Transaction struct {
	transactionID         string
	email                 string
	transactionType       TransactionType
	amount                int64 // 最小単位の整数値（小数点なし）
	status                TransactionStatus
	coin                  string  // コインシンボル（自由形式、クライアント側では検証しない）
	network               *string // チェーン識別子（ERC20など、オプション）
	receipt               Receipt // 領収書画像（オプション）
	withdrawWalletAddress *string // 出金タイプのみ
	createdAt             time.Time
}

// NewTransaction 新しいTransactionエンティティを作成
// createdAtがゼロ値の場合は現在時刻を補完する（表示用のフォールバックであり、
// バックエンドへ書き戻されることはない）。
func NewTransaction(
	transactionID string,
	email string,
	transactionType TransactionType,
	amount int64,
	status TransactionStatus,
	coin string,
	network *string,
	receipt Receipt,
	withdrawWalletAddress *string,
	createdAt time.Time,
) (*Transaction, error) {
	if !idRegex.MatchString(transactionID) {
		return nil, ErrInvalidTransactionID
	}
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !transactionType.Valid() || !status.Valid() {
		return nil, ErrInvalidTransaction
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if amount > MaxAmount {
		return nil, ErrAmountTooLarge
	}

	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &Transaction{
		transactionID:         transactionID,
		email:                 email,
		transactionType:       transactionType,
		amount:                amount,
		status:                status,
		coin:                  coin,
		network:               network,
		receipt:               receipt,
		withdrawWalletAddress: withdrawWalletAddress,
		createdAt:             createdAt,
	}, nil
}

// TransactionID トランザクションIDを返す
func (t *Transaction) TransactionID() string {
	return t.transactionID
}

// Email 所有ユーザーのメールアドレスを返す
func (t *Transaction) Email() string {
	return t.email
}

// TransactionType トランザクションタイプを返す
func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

// Amount 金額を返す
func (t *Transaction) Amount() int64 {
	return t.amount
}

// Status ステータスを返す
func (t *Transaction) Status() TransactionStatus {
	return t.status
}

// Coin コインシンボルを返す
func (t *Transaction) Coin() string {
	return t.coin
}

// Network チェーン識別子を返す
func (t *Transaction) Network() *string {
	return t.network
}

// Receipt 領収書を返す
func (t *Transaction) Receipt() Receipt {
	return t.receipt
}

// WithdrawWalletAddress 出金先ウォレットアドレスを返す
func (t *Transaction) WithdrawWalletAddress() *string {
	return t.withdrawWalletAddress
}

// CreatedAt 作成日時を返す
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// UpdateStatus ステータスを更新
// 遷移の妥当性はクライアント側では検証しない。completed → pending を含む
// 任意の遷移を許可し、実際の不変条件の強制はバックエンドに委ねる。
func (t *Transaction) UpdateStatus(status TransactionStatus) error {
	if !status.Valid() {
		return ErrInvalidTransaction
	}
	t.status = status
	return nil
}

// MustNewTransaction テスト用ヘルパー: NewTransactionを呼び出し、エラーが発生した場合はpanicする
func MustNewTransaction(
	transactionID string,
	email string,
	transactionType TransactionType,
	amount int64,
	status TransactionStatus,
	coin string,
	network *string,
	receipt Receipt,
	withdrawWalletAddress *string,
	createdAt time.Time,
) *Transaction {
	t, err := NewTransaction(transactionID, email, transactionType, amount, status, coin, network, receipt, withdrawWalletAddress, createdAt)
	if err != nil {
		panic(err)
	}
	return t
}
