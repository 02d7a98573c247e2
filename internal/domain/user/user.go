package user

import (
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// KYCStatus 本人確認ステータス
type KYCStatus string

const (
	KYCStatusNone     KYCStatus = "none"     // 未提出
	KYCStatusPending  KYCStatus = "pending"  // 審査中
	KYCStatusVerified KYCStatus = "verified" // 承認済み
	KYCStatusRejected KYCStatus = "rejected" // 却下
)

// Valid 有効なKYCステータスかどうかを返す
func (k KYCStatus) Valid() bool {
	switch k {
	case KYCStatusNone, KYCStatusPending, KYCStatusVerified, KYCStatusRejected:
		return true
	default:
		return false
	}
}

// String 文字列表現を返す
func (k KYCStatus) String() string {
	return string(k)
}

// User ユーザーエンティティ
// バックエンドが所有する外部エンティティ。プロフィール表示と管理者による
// アカウント管理のためにAPI経由で読み書きする。
type User struct {
	id        string
	email     string
	fullName  string
	country   string
	kycStatus KYCStatus
	suspended bool
	createdAt time.Time
}

// NewUser 新しいUserエンティティを作成
func NewUser(id, email, fullName, country string, kycStatus KYCStatus, suspended bool, createdAt time.Time) (*User, error) {
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !kycStatus.Valid() {
		kycStatus = KYCStatusNone
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &User{
		id:        id,
		email:     email,
		fullName:  fullName,
		country:   country,
		kycStatus: kycStatus,
		suspended: suspended,
		createdAt: createdAt,
	}, nil
}

// ID ユーザーIDを返す
func (u *User) ID() string {
	return u.id
}

// Email メールアドレスを返す
func (u *User) Email() string {
	return u.email
}

// FullName 氏名を返す
func (u *User) FullName() string {
	return u.fullName
}

// Country 居住国を返す
func (u *User) Country() string {
	return u.country
}

// KYCStatus 本人確認ステータスを返す
func (u *User) KYCStatus() KYCStatus {
	return u.kycStatus
}

// Suspended 凍結中かどうかを返す
func (u *User) Suspended() bool {
	return u.suspended
}

// CreatedAt 作成日時を返す
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// MustNewUser テスト用ヘルパー: NewUserを呼び出し、エラーが発生した場合はpanicする
func MustNewUser(id, email, fullName, country string, kycStatus KYCStatus, suspended bool, createdAt time.Time) *User {
	u, err := NewUser(id, email, fullName, country, kycStatus, suspended, createdAt)
	if err != nil {
		panic(err)
	}
	return u
}
