package session

import "fmt"

// Role 認証主体のロールを表す値オブジェクト
type Role string

const (
	RoleUser  Role = "user"  // 一般ユーザー
	RoleAdmin Role = "admin" // 管理者
)

// NewRole 新しいRoleを作成
func NewRole(s string) (Role, error) {
	switch s {
	case "user", "admin":
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role: %s", s)
	}
}

// String 文字列表現を返す
func (r Role) String() string {
	return string(r)
}

// IsAdmin 管理者ロールかどうかを返す
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
