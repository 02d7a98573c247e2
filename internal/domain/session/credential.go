package session

// Credential 呼び出しごとに明示的に引き回す認証コンテキスト
// 共有クライアントのヘッダーを書き換える方式では、ユーザーと管理者の
// リクエストが並行した際にトークンが漏れ合うため、ベアラートークンは
// この値オブジェクトとして各呼び出しに渡す。
type Credential struct {
	token   string
	subject string // トークンの主体（メールアドレス）
	role    Role
}

// NewCredential 新しいCredentialを作成
func NewCredential(token, subject string, role Role) (Credential, error) {
	if token == "" {
		return Credential{}, ErrMissingToken
	}
	if !role.IsAdmin() && role != RoleUser {
		return Credential{}, ErrInvalidRole
	}
	return Credential{
		token:   token,
		subject: subject,
		role:    role,
	}, nil
}

// Token ベアラートークンを返す
func (c Credential) Token() string {
	return c.token
}

// Subject トークンの主体を返す
func (c Credential) Subject() string {
	return c.subject
}

// Role ロールを返す
func (c Credential) Role() Role {
	return c.role
}

// IsZero 空のCredentialかどうかを返す
func (c Credential) IsZero() bool {
	return c.token == ""
}

// MustNewCredential テスト用ヘルパー: NewCredentialを呼び出し、エラーが発生した場合はpanicする
func MustNewCredential(token, subject string, role Role) Credential {
	c, err := NewCredential(token, subject, role)
	if err != nil {
		panic(err)
	}
	return c
}
