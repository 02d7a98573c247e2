package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	adminapp "wallet-gateway/internal/application/admin"
	authapp "wallet-gateway/internal/application/auth"
	ledgerapp "wallet-gateway/internal/application/ledger"
	pricingapp "wallet-gateway/internal/application/pricing"
	profileapp "wallet-gateway/internal/application/profile"
	walletapp "wallet-gateway/internal/application/wallet"
	domledger "wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/pricing"
	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
	"wallet-gateway/internal/domain/user"
	"wallet-gateway/internal/infrastructure/config"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

const testSecret = "router-test-secret"

// stubTransactionRepo 固定応答のトランザクションリポジトリ
type stubTransactionRepo struct{}

func (s *stubTransactionRepo) FetchUserHistory(ctx context.Context, cred session.Credential, page int, limit domledger.Limit) (*domledger.Page, error) {
	return &domledger.Page{
		Transactions: []*transaction.Transaction{
			transaction.MustNewTransaction("txn-1", cred.Subject(), transaction.TransactionTypeDeposit,
				1000, transaction.TransactionStatusPending, "BTC", nil,
				transaction.NewReceipt(""), nil, time.Now()),
		},
		PageNum: page, Limit: limit.Int(), TotalPages: 1, Total: 1,
	}, nil
}

func (s *stubTransactionRepo) FetchAllTransactions(ctx context.Context, cred session.Credential, page int, limit domledger.Limit) (*domledger.Page, error) {
	return &domledger.Page{PageNum: page, Limit: limit.Int(), TotalPages: 0, Total: 0}, nil
}

func (s *stubTransactionRepo) UpdateStatus(ctx context.Context, cred session.Credential, transactionID string, status transaction.TransactionStatus) error {
	return nil
}

// stubSubmissionRepo 固定応答の申請リポジトリ
type stubSubmissionRepo struct{}

func (s *stubSubmissionRepo) SubmitDeposit(ctx context.Context, cred session.Credential, sub *transaction.Submission) (*transaction.Transaction, error) {
	return transaction.MustNewTransaction("txn-new", cred.Subject(), sub.Type, sub.Amount,
		transaction.TransactionStatusPending, sub.Coin, sub.Network,
		transaction.NewReceipt(""), sub.WalletAddress, time.Now()), nil
}

func (s *stubSubmissionRepo) SubmitWithdrawal(ctx context.Context, cred session.Credential, sub *transaction.Submission) (*transaction.Transaction, error) {
	return s.SubmitDeposit(ctx, cred, sub)
}

// stubUserRepo 固定応答のユーザーリポジトリ
type stubUserRepo struct{}

func (s *stubUserRepo) FetchProfile(ctx context.Context, cred session.Credential) (*user.User, error) {
	return user.MustNewUser("user-1", cred.Subject(), "Taro Yamada", "JP",
		user.KYCStatusVerified, false, time.Now()), nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, cred session.Credential, update user.ProfileUpdate) (*user.User, error) {
	return s.FetchProfile(ctx, cred)
}

func (s *stubUserRepo) ListUsers(ctx context.Context, cred session.Credential, page, limit int) (*user.UserPage, error) {
	return &user.UserPage{PageNum: page, Limit: limit, TotalPages: 0, Total: 0}, nil
}

func (s *stubUserRepo) UpdateUser(ctx context.Context, cred session.Credential, email string, suspended *bool, kycStatus *user.KYCStatus) error {
	return nil
}

func (s *stubUserRepo) DeleteUser(ctx context.Context, cred session.Credential, id string) error {
	return nil
}

// stubAuthGateway 固定応答の認証ゲートウェイ
type stubAuthGateway struct{}

func (s *stubAuthGateway) RequestOTP(ctx context.Context, email string) (*session.OTPChallenge, error) {
	return &session.OTPChallenge{Email: email, ExpiresIn: 300}, nil
}

func (s *stubAuthGateway) VerifyOTP(ctx context.Context, email, code string) (*session.AuthResult, error) {
	return &session.AuthResult{Token: "issued-token", Role: session.RoleUser}, nil
}

func (s *stubAuthGateway) VerifySeedPhrase(ctx context.Context, email, phrase string) (*session.AuthResult, error) {
	return &session.AuthResult{Token: "issued-token", Role: session.RoleUser}, nil
}

// stubPriceSource 固定応答の価格ソース
type stubPriceSource struct{}

func (s *stubPriceSource) FetchQuotes(ctx context.Context, symbols []string) ([]pricing.Quote, error) {
	quotes := make([]pricing.Quote, 0, len(symbols))
	for _, sym := range symbols {
		q, err := pricing.NewQuote(sym, 100, "USD", time.Now())
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// newTestRouter テスト用ルーターを作成
func newTestRouter(t *testing.T) *Router {
	t.Helper()

	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: testSecret, Issuer: "wallet-gateway"},
		AdminAPI:  config.AdminAPIConfig{Enabled: true},
		RateLimit: config.RateLimitConfig{Rate: 100, Burst: 100},
	}

	logger := otelinfra.NewLogger(otel.Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	router, err := NewRouter(cfg, logger, metrics,
		ledgerapp.NewLedgerApplicationService(&stubTransactionRepo{}, logger, metrics),
		walletapp.NewWalletApplicationService(&stubSubmissionRepo{}, logger, metrics),
		profileapp.NewProfileApplicationService(&stubUserRepo{}, logger, metrics),
		authapp.NewAuthApplicationService(&stubAuthGateway{}, logger, metrics),
		adminapp.NewAdminApplicationService(&stubUserRepo{}, logger, metrics),
		pricingapp.NewPricingApplicationService(&stubPriceSource{}, logger, metrics),
	)
	require.NoError(t, err)
	return router
}

// signToken テスト用JWTを署名
func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": role + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	do := func(method, target, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.echo.ServeHTTP(rec, req)
		return rec
	}

	userToken := signToken(t, "user")
	adminToken := signToken(t, "admin")

	t.Run("正常系: ヘルスチェックは認証不要", func(t *testing.T) {
		rec := do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("正常系: 認証済みユーザーは履歴を取得できる", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/transaction/history", userToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "transactions")
		assert.Contains(t, body, "pending")
		assert.Contains(t, body, "settled")
		assert.Contains(t, body, "page_numbers")
	})

	t.Run("正常系: 価格エンドポイントは認証不要", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/prices?symbols=BTC,ETH", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("正常系: 管理者は全トランザクションを取得できる", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/admin/transactions", adminToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("異常系: トークンなしは401", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/transaction/history", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("異常系: 一般ユーザーの管理APIアクセスは403", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/admin/transactions", userToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("異常系: 確認フラグなしのユーザー削除は409", func(t *testing.T) {
		rec := do(http.MethodDelete, "/api/v1/admin/users/user-1", adminToken)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("正常系: 確認フラグ付きのユーザー削除は204", func(t *testing.T) {
		rec := do(http.MethodDelete, "/api/v1/admin/users/user-1?confirmed=true", adminToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("異常系: 存在しないルートは404", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/nope", userToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
