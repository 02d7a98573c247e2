package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	ledgerapp "wallet-gateway/internal/application/ledger"
	domledger "wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// MockTransactionRepository モックトランザクションリポジトリ
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FetchUserHistory(ctx context.Context, cred session.Credential, page int, limit domledger.Limit) (*domledger.Page, error) {
	args := m.Called(ctx, cred, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domledger.Page), args.Error(1)
}

func (m *MockTransactionRepository) FetchAllTransactions(ctx context.Context, cred session.Credential, page int, limit domledger.Limit) (*domledger.Page, error) {
	args := m.Called(ctx, cred, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domledger.Page), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, cred session.Credential, transactionID string, status transaction.TransactionStatus) error {
	args := m.Called(ctx, cred, transactionID, status)
	return args.Error(0)
}

// newTestLedgerHandler テスト用ハンドラーとモックを作成
func newTestLedgerHandler(t *testing.T) (*LedgerHandler, *MockTransactionRepository) {
	t.Helper()
	mockRepo := new(MockTransactionRepository)

	logger := otelinfra.NewLogger(otel.Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	service := ledgerapp.NewLedgerApplicationService(mockRepo, logger, metrics)
	return NewLedgerHandler(service), mockRepo
}

// makeTxn テスト用トランザクションを作成
func makeTxn(id string, status transaction.TransactionStatus) *transaction.Transaction {
	return transaction.MustNewTransaction(
		id,
		"user@example.com",
		transaction.TransactionTypeDeposit,
		1000,
		status,
		"BTC",
		nil,
		transaction.NewReceipt("iVBORw0KGgo"),
		nil,
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	)
}

// newAuthedContext 認証済みコンテキストを作成
func newAuthedContext(req *http.Request, cred session.Credential) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("credential", cred)
	return c, rec
}

func TestLedgerHandler_GetTransactionHistory(t *testing.T) {
	cred := session.MustNewCredential("user-token", "user@example.com", session.RoleUser)

	t.Run("正常系: 分割ビューとページ番号を含むレスポンスを返す", func(t *testing.T) {
		h, mockRepo := newTestLedgerHandler(t)

		page := &domledger.Page{
			Transactions: []*transaction.Transaction{
				makeTxn("txn-1", transaction.TransactionStatusPending),
				makeTxn("txn-2", transaction.TransactionStatusCompleted),
			},
			PageNum: 1, Limit: 10, TotalPages: 3, Total: 25,
		}
		mockRepo.On("FetchUserHistory", mock.Anything, cred, 1, domledger.DefaultLimit).Return(page, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/history", nil)
		c, rec := newAuthedContext(req, cred)

		err := h.GetTransactionHistory(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body LedgerPageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Transactions, 2)
		require.Len(t, body.Pending, 1)
		assert.Equal(t, "txn-1", body.Pending[0].TransactionID)
		require.Len(t, body.Settled, 1)
		assert.Equal(t, "txn-2", body.Settled[0].TransactionID)
		assert.Equal(t, 3, body.TotalPages)
		assert.NotEmpty(t, body.PageNumbers)
		// 受領画像はdata URI形式に正規化される
		assert.Equal(t, "data:image/png;base64,iVBORw0KGgo", body.Transactions[0].Receipt)
	})

	t.Run("正常系: page/limitクエリパラメータを引き渡す", func(t *testing.T) {
		h, mockRepo := newTestLedgerHandler(t)

		limit, err := domledger.NewLimit(25)
		require.NoError(t, err)
		page := &domledger.Page{PageNum: 2, Limit: 25, TotalPages: 4, Total: 80}
		mockRepo.On("FetchUserHistory", mock.Anything, cred, 2, limit).Return(page, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/history?page=2&limit=25", nil)
		c, rec := newAuthedContext(req, cred)

		require.NoError(t, h.GetTransactionHistory(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: 数値でないpageは400", func(t *testing.T) {
		h, _ := newTestLedgerHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/history?page=abc", nil)
		c, _ := newAuthedContext(req, cred)

		err := h.GetTransactionHistory(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("異常系: 許可されていないlimitはエラー", func(t *testing.T) {
		h, _ := newTestLedgerHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/history?limit=33", nil)
		c, _ := newAuthedContext(req, cred)

		err := h.GetTransactionHistory(c)

		assert.ErrorIs(t, err, domledger.ErrInvalidLimit)
	})

	t.Run("異常系: Credentialなしは401", func(t *testing.T) {
		h, _ := newTestLedgerHandler(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/history", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		err := h.GetTransactionHistory(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestLedgerHandler_UpdateTransactionStatus(t *testing.T) {
	cred := session.MustNewCredential("admin-token", "admin@example.com", session.RoleAdmin)

	newPatchContext := func(body string, query string) (echo.Context, *httptest.ResponseRecorder) {
		target := "/api/v1/admin/transactions/txn-1"
		if query != "" {
			target += "?" + query
		}
		var reader *strings.Reader
		if body != "" {
			reader = strings.NewReader(body)
		} else {
			reader = strings.NewReader("")
		}
		req := httptest.NewRequest(http.MethodPatch, target, reader)
		if body != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		c, rec := newAuthedContext(req, cred)
		c.SetParamNames("id")
		c.SetParamValues("txn-1")
		return c, rec
	}

	t.Run("正常系: 遷移後に現在ページを再取得して返す", func(t *testing.T) {
		h, mockRepo := newTestLedgerHandler(t)

		mockRepo.On("UpdateStatus", mock.Anything, cred, "txn-1", transaction.TransactionStatusCompleted).Return(nil)
		page := &domledger.Page{
			Transactions: []*transaction.Transaction{makeTxn("txn-1", transaction.TransactionStatusCompleted)},
			PageNum:      1, Limit: 10, TotalPages: 1, Total: 1,
		}
		mockRepo.On("FetchAllTransactions", mock.Anything, cred, 1, domledger.DefaultLimit).Return(page, nil)

		c, rec := newPatchContext(`{"status": "completed"}`, "")

		require.NoError(t, h.UpdateTransactionStatus(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("正常系: クエリパラメータでのステータス指定も受け付ける", func(t *testing.T) {
		h, mockRepo := newTestLedgerHandler(t)

		mockRepo.On("UpdateStatus", mock.Anything, cred, "txn-1", transaction.TransactionStatusFailed).Return(nil)
		page := &domledger.Page{PageNum: 1, Limit: 10, TotalPages: 1, Total: 0}
		mockRepo.On("FetchAllTransactions", mock.Anything, cred, 1, domledger.DefaultLimit).Return(page, nil)

		c, rec := newPatchContext("", "status=failed")

		require.NoError(t, h.UpdateTransactionStatus(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: ステータス未指定は400", func(t *testing.T) {
		h, mockRepo := newTestLedgerHandler(t)

		c, _ := newPatchContext("", "")

		err := h.UpdateTransactionStatus(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
