package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	ledgerapp "wallet-gateway/internal/application/ledger"
	"wallet-gateway/internal/domain/transaction"
	"wallet-gateway/internal/presentation/rest/middleware"
)

// LedgerHandler トランザクション台帳関連ハンドラー
type LedgerHandler struct {
	ledgerService *ledgerapp.LedgerApplicationService
}

// NewLedgerHandler 新しいLedgerHandlerを作成
func NewLedgerHandler(ledgerService *ledgerapp.LedgerApplicationService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// GetTransactionHistory トランザクション履歴取得ハンドラー（ユーザーAPI用）
// @Summary トランザクション履歴を取得
// @Description 自分のトランザクション履歴を1ページ取得します。承認待ちと確定済みに分割されたビューを含みます
// @Tags ledger
// @Accept json
// @Produce json
// @Security Bearer
// @Param page query int false "ページ番号（1始まり、デフォルト: 1）" default(1) example(1)
// @Param limit query int false "取得件数（10/15/20/25/50/100、デフォルト: 10）" default(10) example(10)
// @Success 200 {object} LedgerPageResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /transaction/history [get]
func (h *LedgerHandler) GetTransactionHistory(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	req, err := historyRequestFromQuery(c)
	if err != nil {
		return err
	}

	resp, err := h.ledgerService.GetTransactionHistory(c.Request().Context(), cred, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLedgerPageResponse(resp))
}

// GetAdminTransactions 全トランザクション取得ハンドラー（管理API用）
// @Summary 全ユーザーのトランザクションを取得（管理API）
// @Description 全ユーザーのトランザクションを1ページ取得します
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param page query int false "ページ番号（1始まり、デフォルト: 1）" default(1) example(1)
// @Param limit query int false "取得件数（10/15/20/25/50/100、デフォルト: 10）" default(10) example(10)
// @Success 200 {object} LedgerPageResponse "取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 403 {object} ErrorResponse "権限エラー"
// @Router /admin/transactions [get]
func (h *LedgerHandler) GetAdminTransactions(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	req, err := historyRequestFromQuery(c)
	if err != nil {
		return err
	}

	resp, err := h.ledgerService.GetAdminTransactions(c.Request().Context(), cred, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLedgerPageResponse(resp))
}

// UpdateTransactionStatus ステータス遷移ハンドラー（管理API用）
// @Summary トランザクションのステータスを遷移（管理API）
// @Description 指定トランザクションのステータスを変更し、現在ページを再取得して返します
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "トランザクションID" example(txn_123)
// @Param request body UpdateStatusRequest true "遷移先ステータス"
// @Success 200 {object} LedgerPageResponse "遷移成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "トランザクションが存在しない"
// @Router /admin/transactions/{id} [patch]
func (h *LedgerHandler) UpdateTransactionStatus(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	transactionID := c.Param("id")
	if transactionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transaction id is required")
	}

	var body UpdateStatusRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// クエリパラメータでの指定も受け付ける
	status := body.Status
	if status == "" {
		status = c.QueryParam("status")
	}
	if status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	resp, err := h.ledgerService.UpdateTransactionStatus(c.Request().Context(), cred, &ledgerapp.UpdateStatusRequest{
		TransactionID: transactionID,
		Status:        status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLedgerPageResponse(resp))
}

// historyRequestFromQuery クエリパラメータから履歴取得リクエストを構築
func historyRequestFromQuery(c echo.Context) (*ledgerapp.GetHistoryRequest, error) {
	page := 1
	if pageStr := c.QueryParam("page"); pageStr != "" {
		var err error
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid page parameter")
		}
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid limit parameter")
		}
	}

	return &ledgerapp.GetHistoryRequest{Page: page, Limit: limit}, nil
}

// toTransactionItem トランザクションをレスポンス形式に変換
func toTransactionItem(txn *transaction.Transaction) TransactionItem {
	item := TransactionItem{
		TransactionID: txn.TransactionID(),
		Email:         txn.Email(),
		Type:          txn.TransactionType().String(),
		Amount:        txn.Amount(),
		Status:        txn.Status().String(),
		Coin:          txn.Coin(),
		CreatedAt:     txn.CreatedAt().Format(time.RFC3339),
	}
	if network := txn.Network(); network != nil {
		item.Network = *network
	}
	if receipt := txn.Receipt(); !receipt.IsEmpty() {
		item.Receipt = receipt.Source()
	}
	if address := txn.WithdrawWalletAddress(); address != nil {
		item.WithdrawWalletAddress = *address
	}
	return item
}

// toLedgerPageResponse 履歴レスポンスを組み立てる
func toLedgerPageResponse(resp *ledgerapp.HistoryResponse) LedgerPageResponse {
	transactions := make([]TransactionItem, len(resp.Page.Transactions))
	for i, txn := range resp.Page.Transactions {
		transactions[i] = toTransactionItem(txn)
	}

	pending := make([]TransactionItem, len(resp.Pending))
	for i, txn := range resp.Pending {
		pending[i] = toTransactionItem(txn)
	}

	settled := make([]TransactionItem, len(resp.Settled))
	for i, txn := range resp.Settled {
		settled[i] = toTransactionItem(txn)
	}

	pageItems := make([]PageItem, len(resp.PageItems))
	for i, item := range resp.PageItems {
		pageItems[i] = PageItem{
			Number:   item.Number,
			Ellipsis: item.Ellipsis,
			Label:    item.String(),
		}
	}

	return LedgerPageResponse{
		Transactions: transactions,
		Pending:      pending,
		Settled:      settled,
		Page:         resp.Page.PageNum,
		Limit:        resp.Page.Limit,
		TotalPages:   resp.Page.TotalPages,
		Total:        resp.Page.Total,
		PageNumbers:  pageItems,
	}
}
