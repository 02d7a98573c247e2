package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
)

// TransactionRepository バックエンドAPI実装のledger.TransactionRepository
type TransactionRepository struct {
	client *Client
	tracer trace.Tracer
}

// NewTransactionRepository 新しいTransactionRepositoryを作成
func NewTransactionRepository(client *Client) *TransactionRepository {
	return &TransactionRepository{
		client: client,
		tracer: otel.Tracer("transaction-repository"),
	}
}

// transactionDTO バックエンドのトランザクション表現
// フィールド名はバックエンドのレスポンスと互換でなければならない
// （Coinの大文字始まりも含む）。
type transactionDTO struct {
	ID                    string  `json:"_id"`
	Email                 string  `json:"email"`
	Type                  string  `json:"type"`
	Amount                int64   `json:"amount"`
	Status                string  `json:"status"`
	Coin                  string  `json:"Coin"`
	Network               *string `json:"network"`
	Image                 string  `json:"image"`
	WithdrawWalletAddress *string `json:"withdrawWalletAddress"`
	CreatedAt             string  `json:"createdAt"`
}

// pageDTO ページネーションエンベロープ
type pageDTO struct {
	Transactions []transactionDTO `json:"transactions"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	TotalPages   int              `json:"totalPages"`
	Total        int              `json:"total"`
}

// FetchUserHistory 認証ユーザー自身のトランザクション履歴を1ページ取得
func (r *TransactionRepository) FetchUserHistory(ctx context.Context, cred session.Credential, page int, limit ledger.Limit) (*ledger.Page, error) {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.FetchUserHistory")
	defer span.End()

	span.SetAttributes(
		attribute.Int("ledger.page", page),
		attribute.Int("ledger.limit", limit.Int()),
	)

	return r.fetchPage(ctx, span, cred, "/transaction/history", page, limit)
}

// FetchAllTransactions 全ユーザーのトランザクションを1ページ取得（管理者用）
func (r *TransactionRepository) FetchAllTransactions(ctx context.Context, cred session.Credential, page int, limit ledger.Limit) (*ledger.Page, error) {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.FetchAllTransactions")
	defer span.End()

	span.SetAttributes(
		attribute.Int("ledger.page", page),
		attribute.Int("ledger.limit", limit.Int()),
	)

	return r.fetchPage(ctx, span, cred, "/admin/transactions", page, limit)
}

// fetchPage 履歴エンドポイントから1ページ取得し、エンティティに変換
func (r *TransactionRepository) fetchPage(ctx context.Context, span trace.Span, cred session.Credential, path string, page int, limit ledger.Limit) (*ledger.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit.Int()))

	var dto pageDTO
	if err := r.client.getJSON(ctx, cred, path, query, &dto); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	transactions := make([]*transaction.Transaction, 0, len(dto.Transactions))
	for _, item := range dto.Transactions {
		txn, err := toTransaction(item)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	span.SetAttributes(attribute.Int("ledger.result_count", len(transactions)))
	span.SetStatus(otelcodes.Ok, fmt.Sprintf("fetched %d transactions", len(transactions)))

	return &ledger.Page{
		Transactions: transactions,
		PageNum:      dto.Page,
		Limit:        dto.Limit,
		TotalPages:   dto.TotalPages,
		Total:        dto.Total,
	}, nil
}

// UpdateStatus 指定トランザクションのステータスのみを変更（管理者用）
func (r *TransactionRepository) UpdateStatus(ctx context.Context, cred session.Credential, transactionID string, status transaction.TransactionStatus) error {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.UpdateStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("ledger.transaction_id", transactionID),
		attribute.String("ledger.target_status", status.String()),
	)

	query := url.Values{}
	query.Set("status", status.String())

	if err := r.client.patchJSON(ctx, cred, "/admin/transactions/"+url.PathEscape(transactionID), query, nil); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "status updated")
	return nil
}

// toTransaction DTOからエンティティを再構築
func toTransaction(dto transactionDTO) (*transaction.Transaction, error) {
	tt, err := transaction.NewTransactionType(dto.Type)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type: %w", err)
	}

	ts, err := transaction.NewTransactionStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction status: %w", err)
	}

	// createdAtが欠落している場合はゼロ値を渡し、エンティティ側で
	// 現在時刻にフォールバックさせる
	var createdAt time.Time
	if dto.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, dto.CreatedAt)
		if err != nil {
			createdAt = time.Time{}
		}
	}

	txn, err := transaction.NewTransaction(
		dto.ID,
		dto.Email,
		tt,
		dto.Amount,
		ts,
		dto.Coin,
		dto.Network,
		transaction.NewReceipt(dto.Image),
		dto.WithdrawWalletAddress,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct transaction entity: %w", err)
	}
	return txn, nil
}
