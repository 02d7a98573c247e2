package ledger

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domledger "wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

const (
	// userPagerDelta ユーザービューのページ番号ウィンドウ幅
	userPagerDelta = 1
	// adminPagerDelta 管理者ビューのページ番号ウィンドウ幅
	adminPagerDelta = 2
)

// LedgerApplicationService 台帳ビューアプリケーションサービス
// ページ取得、承認待ち/確定済みの分割、ステータス遷移とその後の再取得を提供する。
type LedgerApplicationService struct {
	transactionRepo domledger.TransactionRepository
	views           *viewTracker
	logger          *otelinfra.Logger
	metrics         *otelinfra.Metrics
	tracer          trace.Tracer
}

// NewLedgerApplicationService 新しいLedgerApplicationServiceを作成
func NewLedgerApplicationService(
	transactionRepo domledger.TransactionRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *LedgerApplicationService {
	return &LedgerApplicationService{
		transactionRepo: transactionRepo,
		views:           newViewTracker(),
		logger:          logger,
		metrics:         metrics,
		tracer:          otel.Tracer("ledger-service"),
	}
}

// GetTransactionHistory 認証ユーザー自身のトランザクション履歴を取得
func (s *LedgerApplicationService) GetTransactionHistory(ctx context.Context, cred session.Credential, req *GetHistoryRequest) (*HistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerApplicationService.GetTransactionHistory")
	defer span.End()

	return s.fetchHistory(ctx, span, cred, req, "user", userPagerDelta, s.transactionRepo.FetchUserHistory)
}

// GetAdminTransactions 全ユーザーのトランザクションを取得（管理者用）
func (s *LedgerApplicationService) GetAdminTransactions(ctx context.Context, cred session.Credential, req *GetHistoryRequest) (*HistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerApplicationService.GetAdminTransactions")
	defer span.End()

	return s.fetchHistory(ctx, span, cred, req, "admin", adminPagerDelta, s.transactionRepo.FetchAllTransactions)
}

// fetchFn 履歴エンドポイントの取得関数
type fetchFn func(ctx context.Context, cred session.Credential, page int, limit domledger.Limit) (*domledger.Page, error)

// fetchHistory 1ページ取得しレスポンスを組み立てる
// 成功時はビュー全体をアトミックに置き換え、失敗時は以前の状態に一切
// 触れない（stale-but-consistent）。古いシーケンストークンの結果は
// スナップショットへ反映しない。
func (s *LedgerApplicationService) fetchHistory(
	ctx context.Context,
	span trace.Span,
	cred session.Credential,
	req *GetHistoryRequest,
	scope string,
	pagerDelta int,
	fetch fetchFn,
) (*HistoryResponse, error) {
	limit, err := s.resolveLimit(req.Limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	subject := viewSubject(cred, scope)

	// 直近のスナップショットが持つtotalPagesでページ番号を事前に丸める
	page := req.Page
	if page < 1 {
		page = 1
	}
	if _, _, totalPages, ok := s.views.Current(subject); ok {
		page = domledger.ClampPage(page, totalPages)
	}

	span.SetAttributes(
		attribute.String("ledger.scope", scope),
		attribute.Int("ledger.page", page),
		attribute.Int("ledger.limit", limit.Int()),
	)

	s.logger.Info(ctx, "Fetching transaction page", map[string]interface{}{
		"scope": scope,
		"page":  page,
		"limit": limit.Int(),
	})

	token := s.views.Begin(subject)

	result, err := fetch(ctx, cred, page, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "fetch_"+scope+"_history")
		s.logger.Error(ctx, "Failed to fetch transaction page", err, map[string]interface{}{
			"scope": scope,
			"page":  page,
		})
		return nil, fmt.Errorf("failed to fetch transaction history: %w", err)
	}

	// 古いトークンの結果はスナップショットに反映しない
	// （呼び出し元には取得結果をそのまま返す）
	s.views.Commit(subject, token, result.PageNum, limit, result.TotalPages)

	pending, settled := domledger.Partition(result.Transactions)

	s.metrics.RecordLedgerFetch(ctx, scope, result.PageNum)
	span.SetAttributes(
		attribute.Int("ledger.result_count", len(result.Transactions)),
		attribute.Int("ledger.pending_count", len(pending)),
	)
	span.SetStatus(otelcodes.Ok, "history fetched")

	return &HistoryResponse{
		Page:      result,
		Pending:   pending,
		Settled:   settled,
		PageItems: domledger.PageNumbers(result.PageNum, result.TotalPages, pagerDelta),
	}, nil
}

// UpdateTransactionStatus トランザクションのステータスを遷移（管理者用）
// PATCH後に現在ページを無条件で再取得して返す（fetch-after-write）。
// 楽観的なローカル更新は行わないため、失敗時のロールバックも不要。
// 遷移前の確認ステップは意図的に存在しない（ユーザー削除フローとの
// 非対称は原挙動の保持）。
func (s *LedgerApplicationService) UpdateTransactionStatus(ctx context.Context, cred session.Credential, req *UpdateStatusRequest) (*HistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerApplicationService.UpdateTransactionStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("ledger.transaction_id", req.TransactionID),
		attribute.String("ledger.target_status", req.Status),
	)

	status, err := transaction.NewTransactionStatus(req.Status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Updating transaction status", map[string]interface{}{
		"transaction_id": req.TransactionID,
		"target_status":  status.String(),
	})

	if err := s.transactionRepo.UpdateStatus(ctx, cred, req.TransactionID, status); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "update_status")
		s.logger.Error(ctx, "Failed to update transaction status", err, map[string]interface{}{
			"transaction_id": req.TransactionID,
		})
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	s.metrics.RecordStatusTransition(ctx, status.String())

	// 現在ページの再取得。未取得の場合は先頭ページにフォールバック
	subject := viewSubject(cred, "admin")
	page, limit, _, ok := s.views.Current(subject)
	if !ok {
		page = 1
		limit = domledger.DefaultLimit
	}

	span.SetStatus(otelcodes.Ok, "status updated")
	return s.GetAdminTransactions(ctx, cred, &GetHistoryRequest{Page: page, Limit: limit.Int()})
}

// resolveLimit リクエストのlimitをLimit値オブジェクトに解決
func (s *LedgerApplicationService) resolveLimit(limit int) (domledger.Limit, error) {
	if limit == 0 {
		return domledger.DefaultLimit, nil
	}
	return domledger.NewLimit(limit)
}

// viewSubject ビュー追跡のキーを構築
// 同一ユーザーでもユーザービューと管理者ビューは独立に追跡する。
func viewSubject(cred session.Credential, scope string) string {
	return scope + ":" + cred.Subject()
}
