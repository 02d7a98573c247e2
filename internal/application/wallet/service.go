package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// WalletApplicationService 入出金申請アプリケーションサービス
// バリデーションはネットワーク呼び出しの前に完了させる。
type WalletApplicationService struct {
	submissionRepo transaction.SubmissionRepository
	logger         *otelinfra.Logger
	metrics        *otelinfra.Metrics
	tracer         trace.Tracer
	newID          func() string
}

// NewWalletApplicationService 新しいWalletApplicationServiceを作成
func NewWalletApplicationService(
	submissionRepo transaction.SubmissionRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *WalletApplicationService {
	return &WalletApplicationService{
		submissionRepo: submissionRepo,
		logger:         logger,
		metrics:        metrics,
		tracer:         otel.Tracer("wallet-service"),
		newID:          func() string { return uuid.NewString() },
	}
}

// SubmitDeposit 入金申請を送信
func (s *WalletApplicationService) SubmitDeposit(ctx context.Context, cred session.Credential, req *SubmitDepositRequest) (*SubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.SubmitDeposit")
	defer span.End()

	sub := &transaction.Submission{
		SubmissionID:  s.newID(),
		Type:          transaction.TransactionTypeDeposit,
		Amount:        req.Amount,
		Coin:          req.Coin,
		Image:         req.Image,
		ImageFilename: req.ImageFilename,
	}
	if req.Network != "" {
		network := req.Network
		sub.Network = &network
	}

	return s.submit(ctx, span, cred, sub, s.submissionRepo.SubmitDeposit)
}

// SubmitWithdrawal 出金申請を送信
func (s *WalletApplicationService) SubmitWithdrawal(ctx context.Context, cred session.Credential, req *SubmitWithdrawalRequest) (*SubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.SubmitWithdrawal")
	defer span.End()

	address := req.WalletAddress
	sub := &transaction.Submission{
		SubmissionID: s.newID(),
		Type:         transaction.TransactionTypeWithdrawal,
		Amount:       req.Amount,
		Coin:         req.Coin,
	}
	if address != "" {
		sub.WalletAddress = &address
	}
	if req.Network != "" {
		network := req.Network
		sub.Network = &network
	}

	return s.submit(ctx, span, cred, sub, s.submissionRepo.SubmitWithdrawal)
}

// submitFn 申請の送信関数
type submitFn func(ctx context.Context, cred session.Credential, sub *transaction.Submission) (*transaction.Transaction, error)

// submit 申請を検証して送信
func (s *WalletApplicationService) submit(ctx context.Context, span trace.Span, cred session.Credential, sub *transaction.Submission, send submitFn) (*SubmitResponse, error) {
	span.SetAttributes(
		attribute.String("submission.id", sub.SubmissionID),
		attribute.String("submission.type", sub.Type.String()),
		attribute.Int64("submission.amount", sub.Amount),
	)

	// クライアント側バリデーション: 失敗時はネットワーク呼び出しを行わない
	if err := sub.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Submitting transaction", map[string]interface{}{
		"submission_id": sub.SubmissionID,
		"type":          sub.Type.String(),
		"amount":        sub.Amount,
		"coin":          sub.Coin,
	})

	txn, err := send(ctx, cred, sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "submit_"+sub.Type.String())
		s.logger.Error(ctx, "Failed to submit transaction", err, map[string]interface{}{
			"submission_id": sub.SubmissionID,
		})
		return nil, fmt.Errorf("failed to submit %s: %w", sub.Type.String(), err)
	}

	span.SetStatus(otelcodes.Ok, "submission accepted")
	return &SubmitResponse{Transaction: txn}, nil
}
