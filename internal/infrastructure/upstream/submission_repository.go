package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
)

// SubmissionRepository バックエンドAPI実装のtransaction.SubmissionRepository
// 入出金申請をmultipartフォームとして転送する。
type SubmissionRepository struct {
	client *Client
	tracer trace.Tracer
}

// NewSubmissionRepository 新しいSubmissionRepositoryを作成
func NewSubmissionRepository(client *Client) *SubmissionRepository {
	return &SubmissionRepository{
		client: client,
		tracer: otel.Tracer("submission-repository"),
	}
}

// SubmitDeposit 入金申請を送信
// パスの綴り（recieve）はバックエンド互換のため変更しない。
func (r *SubmissionRepository) SubmitDeposit(ctx context.Context, cred session.Credential, sub *transaction.Submission) (*transaction.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "SubmissionRepository.SubmitDeposit")
	defer span.End()

	return r.submit(ctx, span, cred, "/transaction/recieve", sub)
}

// SubmitWithdrawal 出金申請を送信
func (r *SubmissionRepository) SubmitWithdrawal(ctx context.Context, cred session.Credential, sub *transaction.Submission) (*transaction.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "SubmissionRepository.SubmitWithdrawal")
	defer span.End()

	return r.submit(ctx, span, cred, "/transaction/send", sub)
}

// submit multipartフォームを組み立てて送信
func (r *SubmissionRepository) submit(ctx context.Context, span trace.Span, cred session.Credential, path string, sub *transaction.Submission) (*transaction.Transaction, error) {
	span.SetAttributes(
		attribute.String("submission.id", sub.SubmissionID),
		attribute.String("submission.type", sub.Type.String()),
		attribute.Int64("submission.amount", sub.Amount),
		attribute.String("submission.coin", sub.Coin),
	)

	if err := sub.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"submissionId": sub.SubmissionID,
		"type":         sub.Type.String(),
		"amount":       strconv.FormatInt(sub.Amount, 10),
		"Coin":         sub.Coin,
	}
	if sub.Network != nil {
		fields["network"] = *sub.Network
	}
	if sub.WalletAddress != nil {
		fields["withdrawWalletAddress"] = *sub.WalletAddress
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}

	if len(sub.Image) > 0 {
		filename := sub.ImageFilename
		if filename == "" {
			filename = "receipt.png"
		}
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(sub.Image); err != nil {
			return nil, fmt.Errorf("failed to write image: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	var dto transactionDTO
	if err := r.client.doJSON(ctx, cred, http.MethodPost, path, nil, writer.FormDataContentType(), &buf, &dto); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}

	txn, err := toTransaction(dto)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "submission accepted")
	return txn, nil
}
