package admin

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/user"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// AdminApplicationService 管理者向けユーザー管理アプリケーションサービス
type AdminApplicationService struct {
	userRepo user.UserRepository
	logger   *otelinfra.Logger
	metrics  *otelinfra.Metrics
	tracer   trace.Tracer
}

// NewAdminApplicationService 新しいAdminApplicationServiceを作成
func NewAdminApplicationService(
	userRepo user.UserRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *AdminApplicationService {
	return &AdminApplicationService{
		userRepo: userRepo,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("admin-service"),
	}
}

// ListUsers ユーザー一覧を1ページ取得
func (s *AdminApplicationService) ListUsers(ctx context.Context, cred session.Credential, req *ListUsersRequest) (*ListUsersResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.ListUsers")
	defer span.End()

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit == 0 {
		limit = ledger.DefaultLimit.Int()
	} else if _, err := ledger.NewLimit(limit); err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("users.page", page),
		attribute.Int("users.limit", limit),
	)

	result, err := s.userRepo.ListUsers(ctx, cred, page, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "list_users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	span.SetAttributes(attribute.Int("users.result_count", len(result.Users)))
	span.SetStatus(otelcodes.Ok, "users listed")
	return &ListUsersResponse{Page: result}, nil
}

// UpdateUser ユーザーを更新
func (s *AdminApplicationService) UpdateUser(ctx context.Context, cred session.Credential, req *UpdateUserRequest) error {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.UpdateUser")
	defer span.End()

	span.SetAttributes(attribute.String("users.email", req.Email))

	if req.Email == "" {
		span.SetStatus(otelcodes.Error, "missing email")
		return user.ErrInvalidEmail
	}

	var kycStatus *user.KYCStatus
	if req.KYCStatus != nil {
		status := user.KYCStatus(*req.KYCStatus)
		if !status.Valid() {
			span.SetStatus(otelcodes.Error, "invalid kyc status")
			return user.ErrInvalidField
		}
		kycStatus = &status
	}

	s.logger.Info(ctx, "Updating user", map[string]interface{}{
		"email": req.Email,
	})

	if err := s.userRepo.UpdateUser(ctx, cred, req.Email, req.Suspended, kycStatus); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "update_user")
		return fmt.Errorf("failed to update user: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "user updated")
	return nil
}

// DeleteUser ユーザーを削除
// 削除はモーダル確認フロー相当の明示的なConfirmedフラグを要求する。
// トランザクションのステータス遷移に確認が無いのとは意図的な非対称。
func (s *AdminApplicationService) DeleteUser(ctx context.Context, cred session.Credential, req *DeleteUserRequest) error {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.DeleteUser")
	defer span.End()

	span.SetAttributes(attribute.String("users.id", req.ID))

	if req.ID == "" {
		span.SetStatus(otelcodes.Error, "missing id")
		return user.ErrUserNotFound
	}
	if !req.Confirmed {
		span.SetStatus(otelcodes.Error, "delete not confirmed")
		return user.ErrDeleteNotConfirmed
	}

	s.logger.Info(ctx, "Deleting user", map[string]interface{}{
		"id": req.ID,
	})

	if err := s.userRepo.DeleteUser(ctx, cred, req.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "delete_user")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "user deleted")
	return nil
}
