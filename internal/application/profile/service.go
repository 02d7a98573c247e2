package profile

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/user"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// ProfileApplicationService プロフィールアプリケーションサービス
type ProfileApplicationService struct {
	userRepo user.UserRepository
	logger   *otelinfra.Logger
	metrics  *otelinfra.Metrics
	tracer   trace.Tracer
}

// NewProfileApplicationService 新しいProfileApplicationServiceを作成
func NewProfileApplicationService(
	userRepo user.UserRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *ProfileApplicationService {
	return &ProfileApplicationService{
		userRepo: userRepo,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("profile-service"),
	}
}

// GetProfile 認証ユーザー自身のプロフィールを取得
func (s *ProfileApplicationService) GetProfile(ctx context.Context, cred session.Credential) (*ProfileResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProfileApplicationService.GetProfile")
	defer span.End()

	u, err := s.userRepo.FetchProfile(ctx, cred)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "fetch_profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "profile fetched")
	return &ProfileResponse{User: u}, nil
}

// UpdateProfile 認証ユーザー自身のプロフィールを更新
func (s *ProfileApplicationService) UpdateProfile(ctx context.Context, cred session.Credential, req *UpdateProfileRequest) (*ProfileResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProfileApplicationService.UpdateProfile")
	defer span.End()

	// クライアント側バリデーション: 空文字列での上書きは拒否
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		span.SetStatus(otelcodes.Error, "empty full name")
		return nil, user.ErrInvalidField
	}
	if req.Country != nil && strings.TrimSpace(*req.Country) == "" {
		span.SetStatus(otelcodes.Error, "empty country")
		return nil, user.ErrInvalidField
	}

	s.logger.Info(ctx, "Updating profile", map[string]interface{}{
		"subject": cred.Subject(),
	})

	u, err := s.userRepo.UpdateProfile(ctx, cred, user.ProfileUpdate{
		FullName: req.FullName,
		Country:  req.Country,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "update_profile")
		s.logger.Error(ctx, "Failed to update profile", err, nil)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "profile updated")
	return &ProfileResponse{User: u}, nil
}
