package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// AuthApplicationService 認証アプリケーションサービス
// シードフレーズ/OTPフローをバックエンドへ転送する。トークンの発行も
// 失効もバックエンドが所有し、ここでは入力検証と転送のみを行う。
type AuthApplicationService struct {
	gateway session.AuthGateway
	logger  *otelinfra.Logger
	metrics *otelinfra.Metrics
	tracer  trace.Tracer
}

// NewAuthApplicationService 新しいAuthApplicationServiceを作成
func NewAuthApplicationService(
	gateway session.AuthGateway,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *AuthApplicationService {
	return &AuthApplicationService{
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("auth-service"),
	}
}

// RequestOTP OTP発行を要求
func (s *AuthApplicationService) RequestOTP(ctx context.Context, req *RequestOTPRequest) (*RequestOTPResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthApplicationService.RequestOTP")
	defer span.End()

	email := strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(email) {
		span.SetStatus(otelcodes.Error, "invalid email")
		return nil, session.ErrInvalidOTP
	}

	span.SetAttributes(attribute.String("auth.email", email))
	s.logger.Info(ctx, "Requesting OTP", map[string]interface{}{
		"email": email,
	})

	challenge, err := s.gateway.RequestOTP(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "request_otp")
		return nil, fmt.Errorf("failed to request otp: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "otp requested")
	return &RequestOTPResponse{
		Email:     challenge.Email,
		ExpiresIn: challenge.ExpiresIn,
	}, nil
}

// VerifyOTP OTPを検証しトークンを取得
func (s *AuthApplicationService) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthApplicationService.VerifyOTP")
	defer span.End()

	email := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.Code)
	if !emailRegex.MatchString(email) || code == "" {
		span.SetStatus(otelcodes.Error, "invalid otp input")
		return nil, session.ErrInvalidOTP
	}

	result, err := s.gateway.VerifyOTP(ctx, email, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "verify_otp")
		return nil, fmt.Errorf("failed to verify otp: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "otp verified")
	return &LoginResponse{
		Token: result.Token,
		Role:  result.Role.String(),
	}, nil
}

// VerifySeedPhrase シードフレーズを検証しトークンを取得
func (s *AuthApplicationService) VerifySeedPhrase(ctx context.Context, req *VerifySeedPhraseRequest) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthApplicationService.VerifySeedPhrase")
	defer span.End()

	email := strings.TrimSpace(req.Email)
	phrase := strings.TrimSpace(req.Phrase)
	if !emailRegex.MatchString(email) || phrase == "" {
		span.SetStatus(otelcodes.Error, "invalid seed phrase input")
		return nil, session.ErrInvalidSeedPhrase
	}

	result, err := s.gateway.VerifySeedPhrase(ctx, email, phrase)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "verify_seed_phrase")
		return nil, fmt.Errorf("failed to verify seed phrase: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "seed phrase verified")
	return &LoginResponse{
		Token: result.Token,
		Role:  result.Role.String(),
	}, nil
}
