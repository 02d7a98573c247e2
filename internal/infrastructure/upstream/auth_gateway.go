package upstream

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
)

// AuthGateway バックエンドAPI実装のsession.AuthGateway
// シードフレーズ/OTP認証フローをバックエンドへ転送する。
type AuthGateway struct {
	client *Client
	tracer trace.Tracer
}

// NewAuthGateway 新しいAuthGatewayを作成
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{
		client: client,
		tracer: otel.Tracer("auth-gateway"),
	}
}

// authResultDTO 認証フロー完了時のバックエンドレスポンス
type authResultDTO struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// RequestOTP 指定メールアドレス宛のOTP発行を要求
func (g *AuthGateway) RequestOTP(ctx context.Context, email string) (*session.OTPChallenge, error) {
	ctx, span := g.tracer.Start(ctx, "AuthGateway.RequestOTP")
	defer span.End()

	span.SetAttributes(attribute.String("auth.email", email))

	var dto struct {
		Email     string `json:"email"`
		ExpiresIn int    `json:"expiresIn"`
	}
	body := map[string]string{"email": email}
	if err := g.client.postJSON(ctx, session.Credential{}, "/seed/request", body, &dto); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to request otp: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "otp requested")
	return &session.OTPChallenge{
		Email:     dto.Email,
		ExpiresIn: dto.ExpiresIn,
	}, nil
}

// VerifyOTP OTPを検証しトークンを取得
func (g *AuthGateway) VerifyOTP(ctx context.Context, email, code string) (*session.AuthResult, error) {
	ctx, span := g.tracer.Start(ctx, "AuthGateway.VerifyOTP")
	defer span.End()

	span.SetAttributes(attribute.String("auth.email", email))

	body := map[string]string{"email": email, "otp": code}
	return g.verify(ctx, span, "/seed/verify", body)
}

// VerifySeedPhrase シードフレーズを検証しトークンを取得
func (g *AuthGateway) VerifySeedPhrase(ctx context.Context, email, phrase string) (*session.AuthResult, error) {
	ctx, span := g.tracer.Start(ctx, "AuthGateway.VerifySeedPhrase")
	defer span.End()

	span.SetAttributes(attribute.String("auth.email", email))

	body := map[string]string{"email": email, "phrase": phrase}
	return g.verify(ctx, span, "/seed/phrase", body)
}

// verify 検証エンドポイントを呼び出しAuthResultを構築
func (g *AuthGateway) verify(ctx context.Context, span trace.Span, path string, body map[string]string) (*session.AuthResult, error) {
	var dto authResultDTO
	if err := g.client.postJSON(ctx, session.Credential{}, path, body, &dto); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	role, err := session.NewRole(dto.Role)
	if err != nil {
		// ロールが欠落・不明な場合は一般ユーザー扱い
		role = session.RoleUser
	}

	span.SetStatus(otelcodes.Ok, "credentials verified")
	return &session.AuthResult{
		Token: dto.Token,
		Role:  role,
	}, nil
}
