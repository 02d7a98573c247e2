package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/infrastructure/config"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// credentialContextKey echoコンテキストに格納するCredentialのキー
const credentialContextKey = "credential"

// AuthMiddleware JWT認証ミドルウェア
// Authorizationヘッダーを優先し、無い場合はクッキー（token / adminToken）に
// フォールバックする。検証済みのトークンはCredentialとしてコンテキストに
// 格納され、ハンドラーが呼び出しごとにバックエンドへ引き渡す。
func AuthMiddleware(cfg *config.JWTConfig, logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			tokenString := extractToken(c)
			if tokenString == "" {
				logger.Warn(ctx, "Missing bearer token", nil)
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "unauthorized",
					Message: "Missing bearer token",
				})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.Secret), nil
			})
			if err != nil || !token.Valid {
				fields := map[string]interface{}{}
				if err != nil {
					fields["error"] = err.Error()
				}
				logger.Warn(ctx, "Invalid token", fields)
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid or expired token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Warn(ctx, "Invalid token claims", nil)
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid token claims",
				})
			}

			subject, _ := claims["email"].(string)
			if subject == "" {
				subject, _ = claims["sub"].(string)
			}

			role := session.RoleUser
			if roleClaim, ok := claims["role"].(string); ok {
				if parsed, err := session.NewRole(roleClaim); err == nil {
					role = parsed
				}
			}

			cred, err := session.NewCredential(tokenString, subject, role)
			if err != nil {
				logger.Warn(ctx, "Failed to build credential", map[string]interface{}{
					"error": err.Error(),
				})
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid token",
				})
			}

			c.Set(credentialContextKey, cred)
			return next(c)
		}
	}
}

// extractToken AuthorizationヘッダーまたはクッキーからJWTを取り出す
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	// 管理画面はadminToken、通常画面はtokenクッキーを使う
	if cookie, err := c.Cookie("adminToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// CredentialFromContext コンテキストからCredentialを取り出す
func CredentialFromContext(c echo.Context) (session.Credential, bool) {
	cred, ok := c.Get(credentialContextKey).(session.Credential)
	if !ok || cred.IsZero() {
		return session.Credential{}, false
	}
	return cred, true
}
