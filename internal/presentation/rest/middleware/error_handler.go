package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"wallet-gateway/internal/domain/ledger"
	"wallet-gateway/internal/domain/pricing"
	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
	"wallet-gateway/internal/domain/user"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
	"wallet-gateway/internal/infrastructure/upstream"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// badRequestErrors 400を返すドメインエラー
var badRequestErrors = map[error]string{
	ledger.ErrInvalidPage:                 "invalid_page",
	ledger.ErrInvalidLimit:                "invalid_limit",
	transaction.ErrInvalidTransaction:     "invalid_transaction",
	transaction.ErrInvalidTransactionID:   "invalid_transaction_id",
	transaction.ErrInvalidEmail:           "invalid_email",
	transaction.ErrInvalidAmount:          "invalid_amount",
	transaction.ErrAmountTooLarge:         "amount_too_large",
	transaction.ErrMissingWalletAddress:   "missing_wallet_address",
	user.ErrInvalidEmail:                  "invalid_email",
	user.ErrInvalidField:                  "invalid_field",
	pricing.ErrInvalidSymbol:              "invalid_symbol",
	session.ErrInvalidOTP:                 "invalid_otp",
	session.ErrInvalidSeedPhrase:          "invalid_seed_phrase",
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// 認可エラー
	if errors.Is(err, session.ErrUnauthorized) || errors.Is(err, session.ErrMissingToken) {
		logger.Warn(ctx, "Unauthorized request", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		})
	}

	// 入力検証エラー
	for domainErr, code := range badRequestErrors {
		if errors.Is(err, domainErr) {
			logger.Warn(ctx, "Invalid request", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   code,
				Message: err.Error(),
			})
		}
	}

	// 確認なしの削除要求
	if errors.Is(err, user.ErrDeleteNotConfirmed) {
		logger.Warn(ctx, "Delete not confirmed", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "delete_not_confirmed",
			Message: err.Error(),
		})
	}

	// 未検出エラー
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		logger.Warn(ctx, "Transaction not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "transaction_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, user.ErrUserNotFound) {
		logger.Warn(ctx, "User not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "user_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, pricing.ErrQuoteNotFound) {
		logger.Warn(ctx, "Quote not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "quote_not_found",
			Message: err.Error(),
		})
	}

	// バックエンドが返したエラーはステータスとメッセージをそのまま中継する
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		logger.Warn(ctx, "Upstream API error", map[string]interface{}{
			"status_code": apiErr.StatusCode,
			"message":     apiErr.Message,
		})
		return c.JSON(apiErr.StatusCode, ErrorResponse{
			Error:   "upstream_error",
			Message: apiErr.Message,
		})
	}

	// バックエンド到達不能
	if errors.Is(err, upstream.ErrUnavailable) {
		logger.Error(ctx, "Upstream unavailable", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_unavailable",
			Message: "Backend service is unavailable",
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
