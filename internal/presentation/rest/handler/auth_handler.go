package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authapp "wallet-gateway/internal/application/auth"
)

// AuthHandler 認証関連ハンドラー
type AuthHandler struct {
	authService *authapp.AuthApplicationService
}

// NewAuthHandler 新しいAuthHandlerを作成
func NewAuthHandler(authService *authapp.AuthApplicationService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RequestOTP OTP発行ハンドラー
// @Summary OTPの発行を要求
// @Description 指定メールアドレスにワンタイムパスワードを送信します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestOTPRequest true "メールアドレス"
// @Success 200 {object} RequestOTPResponse "送信成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 429 {object} ErrorResponse "レート制限超過"
// @Router /seed/request [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var body RequestOTPRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.authService.RequestOTP(c.Request().Context(), &authapp.RequestOTPRequest{
		Email: body.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RequestOTPResponse{
		Email:     resp.Email,
		ExpiresIn: resp.ExpiresIn,
	})
}

// VerifyOTP OTP検証ハンドラー
// @Summary OTPを検証
// @Description ワンタイムパスワードを検証し、ベアラートークンを返します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "メールアドレスとOTP"
// @Success 200 {object} LoginResponse "認証成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 429 {object} ErrorResponse "レート制限超過"
// @Router /seed/verify [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var body VerifyOTPRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.authService.VerifyOTP(c.Request().Context(), &authapp.VerifyOTPRequest{
		Email: body.Email,
		Code:  body.Code,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: resp.Token,
		Role:  resp.Role,
	})
}

// VerifySeedPhrase シードフレーズ検証ハンドラー
// @Summary シードフレーズを検証
// @Description シードフレーズを検証し、ベアラートークンを返します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifySeedPhraseRequest true "メールアドレスとシードフレーズ"
// @Success 200 {object} LoginResponse "認証成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 429 {object} ErrorResponse "レート制限超過"
// @Router /seed/phrase [post]
func (h *AuthHandler) VerifySeedPhrase(c echo.Context) error {
	var body VerifySeedPhraseRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.authService.VerifySeedPhrase(c.Request().Context(), &authapp.VerifySeedPhraseRequest{
		Email:  body.Email,
		Phrase: body.Phrase,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: resp.Token,
		Role:  resp.Role,
	})
}
