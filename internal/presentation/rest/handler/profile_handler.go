package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	profileapp "wallet-gateway/internal/application/profile"
	"wallet-gateway/internal/domain/user"
	"wallet-gateway/internal/presentation/rest/middleware"
)

// ProfileHandler プロフィール関連ハンドラー
type ProfileHandler struct {
	profileService *profileapp.ProfileApplicationService
}

// NewProfileHandler 新しいProfileHandlerを作成
func NewProfileHandler(profileService *profileapp.ProfileApplicationService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile プロフィール取得ハンドラー
// @Summary 自分のプロフィールを取得
// @Description 認証ユーザー自身のプロフィールを取得します
// @Tags profile
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} ProfileResponse "取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	resp, err := h.profileService.GetProfile(c.Request().Context(), cred)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(resp.User))
}

// UpdateProfile プロフィール更新ハンドラー
// @Summary 自分のプロフィールを更新
// @Description 氏名と居住国を更新します。省略されたフィールドは変更されません
// @Tags profile
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdateProfileRequest true "更新フィールド"
// @Success 200 {object} ProfileResponse "更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /profile [patch]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	var body UpdateProfileRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.profileService.UpdateProfile(c.Request().Context(), cred, &profileapp.UpdateProfileRequest{
		FullName: body.FullName,
		Country:  body.Country,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(resp.User))
}

// toProfileResponse ユーザーをレスポンス形式に変換
func toProfileResponse(u *user.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Country:   u.Country(),
		KYCStatus: u.KYCStatus().String(),
		Suspended: u.Suspended(),
		CreatedAt: u.CreatedAt().Format(time.RFC3339),
	}
}
