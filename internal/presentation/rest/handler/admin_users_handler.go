package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	adminapp "wallet-gateway/internal/application/admin"
	"wallet-gateway/internal/presentation/rest/middleware"
)

// AdminUsersHandler 管理者向けユーザー管理ハンドラー
type AdminUsersHandler struct {
	adminService *adminapp.AdminApplicationService
}

// NewAdminUsersHandler 新しいAdminUsersHandlerを作成
func NewAdminUsersHandler(adminService *adminapp.AdminApplicationService) *AdminUsersHandler {
	return &AdminUsersHandler{
		adminService: adminService,
	}
}

// ListUsers ユーザー一覧取得ハンドラー（管理API用）
// @Summary ユーザー一覧を取得（管理API）
// @Description 全ユーザーの一覧を1ページ取得します
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param page query int false "ページ番号（1始まり、デフォルト: 1）" default(1) example(1)
// @Param limit query int false "取得件数（10/15/20/25/50/100、デフォルト: 10）" default(10) example(10)
// @Success 200 {object} UserPageResponse "取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 403 {object} ErrorResponse "権限エラー"
// @Router /admin/users [get]
func (h *AdminUsersHandler) ListUsers(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	page := 1
	if pageStr := c.QueryParam("page"); pageStr != "" {
		var err error
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page parameter")
		}
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit parameter")
		}
	}

	resp, err := h.adminService.ListUsers(c.Request().Context(), cred, &adminapp.ListUsersRequest{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	users := make([]ProfileResponse, len(resp.Page.Users))
	for i, u := range resp.Page.Users {
		users[i] = toProfileResponse(u)
	}

	return c.JSON(http.StatusOK, UserPageResponse{
		Users:      users,
		Page:       resp.Page.PageNum,
		Limit:      resp.Page.Limit,
		TotalPages: resp.Page.TotalPages,
		Total:      resp.Page.Total,
	})
}

// UpdateUser ユーザー更新ハンドラー（管理API用）
// @Summary ユーザーを更新（管理API）
// @Description 指定ユーザーの凍結状態とKYCステータスを更新します
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "メールアドレス" example(user@example.com)
// @Param request body UpdateUserRequest true "更新フィールド"
// @Success 204 "更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "ユーザーが存在しない"
// @Router /admin/users/{id} [patch]
func (h *AdminUsersHandler) UpdateUser(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	// PATCHはメールアドレスで対象を指定する（バックエンドの契約に合わせる）
	email := c.Param("id")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	var body UpdateUserRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.UpdateUser(c.Request().Context(), cred, &adminapp.UpdateUserRequest{
		Email:     email,
		Suspended: body.Suspended,
		KYCStatus: body.KYCStatus,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteUser ユーザー削除ハンドラー（管理API用）
// @Summary ユーザーを削除（管理API）
// @Description 指定ユーザーを削除します。confirmed=trueの明示的な確認が必要です
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ユーザーID" example(user_123)
// @Param confirmed query bool true "削除確認フラグ" example(true)
// @Success 204 "削除成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "ユーザーが存在しない"
// @Failure 409 {object} ErrorResponse "確認フラグなし"
// @Router /admin/users/{id} [delete]
func (h *AdminUsersHandler) DeleteUser(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	confirmed, _ := strconv.ParseBool(c.QueryParam("confirmed"))

	if err := h.adminService.DeleteUser(c.Request().Context(), cred, &adminapp.DeleteUserRequest{
		ID:        id,
		Confirmed: confirmed,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
