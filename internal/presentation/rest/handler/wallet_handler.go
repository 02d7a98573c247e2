package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	walletapp "wallet-gateway/internal/application/wallet"
	"wallet-gateway/internal/presentation/rest/middleware"
)

// maxReceiptSize 受け付ける領収書画像の最大サイズ
const maxReceiptSize = 8 << 20 // 8MiB

// WalletHandler 入出金申請ハンドラー
type WalletHandler struct {
	walletService *walletapp.WalletApplicationService
}

// NewWalletHandler 新しいWalletHandlerを作成
func NewWalletHandler(walletService *walletapp.WalletApplicationService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// SubmitDeposit 入金申請ハンドラー
// @Summary 入金申請を送信
// @Description 入金申請をmultipart/form-dataで送信します。領収書画像は任意です
// @Tags wallet
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param amount formData int true "金額" example(1000)
// @Param coin formData string true "コインシンボル" example(BTC)
// @Param network formData string false "ネットワーク" example(mainnet)
// @Param image formData file false "領収書画像"
// @Success 201 {object} SubmitResponse "申請受理"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /transaction/recieve [post]
func (h *WalletHandler) SubmitDeposit(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	amount, err := formAmount(c)
	if err != nil {
		return err
	}

	req := &walletapp.SubmitDepositRequest{
		Amount:  amount,
		Coin:    c.FormValue("coin"),
		Network: c.FormValue("network"),
	}

	if image, filename, err := formImage(c); err != nil {
		return err
	} else if image != nil {
		req.Image = image
		req.ImageFilename = filename
	}

	resp, err := h.walletService.SubmitDeposit(c.Request().Context(), cred, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, SubmitResponse{
		Transaction: toTransactionItem(resp.Transaction),
	})
}

// SubmitWithdrawal 出金申請ハンドラー
// @Summary 出金申請を送信
// @Description 出金申請を送信します。出金先ウォレットアドレスは必須です
// @Tags wallet
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param amount formData int true "金額" example(1000)
// @Param coin formData string true "コインシンボル" example(BTC)
// @Param network formData string false "ネットワーク" example(mainnet)
// @Param withdrawWalletAddress formData string true "出金先ウォレットアドレス" example(bc1q...)
// @Success 201 {object} SubmitResponse "申請受理"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /transaction/send [post]
func (h *WalletHandler) SubmitWithdrawal(c echo.Context) error {
	cred, ok := middleware.CredentialFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "credential not found")
	}

	amount, err := formAmount(c)
	if err != nil {
		return err
	}

	req := &walletapp.SubmitWithdrawalRequest{
		Amount:        amount,
		Coin:          c.FormValue("coin"),
		Network:       c.FormValue("network"),
		WalletAddress: c.FormValue("withdrawWalletAddress"),
	}

	resp, err := h.walletService.SubmitWithdrawal(c.Request().Context(), cred, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, SubmitResponse{
		Transaction: toTransactionItem(resp.Transaction),
	})
}

// formAmount フォームから金額を取得
func formAmount(c echo.Context) (int64, error) {
	amountStr := c.FormValue("amount")
	if amountStr == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "amount is required")
	}
	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid amount parameter")
	}
	return amount, nil
}

// formImage フォームから領収書画像を取得（存在しない場合はnil）
func formImage(c echo.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// 画像なしは正常
		return nil, "", nil
	}
	if fileHeader.Size > maxReceiptSize {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "failed to open image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "failed to read image")
	}
	return data, fileHeader.Filename, nil
}
