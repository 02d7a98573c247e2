package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	pricingapp "wallet-gateway/internal/application/pricing"
)

// PricingHandler コイン価格ハンドラー
type PricingHandler struct {
	pricingService *pricingapp.PricingApplicationService
}

// NewPricingHandler 新しいPricingHandlerを作成
func NewPricingHandler(pricingService *pricingapp.PricingApplicationService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// GetQuotes コイン価格取得ハンドラー
// @Summary コイン価格を取得
// @Description 指定したシンボルの法定通貨建て価格を取得します。結果は一定時間キャッシュされます
// @Tags pricing
// @Accept json
// @Produce json
// @Param symbols query string true "カンマ区切りのコインシンボル" example(BTC,ETH)
// @Success 200 {object} QuotesResponse "取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Router /prices [get]
func (h *PricingHandler) GetQuotes(c echo.Context) error {
	symbolsParam := c.QueryParam("symbols")
	if symbolsParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "symbols parameter is required")
	}

	resp, err := h.pricingService.GetQuotes(c.Request().Context(), &pricingapp.GetQuotesRequest{
		Symbols: strings.Split(symbolsParam, ","),
	})
	if err != nil {
		return err
	}

	quotes := make([]QuoteItem, len(resp.Quotes))
	for i, q := range resp.Quotes {
		quotes[i] = QuoteItem{
			Symbol:    q.Symbol(),
			Price:     q.Price(),
			Currency:  q.Currency(),
			FetchedAt: q.FetchedAt().Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, QuotesResponse{Quotes: quotes})
}
