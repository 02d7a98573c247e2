package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	pricingapp "wallet-gateway/internal/application/pricing"
	"wallet-gateway/internal/domain/pricing"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// MockPriceSource モック価格ソース
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) FetchQuotes(ctx context.Context, symbols []string) ([]pricing.Quote, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Quote), args.Error(1)
}

// newTestPricingHandler テスト用ハンドラーとモックを作成
func newTestPricingHandler(t *testing.T) (*PricingHandler, *MockPriceSource) {
	t.Helper()
	mockSource := new(MockPriceSource)

	logger := otelinfra.NewLogger(otel.Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	service := pricingapp.NewPricingApplicationService(mockSource, logger, metrics)
	return NewPricingHandler(service), mockSource
}

func TestPricingHandler_GetQuotes(t *testing.T) {
	t.Run("正常系: カンマ区切りのシンボルを解決する", func(t *testing.T) {
		h, mockSource := newTestPricingHandler(t)

		now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		btc, err := pricing.NewQuote("BTC", 64000.5, "USD", now)
		require.NoError(t, err)
		eth, err := pricing.NewQuote("ETH", 3200.25, "USD", now)
		require.NoError(t, err)

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC", "ETH"}).Return(
			[]pricing.Quote{btc, eth}, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/prices?symbols=btc,eth", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.GetQuotes(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body QuotesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Quotes, 2)
		assert.Equal(t, "BTC", body.Quotes[0].Symbol)
		assert.Equal(t, 64000.5, body.Quotes[0].Price)
	})

	t.Run("異常系: symbols未指定は400", func(t *testing.T) {
		h, _ := newTestPricingHandler(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		err := h.GetQuotes(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}
