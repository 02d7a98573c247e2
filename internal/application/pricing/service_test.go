package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	dompricing "wallet-gateway/internal/domain/pricing"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// MockPriceSource モック価格ソース
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) FetchQuotes(ctx context.Context, symbols []string) ([]dompricing.Quote, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dompricing.Quote), args.Error(1)
}

// newTestPricingService テスト用サービスとモックを作成
func newTestPricingService(t *testing.T) (*PricingApplicationService, *MockPriceSource) {
	t.Helper()
	mockSource := new(MockPriceSource)

	tracer := otel.Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	return NewPricingApplicationService(mockSource, logger, metrics), mockSource
}

// mustQuote テスト用Quoteを作成
func mustQuote(symbol string, price float64) dompricing.Quote {
	q, err := dompricing.NewQuote(symbol, price, "USD", time.Now())
	if err != nil {
		panic(err)
	}
	return q
}

func TestPricingApplicationService_GetQuotes(t *testing.T) {
	t.Run("正常系: 複数シンボルの価格取得", func(t *testing.T) {
		svc, mockSource := newTestPricingService(t)

		quotes := []dompricing.Quote{
			mustQuote("BTC", 64000.5),
			mustQuote("ETH", 3200.25),
		}
		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC", "ETH"}).Return(quotes, nil)

		resp, err := svc.GetQuotes(context.Background(), &GetQuotesRequest{Symbols: []string{"BTC", "ETH"}})
		require.NoError(t, err)
		assert.Len(t, resp.Quotes, 2)
		assert.Equal(t, "BTC", resp.Quotes[0].Symbol())
		mockSource.AssertExpectations(t)
	})

	t.Run("正常系: シンボルは大文字に正規化される", func(t *testing.T) {
		svc, mockSource := newTestPricingService(t)

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]dompricing.Quote{mustQuote("BTC", 64000.5)}, nil)

		_, err := svc.GetQuotes(context.Background(), &GetQuotesRequest{Symbols: []string{" btc "}})
		require.NoError(t, err)
		mockSource.AssertExpectations(t)
	})

	t.Run("異常系: シンボルなし", func(t *testing.T) {
		svc, mockSource := newTestPricingService(t)

		_, err := svc.GetQuotes(context.Background(), &GetQuotesRequest{})
		assert.ErrorIs(t, err, dompricing.ErrInvalidSymbol)
		mockSource.AssertNotCalled(t, "FetchQuotes")
	})

	t.Run("異常系: 空のシンボル", func(t *testing.T) {
		svc, mockSource := newTestPricingService(t)

		_, err := svc.GetQuotes(context.Background(), &GetQuotesRequest{Symbols: []string{"BTC", "  "}})
		assert.ErrorIs(t, err, dompricing.ErrInvalidSymbol)
		mockSource.AssertNotCalled(t, "FetchQuotes")
	})

	t.Run("異常系: 価格ソースのエラー", func(t *testing.T) {
		svc, mockSource := newTestPricingService(t)

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(nil, assert.AnError)

		_, err := svc.GetQuotes(context.Background(), &GetQuotesRequest{Symbols: []string{"BTC"}})
		assert.Error(t, err)
	})
}
