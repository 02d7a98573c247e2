package pricecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wallet-gateway/internal/domain/pricing"
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

// mustQuote テスト用Quoteを作成
func mustQuote(symbol string, price float64, at time.Time) pricing.Quote {
	q, err := pricing.NewQuote(symbol, price, "USD", at)
	if err != nil {
		panic(err)
	}
	return q
}

func TestCachedPriceSource_FetchQuotes(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: 初回は取得元へ問い合わせる", func(t *testing.T) {
		mockSource := new(MockPriceSource)
		cache := New(mockSource, time.Minute, nil)
		cache.now = func() time.Time { return base }

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]pricing.Quote{mustQuote("BTC", 64000, base)}, nil).Once()

		quotes, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)
		assert.Len(t, quotes, 1)
		mockSource.AssertExpectations(t)
	})

	t.Run("正常系: TTL内の再取得はキャッシュから返す", func(t *testing.T) {
		mockSource := new(MockPriceSource)
		cache := New(mockSource, time.Minute, nil)
		now := base
		cache.now = func() time.Time { return now }

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]pricing.Quote{mustQuote("BTC", 64000, base)}, nil).Once()

		_, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)

		// 30秒後: まだTTL内
		now = base.Add(30 * time.Second)
		quotes, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)
		assert.Len(t, quotes, 1)
		assert.Equal(t, 64000.0, quotes[0].Price())
		mockSource.AssertNumberOfCalls(t, "FetchQuotes", 1)
	})

	t.Run("正常系: TTL経過後は再取得する", func(t *testing.T) {
		mockSource := new(MockPriceSource)
		cache := New(mockSource, time.Minute, nil)
		now := base
		cache.now = func() time.Time { return now }

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]pricing.Quote{mustQuote("BTC", 64000, base)}, nil).Once()
		_, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)

		// TTLちょうどで期限切れ
		now = base.Add(time.Minute)
		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]pricing.Quote{mustQuote("BTC", 65000, now)}, nil).Once()

		quotes, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)
		assert.Equal(t, 65000.0, quotes[0].Price())
		mockSource.AssertNumberOfCalls(t, "FetchQuotes", 2)
	})

	t.Run("正常系: 未取得のシンボルのみ問い合わせる", func(t *testing.T) {
		mockSource := new(MockPriceSource)
		cache := New(mockSource, time.Minute, nil)
		cache.now = func() time.Time { return base }

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]pricing.Quote{mustQuote("BTC", 64000, base)}, nil).Once()
		_, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)

		mockSource.On("FetchQuotes", mock.Anything, []string{"ETH"}).Return(
			[]pricing.Quote{mustQuote("ETH", 3200, base)}, nil).Once()

		quotes, err := cache.FetchQuotes(context.Background(), []string{"BTC", "ETH"})
		require.NoError(t, err)
		assert.Len(t, quotes, 2)
		mockSource.AssertExpectations(t)
	})

	t.Run("異常系: 取得失敗時は部分適用せずエラーを返す", func(t *testing.T) {
		mockSource := new(MockPriceSource)
		cache := New(mockSource, time.Minute, nil)
		cache.now = func() time.Time { return base }

		mockSource.On("FetchQuotes", mock.Anything, []string{"BTC"}).Return(
			[]pricing.Quote{mustQuote("BTC", 64000, base)}, nil).Once()
		_, err := cache.FetchQuotes(context.Background(), []string{"BTC"})
		require.NoError(t, err)

		mockSource.On("FetchQuotes", mock.Anything, []string{"ETH"}).Return(nil, assert.AnError).Once()

		quotes, err := cache.FetchQuotes(context.Background(), []string{"BTC", "ETH"})
		assert.Error(t, err)
		assert.Nil(t, quotes)
	})
}
