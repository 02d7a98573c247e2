// Package pricecache 価格取得用のインメモリTTLキャッシュ
// 本システム唯一のキャッシュ。pricing.PriceSourceをデコレートし、
// TTL内のシンボルは再取得しない。
package pricecache

import (
	"context"
	"strings"
	"sync"
	"time"

	"wallet-gateway/internal/domain/pricing"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// entry キャッシュエントリ
type entry struct {
	quote     pricing.Quote
	expiresAt time.Time
}

// CachedPriceSource TTLキャッシュ付きのPriceSource
type CachedPriceSource struct {
	source  pricing.PriceSource
	ttl     time.Duration
	metrics *otelinfra.Metrics

	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New 新しいCachedPriceSourceを作成
func New(source pricing.PriceSource, ttl time.Duration, metrics *otelinfra.Metrics) *CachedPriceSource {
	return &CachedPriceSource{
		source:  source,
		ttl:     ttl,
		metrics: metrics,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// FetchQuotes キャッシュ経由で価格を取得
// TTL内のシンボルはキャッシュから返し、期限切れ・未取得のシンボルのみ
// 取得元へ問い合わせる。取得失敗時はキャッシュ済みの分だけを返さず
// エラーを返す（部分適用はしない）。
func (c *CachedPriceSource) FetchQuotes(ctx context.Context, symbols []string) ([]pricing.Quote, error) {
	now := c.now()

	c.mu.Lock()
	cached := make([]pricing.Quote, 0, len(symbols))
	var missing []string
	for _, sym := range symbols {
		if e, ok := c.entries[sym]; ok && now.Before(e.expiresAt) {
			cached = append(cached, e.quote)
			continue
		}
		missing = append(missing, sym)
	}
	c.mu.Unlock()

	if c.metrics != nil {
		for range cached {
			c.metrics.RecordPriceCache(ctx, true)
		}
		for range missing {
			c.metrics.RecordPriceCache(ctx, false)
		}
	}

	if len(missing) == 0 {
		return cached, nil
	}

	fetched, err := c.source.FetchQuotes(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, q := range fetched {
		for _, sym := range missing {
			if strings.EqualFold(sym, q.Symbol()) {
				c.entries[sym] = entry{quote: q, expiresAt: now.Add(c.ttl)}
			}
		}
	}
	c.mu.Unlock()

	return append(cached, fetched...), nil
}
