package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/pricing"
	"wallet-gateway/internal/infrastructure/config"
)

// PriceSource 外部価格API実装のpricing.PriceSource
// 価格配信は認証不要の公開APIであり、ウォレットバックエンドとは別系統。
type PriceSource struct {
	httpClient *http.Client
	baseURL    string
	currency   string
	tracer     trace.Tracer
}

// NewPriceSource 新しいPriceSourceを作成
func NewPriceSource(cfg *config.PriceAPIConfig) *PriceSource {
	return &PriceSource{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		currency:   strings.ToLower(cfg.Currency),
		tracer:     otel.Tracer("price-source"),
	}
}

// FetchQuotes 指定シンボルの価格を取得
func (s *PriceSource) FetchQuotes(ctx context.Context, symbols []string) ([]pricing.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "PriceSource.FetchQuotes")
	defer span.End()

	span.SetAttributes(attribute.Int("pricing.symbol_count", len(symbols)))

	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToLower(strings.TrimSpace(sym))
		if sym != "" {
			ids = append(ids, sym)
		}
	}
	if len(ids) == 0 {
		return nil, pricing.ErrInvalidSymbol
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", s.currency)

	endpoint := s.baseURL + "/simple/price?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to create price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(otelcodes.Error, "price api error")
		return nil, NewAPIError(resp.StatusCode, "price api error")
	}

	// レスポンス形式: {"bitcoin": {"usd": 61234.5}, ...}
	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	now := time.Now()
	quotes := make([]pricing.Quote, 0, len(ids))
	for _, id := range ids {
		prices, ok := payload[id]
		if !ok {
			continue
		}
		price, ok := prices[s.currency]
		if !ok {
			continue
		}
		quote, err := pricing.NewQuote(id, price, strings.ToUpper(s.currency), now)
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}

	span.SetAttributes(attribute.Int("pricing.result_count", len(quotes)))
	span.SetStatus(otelcodes.Ok, fmt.Sprintf("fetched %d quotes", len(quotes)))
	return quotes, nil
}
