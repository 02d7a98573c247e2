package pricing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dompricing "wallet-gateway/internal/domain/pricing"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// PricingApplicationService コイン価格取得アプリケーションサービス
// 実際のキャッシュはPriceSourceのデコレータ側が担う。ここでは入力の
// 正規化と検証のみを行う。
type PricingApplicationService struct {
	source  dompricing.PriceSource
	logger  *otelinfra.Logger
	metrics *otelinfra.Metrics
	tracer  trace.Tracer
}

// NewPricingApplicationService 新しいPricingApplicationServiceを作成
func NewPricingApplicationService(
	source dompricing.PriceSource,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PricingApplicationService {
	return &PricingApplicationService{
		source:  source,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("pricing-service"),
	}
}

// GetQuotes 指定したシンボルの価格を取得
func (s *PricingApplicationService) GetQuotes(ctx context.Context, req *GetQuotesRequest) (*GetQuotesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PricingApplicationService.GetQuotes")
	defer span.End()

	symbols := make([]string, 0, len(req.Symbols))
	for _, raw := range req.Symbols {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" {
			span.SetStatus(otelcodes.Error, "empty symbol")
			return nil, dompricing.ErrInvalidSymbol
		}
		symbols = append(symbols, symbol)
	}
	if len(symbols) == 0 {
		span.SetStatus(otelcodes.Error, "no symbols")
		return nil, dompricing.ErrInvalidSymbol
	}

	span.SetAttributes(attribute.StringSlice("pricing.symbols", symbols))

	quotes, err := s.source.FetchQuotes(ctx, symbols)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordUpstreamError(ctx, "fetch_quotes")
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	span.SetAttributes(attribute.Int("pricing.result_count", len(quotes)))
	span.SetStatus(otelcodes.Ok, "quotes fetched")
	return &GetQuotesResponse{Quotes: quotes}, nil
}
