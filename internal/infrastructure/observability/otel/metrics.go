package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 台帳ページの取得数
	LedgerFetchCount metric.Int64Counter

	// ステータス遷移の実行数
	StatusTransitionCount metric.Int64Counter

	// 外部バックエンド呼び出しの失敗数
	UpstreamErrorCount metric.Int64Counter

	// 価格キャッシュのヒット/ミス数
	PriceCacheCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	ledgerFetchCount, err := meter.Int64Counter(
		"ledger_fetches_total",
		metric.WithDescription("Total number of ledger page fetches"),
	)
	if err != nil {
		return nil, err
	}

	statusTransitionCount, err := meter.Int64Counter(
		"status_transitions_total",
		metric.WithDescription("Total number of transaction status transitions"),
	)
	if err != nil {
		return nil, err
	}

	upstreamErrorCount, err := meter.Int64Counter(
		"upstream_errors_total",
		metric.WithDescription("Total number of upstream API failures"),
	)
	if err != nil {
		return nil, err
	}

	priceCacheCount, err := meter.Int64Counter(
		"price_cache_total",
		metric.WithDescription("Price cache lookups by outcome"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		LedgerFetchCount:      ledgerFetchCount,
		StatusTransitionCount: statusTransitionCount,
		UpstreamErrorCount:    upstreamErrorCount,
		PriceCacheCount:       priceCacheCount,
		RequestCount:          requestCount,
		ResponseTime:          responseTime,
		ErrorCount:            errorCount,
	}, nil
}

// RecordLedgerFetch 台帳ページの取得を記録
func (m *Metrics) RecordLedgerFetch(ctx context.Context, scope string, page int) {
	m.LedgerFetchCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("scope", scope),
			attribute.Int("page", page),
		),
	)
}

// RecordStatusTransition ステータス遷移を記録
func (m *Metrics) RecordStatusTransition(ctx context.Context, target string) {
	m.StatusTransitionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("target_status", target),
		),
	)
}

// RecordUpstreamError 外部バックエンド呼び出しの失敗を記録
func (m *Metrics) RecordUpstreamError(ctx context.Context, operation string) {
	m.UpstreamErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
		),
	)
}

// RecordPriceCache 価格キャッシュの参照結果を記録
func (m *Metrics) RecordPriceCache(ctx context.Context, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.PriceCacheCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("outcome", outcome),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
