package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	otelcodes "go.opentelemetry.io/otel/codes"
)

// Probe 起動時の死活監視
// バックエンドの応答を固定回数・固定間隔で確認する。バックオフや
// 回数の動的変更は行わない（起動時のウェイクアップ専用）。
func (c *Client) Probe(ctx context.Context, attempts int, delay time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "Client.Probe")
	defer span.End()

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
		if err != nil {
			return fmt.Errorf("failed to create probe request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode < 500 {
			span.SetStatus(otelcodes.Ok, "upstream reachable")
			return nil
		}
		lastErr = NewAPIError(resp.StatusCode, "upstream not ready")
	}

	span.SetStatus(otelcodes.Error, "upstream unreachable")
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return ErrUnavailable
}
