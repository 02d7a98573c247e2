package pricing

import (
	dompricing "wallet-gateway/internal/domain/pricing"
)

// GetQuotesRequest 価格取得リクエストDTO
type GetQuotesRequest struct {
	Symbols []string
}

// GetQuotesResponse 価格取得レスポンスDTO
type GetQuotesResponse struct {
	Quotes []dompricing.Quote
}
