package handler

// QuoteItem コイン1件の価格
// @Description コイン1件の価格
type QuoteItem struct {
	Symbol    string  `json:"symbol" example:"BTC"`
	Price     float64 `json:"price" example:"64000.5"`
	Currency  string  `json:"currency" example:"USD"`
	FetchedAt string  `json:"fetched_at" example:"2024-01-01T12:00:00Z"`
}

// QuotesResponse 価格レスポンス
// @Description 価格レスポンス
type QuotesResponse struct {
	Quotes []QuoteItem `json:"quotes"`
}
