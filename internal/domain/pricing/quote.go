package pricing

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidSymbol シンボルが無効
	ErrInvalidSymbol = errors.New("invalid coin symbol")
	// ErrQuoteNotFound 価格が見つからないエラー
	ErrQuoteNotFound = errors.New("quote not found")
)

// Quote コイン1件の価格スナップショット
type Quote struct {
	symbol    string
	price     float64 // 法定通貨建て
	currency  string  // 法定通貨コード（USDなど）
	fetchedAt time.Time
}

// NewQuote 新しいQuoteを作成
func NewQuote(symbol string, price float64, currency string, fetchedAt time.Time) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, ErrInvalidSymbol
	}
	if currency == "" {
		currency = "USD"
	}
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	return Quote{
		symbol:    symbol,
		price:     price,
		currency:  currency,
		fetchedAt: fetchedAt,
	}, nil
}

// Symbol コインシンボルを返す
func (q Quote) Symbol() string {
	return q.symbol
}

// Price 価格を返す
func (q Quote) Price() float64 {
	return q.price
}

// Currency 法定通貨コードを返す
func (q Quote) Currency() string {
	return q.currency
}

// FetchedAt 取得時刻を返す
func (q Quote) FetchedAt() time.Time {
	return q.fetchedAt
}
