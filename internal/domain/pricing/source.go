package pricing

import "context"

// PriceSource コイン価格の取得元を表すインターフェース
// 実体は外部の価格APIであり、TTLキャッシュ実装がこれをデコレートする。
type PriceSource interface {
	// FetchQuotes 指定シンボルの価格を取得
	FetchQuotes(ctx context.Context, symbols []string) ([]Quote, error)
}
