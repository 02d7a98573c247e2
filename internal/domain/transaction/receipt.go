package transaction

import (
	"fmt"
	"strings"
)

// dataURIPrefix data URIであることを示すプレフィックス
const dataURIPrefix = "data:"

// defaultImagePrefix 生のbase64ペイロードに付与するプレフィックス
const defaultImagePrefix = "data:image/png;base64,"

// Receipt 領収書画像を表す値オブジェクト
// 完全なdata URI（data:image/...;base64,...）または生のbase64文字列の
// いずれかを保持する。バイナリの正当性は検証しない。
type Receipt struct {
	raw string
}

// NewReceipt 新しいReceiptを作成
func NewReceipt(raw string) Receipt {
	return Receipt{raw: strings.TrimSpace(raw)}
}

// IsEmpty 領収書が存在しないかどうかを返す
func (r Receipt) IsEmpty() bool {
	return r.raw == ""
}

// Raw 保持している生の値を返す
func (r Receipt) Raw() string {
	return r.raw
}

// Source 表示可能な画像ソースを返す
// data:プレフィックスが無い場合はdata:image/png;base64,を付与し、
// 既にdata URIの場合はそのまま通す。
func (r Receipt) Source() string {
	return NormalizeSource(r.raw)
}

// Filename ダウンロードリンク用のファイル名を返す
func (r Receipt) Filename(transactionID string) string {
	return fmt.Sprintf("receipt-%s.png", transactionID)
}

// NormalizeSource 画像ソース文字列を表示可能な形式に正規化
func NormalizeSource(s string) string {
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, dataURIPrefix) {
		return s
	}
	return defaultImagePrefix + s
}
