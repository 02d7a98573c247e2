package ledger

// Limit 1ページあたりの取得件数を表す値オブジェクト
// 各呼び出し箇所にばらばらの値が散らばらないよう、許可される値を
// ここで一元管理する。
type Limit int

// DefaultLimit デフォルトの取得件数
const DefaultLimit Limit = 10

// allowedLimits 許可される取得件数の集合
var allowedLimits = map[int]struct{}{
	10:  {},
	15:  {},
	20:  {},
	25:  {},
	50:  {},
	100: {},
}

// NewLimit 新しいLimitを作成
func NewLimit(n int) (Limit, error) {
	if _, ok := allowedLimits[n]; !ok {
		return 0, ErrInvalidLimit
	}
	return Limit(n), nil
}

// Int 整数値を返す
func (l Limit) Int() int {
	return int(l)
}

// AllowedLimits 許可される取得件数の一覧を返す
func AllowedLimits() []int {
	return []int{10, 15, 20, 25, 50, 100}
}
