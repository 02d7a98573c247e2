package ledger

import "strconv"

// PageItem ページネーションUIに表示する1要素
// リテラルなページ番号、または省略記号のいずれか。
type PageItem struct {
	Number   int
	Ellipsis bool
}

// NumberItem ページ番号の要素を作成
func NumberItem(n int) PageItem {
	return PageItem{Number: n}
}

// EllipsisItem 省略記号の要素を作成
func EllipsisItem() PageItem {
	return PageItem{Ellipsis: true}
}

// String 文字列表現を返す
func (pi PageItem) String() string {
	if pi.Ellipsis {
		return "..."
	}
	return strconv.Itoa(pi.Number)
}

// PageNumbers ページネーションUI用のページ番号列を生成
// currentPageの前後delta件のウィンドウと、先頭・末尾ページを常に含み、
// 連続しない箇所には省略記号を挿入する。結果は重複なく、省略記号を除いて
// 単調非減少となる。描画専用であり、データ取得には使用しない。
func PageNumbers(currentPage, totalPages, delta int) []PageItem {
	if totalPages < 1 {
		return nil
	}
	if delta < 0 {
		delta = 0
	}
	currentPage = ClampPage(currentPage, totalPages)

	items := make([]PageItem, 0, 2*delta+4)
	prev := 0
	for i := 1; i <= totalPages; i++ {
		if i != 1 && i != totalPages && (i < currentPage-delta || i > currentPage+delta) {
			continue
		}
		if prev != 0 && i-prev > 1 {
			items = append(items, EllipsisItem())
		}
		items = append(items, NumberItem(i))
		prev = i
	}
	return items
}
