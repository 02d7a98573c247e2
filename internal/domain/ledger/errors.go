package ledger

import "errors"

var (
	// ErrInvalidPage ページ番号が無効
	ErrInvalidPage = errors.New("invalid page number")
	// ErrInvalidLimit 取得件数が無効
	ErrInvalidLimit = errors.New("invalid page limit")
)
