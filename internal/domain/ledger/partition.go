package ledger

import (
	"wallet-gateway/internal/domain/transaction"
)

// Partition 取得済みページのトランザクション一覧を承認待ちと確定済みに分割
// 分割はstatusに対する純粋な述語で行う: pending = status == "pending"、
// settled = その補集合（completedとfailedはバッジ色のみで区別される）。
// すべての要素はちょうど一方にのみ含まれる。
//
// 分割はページネーションの後に適用されるため、Nitemのページでも各ビューには
// N未満しか表示されないことがある。totalとtotalPagesは分割前のページを
// 反映する（観測された挙動をそのまま保持）。
func Partition(transactions []*transaction.Transaction) (pending, settled []*transaction.Transaction) {
	pending = make([]*transaction.Transaction, 0, len(transactions))
	settled = make([]*transaction.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.Status().IsPending() {
			pending = append(pending, txn)
		} else {
			settled = append(settled, txn)
		}
	}
	return pending, settled
}
