package ledger

import (
	"sync"

	domledger "wallet-gateway/internal/domain/ledger"
)

// viewSnapshot ある主体の台帳ビューの最新状態
type viewSnapshot struct {
	committedSeq uint64
	page         int
	limit        domledger.Limit
	totalPages   int
}

// viewTracker 主体ごとの台帳ビュー状態を追跡
// 各取得リクエストに単調増加のシーケンストークンを発番し、より新しい
// トークンのコミット済みスナップショットを古いレスポンスが上書きできない
// ようにする（遅い先発リクエストが速い後発リクエストを潰すレースの排除）。
type viewTracker struct {
	mu      sync.Mutex
	nextSeq uint64
	views   map[string]*viewSnapshot
}

// newViewTracker 新しいviewTrackerを作成
func newViewTracker() *viewTracker {
	return &viewTracker{
		views: make(map[string]*viewSnapshot),
	}
}

// Begin 取得リクエストの開始を記録しトークンを発番
func (t *viewTracker) Begin(subject string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSeq++
	return t.nextSeq
}

// Commit 取得結果をスナップショットとして記録
// seqが既にコミット済みのものより古い場合は破棄しfalseを返す。
func (t *viewTracker) Commit(subject string, seq uint64, page int, limit domledger.Limit, totalPages int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, ok := t.views[subject]
	if !ok {
		snap = &viewSnapshot{}
		t.views[subject] = snap
	}
	if seq <= snap.committedSeq {
		return false
	}
	snap.committedSeq = seq
	snap.page = page
	snap.limit = limit
	snap.totalPages = totalPages
	return true
}

// Current 主体の最新スナップショットを返す
// 未取得の場合はok=falseを返す。
func (t *viewTracker) Current(subject string) (page int, limit domledger.Limit, totalPages int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, found := t.views[subject]
	if !found || snap.committedSeq == 0 {
		return 0, 0, 0, false
	}
	return snap.page, snap.limit, snap.totalPages, true
}
