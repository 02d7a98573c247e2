package handler

// SubmitResponse 入出金申請レスポンス
// @Description 申請されたトランザクション
type SubmitResponse struct {
	Transaction TransactionItem `json:"transaction"`
}
