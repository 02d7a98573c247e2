package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/transaction"
)

func TestSubmissionRepository_SubmitDeposit(t *testing.T) {
	cred := session.MustNewCredential("user-token", "user@example.com", session.RoleUser)

	t.Run("正常系: multipartフォームとして転送される", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseMultipartForm(16<<20))
			assert.Equal(t, "sub-1", r.FormValue("submissionId"))
			assert.Equal(t, "deposit", r.FormValue("type"))
			assert.Equal(t, "5000", r.FormValue("amount"))
			assert.Equal(t, "BTC", r.FormValue("Coin"))

			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "proof.png", header.Filename)
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"_id": "txn-1", "email": "user@example.com", "type": "deposit",
				"amount": 5000, "status": "pending", "Coin": "BTC", "image": ""}`)
		}))
		defer server.Close()

		repo := NewSubmissionRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		txn, err := repo.SubmitDeposit(context.Background(), cred, &transaction.Submission{
			SubmissionID:  "sub-1",
			Type:          transaction.TransactionTypeDeposit,
			Amount:        5000,
			Coin:          "BTC",
			Image:         []byte{0x89, 0x50, 0x4e, 0x47},
			ImageFilename: "proof.png",
		})

		require.NoError(t, err)
		// パスの綴りはバックエンド互換のまま
		assert.Equal(t, "/transaction/recieve", gotPath)
		assert.Equal(t, "txn-1", txn.TransactionID())
		assert.True(t, txn.Status().IsPending())
	})

	t.Run("異常系: 不正な申請はリクエストを送らない", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		repo := NewSubmissionRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		_, err := repo.SubmitDeposit(context.Background(), cred, &transaction.Submission{
			SubmissionID: "sub-1",
			Type:         transaction.TransactionTypeDeposit,
			Amount:       0,
			Coin:         "BTC",
		})

		assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
		assert.Equal(t, 0, calls)
	})
}

func TestSubmissionRepository_SubmitWithdrawal(t *testing.T) {
	cred := session.MustNewCredential("user-token", "user@example.com", session.RoleUser)

	t.Run("正常系: 出金先アドレスとネットワークを含めて送信する", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/send", r.URL.Path)

			require.NoError(t, r.ParseMultipartForm(16<<20))
			assert.Equal(t, "withdrawal", r.FormValue("type"))
			assert.Equal(t, "0xabc", r.FormValue("withdrawWalletAddress"))
			assert.Equal(t, "ERC20", r.FormValue("network"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"_id": "txn-2", "email": "user@example.com", "type": "withdrawal",
				"amount": 1200, "status": "pending", "Coin": "ETH", "image": "",
				"withdrawWalletAddress": "0xabc"}`)
		}))
		defer server.Close()

		network := "ERC20"
		address := "0xabc"
		repo := NewSubmissionRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		txn, err := repo.SubmitWithdrawal(context.Background(), cred, &transaction.Submission{
			SubmissionID:  "sub-2",
			Type:          transaction.TransactionTypeWithdrawal,
			Amount:        1200,
			Coin:          "ETH",
			Network:       &network,
			WalletAddress: &address,
		})

		require.NoError(t, err)
		assert.Equal(t, "txn-2", txn.TransactionID())
	})

	t.Run("異常系: 出金先アドレスなしはリクエストを送らない", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		repo := NewSubmissionRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		_, err := repo.SubmitWithdrawal(context.Background(), cred, &transaction.Submission{
			SubmissionID: "sub-3",
			Type:         transaction.TransactionTypeWithdrawal,
			Amount:       1200,
			Coin:         "ETH",
		})

		assert.ErrorIs(t, err, transaction.ErrMissingWalletAddress)
		assert.Equal(t, 0, calls)
	})
}
