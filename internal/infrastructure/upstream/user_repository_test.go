package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/user"
)

func TestUserRepository_FetchProfile(t *testing.T) {
	cred := session.MustNewCredential("user-token", "user@example.com", session.RoleUser)

	t.Run("正常系: プロフィールを取得できる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/profile", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"_id": "user-1", "email": "user@example.com", "fullName": "Taro Yamada",
				"country": "JP", "kycStatus": "verified", "suspended": false,
				"createdAt": "2024-01-15T09:00:00Z"}`)
		}))
		defer server.Close()

		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		u, err := repo.FetchProfile(context.Background(), cred)

		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID())
		assert.Equal(t, "Taro Yamada", u.FullName())
		assert.Equal(t, user.KYCStatusVerified, u.KYCStatus())
		assert.False(t, u.Suspended())
	})

	t.Run("異常系: 401はErrUnauthorizedにマップされる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		_, err := repo.FetchProfile(context.Background(), cred)

		assert.ErrorIs(t, err, session.ErrUnauthorized)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	cred := session.MustNewCredential("user-token", "user@example.com", session.RoleUser)

	t.Run("正常系: フィールドごとにPATCHし更新後の状態を再取得する", func(t *testing.T) {
		var patched []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method == http.MethodPatch {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				patched = append(patched, r.URL.Path+"="+body["value"])
				fmt.Fprint(w, `{}`)
				return
			}
			assert.Equal(t, "/profile", r.URL.Path)
			fmt.Fprint(w, `{"_id": "user-1", "email": "user@example.com", "fullName": "Jiro Suzuki",
				"country": "US", "kycStatus": "pending", "suspended": false,
				"createdAt": "2024-01-15T09:00:00Z"}`)
		}))
		defer server.Close()

		name := "Jiro Suzuki"
		country := "US"
		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		u, err := repo.UpdateProfile(context.Background(), cred, user.ProfileUpdate{
			FullName: &name,
			Country:  &country,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"/profile/name=Jiro Suzuki", "/profile/country=US"}, patched)
		assert.Equal(t, "Jiro Suzuki", u.FullName())
		assert.Equal(t, "US", u.Country())
	})

	t.Run("正常系: 未指定のフィールドはPATCHしない", func(t *testing.T) {
		var patchCalls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method == http.MethodPatch {
				patchCalls++
				assert.Equal(t, "/profile/name", r.URL.Path)
				fmt.Fprint(w, `{}`)
				return
			}
			fmt.Fprint(w, `{"_id": "user-1", "email": "user@example.com", "fullName": "Jiro Suzuki",
				"country": "JP", "kycStatus": "pending", "suspended": false}`)
		}))
		defer server.Close()

		name := "Jiro Suzuki"
		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		_, err := repo.UpdateProfile(context.Background(), cred, user.ProfileUpdate{FullName: &name})

		require.NoError(t, err)
		assert.Equal(t, 1, patchCalls)
	})
}

func TestUserRepository_ListUsers(t *testing.T) {
	cred := session.MustNewCredential("admin-token", "admin@example.com", session.RoleAdmin)

	t.Run("正常系: ユーザー一覧を1ページ取得できる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/users", r.URL.Path)
			assert.Equal(t, "3", r.URL.Query().Get("page"))
			assert.Equal(t, "20", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"users": [{"_id": "user-1", "email": "a@example.com", "fullName": "A",
					"country": "JP", "kycStatus": "none", "suspended": true}],
				"page": 3, "limit": 20, "totalPages": 4, "total": 65
			}`)
		}))
		defer server.Close()

		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		page, err := repo.ListUsers(context.Background(), cred, 3, 20)

		require.NoError(t, err)
		assert.Equal(t, 3, page.PageNum)
		assert.Equal(t, 4, page.TotalPages)
		require.Len(t, page.Users, 1)
		assert.True(t, page.Users[0].Suspended())
	})
}

func TestUserRepository_UpdateUser(t *testing.T) {
	cred := session.MustNewCredential("admin-token", "admin@example.com", session.RoleAdmin)

	t.Run("正常系: 指定フィールドのみをボディに含める", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{}`)
		}))
		defer server.Close()

		suspended := true
		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		err := repo.UpdateUser(context.Background(), cred, "a@example.com", &suspended, nil)

		require.NoError(t, err)
		assert.Equal(t, "/admin/users/a@example.com", gotPath)
		assert.Equal(t, map[string]interface{}{"suspended": true}, gotBody)
	})

	t.Run("正常系: KYCステータスを文字列として送信する", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{}`)
		}))
		defer server.Close()

		kyc := user.KYCStatusVerified
		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		err := repo.UpdateUser(context.Background(), cred, "a@example.com", nil, &kyc)

		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"kycStatus": "verified"}, gotBody)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	cred := session.MustNewCredential("admin-token", "admin@example.com", session.RoleAdmin)

	t.Run("正常系: DELETEリクエストを発行する", func(t *testing.T) {
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{}`)
		}))
		defer server.Close()

		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		err := repo.DeleteUser(context.Background(), cred, "user-1")

		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/admin/users/user-1", gotPath)
	})

	t.Run("異常系: 404はAPIErrorとして返る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "user not found"}`)
		}))
		defer server.Close()

		repo := NewUserRepository(NewClientWithHTTPClient(server.URL, server.Client()))
		err := repo.DeleteUser(context.Background(), cred, "missing")

		require.Error(t, err)
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}
