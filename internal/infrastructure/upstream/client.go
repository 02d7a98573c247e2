package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/infrastructure/config"
)

// Client 外部バックエンドAPIへのHTTPクライアント
// 認証トークンは共有クライアントのヘッダーを書き換えるのではなく、
// 呼び出しごとにsession.Credentialとして受け取りリクエストに付与する。
type Client struct {
	httpClient *http.Client
	baseURL    string
	tracer     trace.Tracer
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.UpstreamConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tracer:  otel.Tracer("upstream-client"),
	}
}

// NewClientWithHTTPClient HTTPクライアントを指定してClientを作成（テスト用）
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tracer:     otel.Tracer("upstream-client"),
	}
}

// getJSON 認証付きGETリクエストを発行しJSONレスポンスをデコード
func (c *Client) getJSON(ctx context.Context, cred session.Credential, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, cred, http.MethodGet, path, query, "", nil, out)
}

// patchJSON 認証付きPATCHリクエストを発行しJSONレスポンスをデコード
func (c *Client) patchJSON(ctx context.Context, cred session.Credential, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, cred, http.MethodPatch, path, query, "", nil, out)
}

// postJSON 認証付きPOSTリクエストを発行しJSONレスポンスをデコード
func (c *Client) postJSON(ctx context.Context, cred session.Credential, path string, body interface{}, out interface{}) error {
	return c.sendJSON(ctx, cred, http.MethodPost, path, body, out)
}

// patchJSONBody 認証付きPATCHリクエストをJSONボディ付きで発行
func (c *Client) patchJSONBody(ctx context.Context, cred session.Credential, path string, body interface{}, out interface{}) error {
	return c.sendJSON(ctx, cred, http.MethodPatch, path, body, out)
}

// deleteJSON 認証付きDELETEリクエストを発行
func (c *Client) deleteJSON(ctx context.Context, cred session.Credential, path string, out interface{}) error {
	return c.doJSON(ctx, cred, http.MethodDelete, path, nil, "", nil, out)
}

// sendJSON JSONボディ付きリクエストを発行
func (c *Client) sendJSON(ctx context.Context, cred session.Credential, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.doJSON(ctx, cred, method, path, nil, "application/json", reader, out)
}

// doJSON リクエストを発行しレスポンスを処理
// 2xx以外のレスポンスはエラーボディのmessageフィールドをAPIErrorとして返す。
// 401/403はsession.ErrUnauthorizedにマップする。
func (c *Client) doJSON(
	ctx context.Context,
	cred session.Credential,
	method string,
	path string,
	query url.Values,
	contentType string,
	body io.Reader,
	out interface{},
) error {
	ctx, span := c.tracer.Start(ctx, "Client."+method+" "+path)
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("upstream.path", path),
	)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to create request: %w", err)
	}

	if !cred.IsZero() {
		req.Header.Set("Authorization", "Bearer "+cred.Token())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		span.SetStatus(otelcodes.Error, "unauthorized")
		return session.ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := decodeErrorMessage(resp.Body)
		span.SetStatus(otelcodes.Error, message)
		return NewAPIError(resp.StatusCode, message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	span.SetStatus(otelcodes.Ok, "request completed")
	return nil
}

// decodeErrorMessage エラーボディからmessageフィールドを取り出す
// デコードできない場合は汎用メッセージにフォールバックする。
func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return "upstream error"
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
		return "upstream error"
	}
	return payload.Message
}
