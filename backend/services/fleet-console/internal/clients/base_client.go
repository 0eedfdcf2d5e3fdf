package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token to attach, "" for none.
type TokenSource interface {
	CurrentToken() string
}

// Response is a normalized successful reply. Data is nil for 204 and empty bodies.
type Response struct {
	Status int
	Data   json.RawMessage
}

// Decode unmarshals Data into v. A nil Data leaves v untouched.
func (r *Response) Decode(v interface{}) error {
	if r == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return &RequestError{Kind: KindDecode, Status: r.Status, Message: "unexpected response shape", Err: err}
	}
	return nil
}

// BaseClient sends JSON requests relative to a base URL.
type BaseClient struct {
	baseURL string
	client  HTTPDoer
	tokens  TokenSource
	logger  *zap.Logger
}

// NewBaseClient builds client with base URL. tokens may be nil for anonymous use.
func NewBaseClient(baseURL string, client HTTPDoer, tokens TokenSource, logger *zap.Logger) *BaseClient {
	if client == nil {
		client = NewDefaultHTTPClient(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *BaseClient) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Get issues a GET.
func (c *BaseClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with an optional JSON body.
func (c *BaseClient) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT with an optional JSON body.
func (c *BaseClient) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH with an optional JSON body.
func (c *BaseClient) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE.
func (c *BaseClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do executes one request. Any failure comes back as *RequestError.
func (c *BaseClient) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Kind: KindValidation, Method: method, Path: path, Message: "request body is not serializable", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, &RequestError{Kind: KindNetwork, Method: method, Path: path, Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.CurrentToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &RequestError{Kind: KindNetwork, Method: method, Path: path, Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &RequestError{
			Kind:    KindHTTP,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(resp, raw),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return &Response{Status: resp.StatusCode}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: KindNetwork, Method: method, Path: path, Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &Response{Status: resp.StatusCode}, nil
	}
	if !json.Valid(raw) {
		return nil, &RequestError{Kind: KindDecode, Method: method, Path: path, Status: resp.StatusCode, Message: "response body is not valid JSON"}
	}
	return &Response{Status: resp.StatusCode, Data: raw}, nil
}

// errorMessage prefers the body's message field, then error, then "<status> <text>".
func errorMessage(resp *http.Response, raw []byte) string {
	if gjson.ValidBytes(raw) {
		for _, field := range []string{"message", "error"} {
			if v := gjson.GetBytes(raw, field); v.Type != gjson.Null && v.Type != gjson.False && v.String() != "" {
				return v.String()
			}
		}
	}
	if status := strings.TrimSpace(resp.Status); status != "" && strings.HasPrefix(status, strconv.Itoa(resp.StatusCode)) {
		return status
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}

// NewDefaultHTTPClient returns *http.Client; timeout 0 means none.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
