package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nanobanana/nanoblog/internal/debuglog"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "nanoblog/1.0 (terminal client; github.com/nanobanana/nanoblog)"
)

// TokenStore owns the persisted credential pair. The client is its only
// writer.
type TokenStore interface {
	Tokens() (access, refresh string)
	SetTokens(access, refresh string) error
	ClearTokens() error
}

// Client talks to the blog backend. It attaches the bearer token to
// every request, recovers from an expired access token with a single
// refresh-and-retry, and unwraps the backend's {code,message,data}
// envelope.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenStore
	userAgent string

	// refreshMu serializes refresh attempts so concurrent requests that
	// hit 401 at the same time mint one new pair, not one each.
	refreshMu sync.Mutex
}

type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Tokens    TokenStore
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		tokens:    opts.Tokens,
		userAgent: userAgent,
	}
}

// Authenticated reports whether an access token is currently held.
func (c *Client) Authenticated() bool {
	access, _ := c.tokens.Tokens()
	return access != ""
}

func (c *Client) setTokens(access, refresh string) error { return c.tokens.SetTokens(access, refresh) }

// ClearTokens drops the credential pair, e.g. on logout.
func (c *Client) ClearTokens() error { return c.tokens.ClearTokens() }

func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}

// do issues one request. On a 401 with a refresh token held it refreshes
// once and retries the original request once with the minted access
// token; the retry's outcome is final. Refresh failure falls through to
// the original 401.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	access, refresh := c.tokens.Tokens()
	status, respBody, err := c.send(ctx, method, endpoint, payload, access)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}

	if status == http.StatusUnauthorized && refresh != "" {
		newAccess, refreshErr := c.refreshAccess(ctx, access)
		if refreshErr == nil {
			status, respBody, err = c.send(ctx, method, endpoint, payload, newAccess)
			if err != nil {
				return fmt.Errorf("retrying request: %w", err)
			}
			return c.decode(status, respBody, out)
		}
		debuglog.Warnf("token refresh failed, surfacing original 401: %v", refreshErr)
	}

	return c.decode(status, respBody, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, access string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) decode(status int, body []byte, out any) error {
	if status < 200 || status >= 300 {
		return errorFromBody(status, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}

	var env struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	// Some endpoints (e.g. delete) answer without the data envelope.
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func errorFromBody(status int, body []byte) error {
	apiErr := &Error{Code: status, Message: "request failed"}

	var parsed struct {
		Code    int                 `json:"code"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
		Detail  string              `json:"detail"`
	}
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if parsed.Code != 0 {
			apiErr.Code = parsed.Code
		}
		switch {
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		case parsed.Detail != "":
			apiErr.Message = parsed.Detail
		}
		apiErr.Errors = parsed.Errors
	}
	return apiErr
}

// refreshAccess exchanges the refresh token for a new access token.
// Callers pass the access token their failed request carried; if the
// pair already changed while waiting on the lock, another request won
// the race and its freshly minted token is reused as-is. On any
// failure the whole pair is cleared and the refresh is never retried.
func (c *Client) refreshAccess(ctx context.Context, staleAccess string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refresh := c.tokens.Tokens()
	if access != "" && access != staleAccess {
		return access, nil
	}
	if refresh == "" {
		return "", fmt.Errorf("no refresh token held")
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", err
	}

	status, body, err := c.send(ctx, http.MethodPost, endpointRefresh, payload, "")
	if err != nil {
		c.tokens.ClearTokens()
		return "", fmt.Errorf("refreshing token: %w", err)
	}
	if status < 200 || status >= 300 {
		c.tokens.ClearTokens()
		return "", errorFromBody(status, body)
	}

	var minted struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.decode(status, body, &minted); err != nil {
		c.tokens.ClearTokens()
		return "", err
	}
	if minted.Access == "" {
		c.tokens.ClearTokens()
		return "", fmt.Errorf("refresh response carried no access token")
	}

	// The server may rotate refresh tokens; keep ours when it does not.
	newRefresh := minted.Refresh
	if newRefresh == "" {
		newRefresh = refresh
	}
	if err := c.tokens.SetTokens(minted.Access, newRefresh); err != nil {
		return "", fmt.Errorf("storing refreshed tokens: %w", err)
	}

	debuglog.Infof("access token refreshed")
	return minted.Access, nil
}
