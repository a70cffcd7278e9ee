package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokens is an in-memory TokenStore for tests.
type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func (m *memTokens) Tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

func (m *memTokens) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memTokens) ClearTokens() error {
	return m.SetTokens("", "")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeEnvelope(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"code":    200,
		"message": "ok",
		"data":    data,
	})
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenStore) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{BaseURL: server.URL, Tokens: tokens})
}

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth, gotAgent string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		writeEnvelope(w, map[string]string{"ping": "pong"})
	})

	client := newTestClient(t, handler, &memTokens{access: "A1", refresh: "R1"})

	var out map[string]string
	require.NoError(t, client.Get(context.Background(), "/ping/", nil, &out))
	assert.Equal(t, "Bearer A1", gotAuth)
	assert.Equal(t, defaultUserAgent, gotAgent)
	assert.Equal(t, "pong", out["ping"])
}

func TestGetWithoutTokenSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		writeEnvelope(w, nil)
	})

	client := newTestClient(t, handler, &memTokens{})
	require.NoError(t, client.Get(context.Background(), "/ping/", nil, nil))
	assert.False(t, hasAuth, "unauthenticated requests carry no Authorization header, got %q", gotAuth)
}

func TestExpiredTokenRefreshesOnceAndRetries(t *testing.T) {
	var mu sync.Mutex
	refreshCalls := 0
	var attempts []string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		refreshCalls++
		mu.Unlock()

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "R1", body["refresh"])
		assert.Empty(t, r.Header.Get("Authorization"), "the refresh call itself is unauthenticated")
		writeEnvelope(w, map[string]string{"access": "A2", "refresh": "R2"})
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		mu.Lock()
		attempts = append(attempts, auth)
		mu.Unlock()

		if auth != "Bearer A2" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeEnvelope(w, User{Username: "admin"})
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	client := newTestClient(t, mux, tokens)

	var user User
	require.NoError(t, client.Get(context.Background(), "/me/", nil, &user))
	assert.Equal(t, "admin", user.Username)

	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, attempts,
		"exactly one retry, carrying the minted access token")

	access, refresh := tokens.Tokens()
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R2", refresh, "the rotated refresh token is stored")
}

func TestRefreshKeepsOldRefreshTokenWhenNotRotated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]string{"access": "A2"})
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer A2" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeEnvelope(w, User{Username: "admin"})
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	client := newTestClient(t, mux, tokens)

	require.NoError(t, client.Get(context.Background(), "/me/", nil, &User{}))

	_, refresh := tokens.Tokens()
	assert.Equal(t, "R1", refresh)
}

func TestNoRefreshTokenSurfaces401(t *testing.T) {
	refreshCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	client := newTestClient(t, mux, &memTokens{access: "A1"})

	err := client.Get(context.Background(), "/me/", nil, &User{})
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 0, refreshCalls, "no refresh token held means no refresh attempt")
}

func TestFailedRefreshClearsTokensAndSurfacesOriginal401(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh expired"})
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	client := newTestClient(t, mux, tokens)

	err := client.Get(context.Background(), "/me/", nil, &User{})
	require.True(t, IsUnauthorized(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "token expired", apiErr.Message, "the original 401 surfaces, not the refresh failure")

	access, refresh := tokens.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh, "a failed refresh clears the whole pair")
}

func TestRetryOutcomeIsFinal(t *testing.T) {
	refreshCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		writeEnvelope(w, map[string]string{"access": "A2"})
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		// The backend keeps rejecting even the minted token.
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "nope"})
	})

	client := newTestClient(t, mux, &memTokens{access: "A1", refresh: "R1"})

	err := client.Get(context.Background(), "/me/", nil, &User{})
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, refreshCalls, "a 401 on the retry is final, never a second refresh")
}

func TestConcurrentRequestsShareOneRefresh(t *testing.T) {
	var mu sync.Mutex
	refreshCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		refreshCalls++
		mu.Unlock()
		writeEnvelope(w, map[string]string{"access": "A2", "refresh": "R2"})
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer A2" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeEnvelope(w, User{Username: "admin"})
	})

	client := newTestClient(t, mux, &memTokens{access: "A1", refresh: "R1"})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/me/", nil, &User{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, 1, refreshCalls, "racing requests reuse the token the winner minted")
}

func TestDecodeUnwrapsEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "enveloped",
			body: `{"code":200,"message":"ok","data":{"username":"admin"}}`,
			want: "admin",
		},
		{
			name: "null data falls back to whole body",
			body: `{"username":"admin","data":null}`,
			want: "admin",
		},
		{
			name: "bare body",
			body: `{"username":"admin"}`,
			want: "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})
			client := newTestClient(t, handler, &memTokens{})

			var user User
			require.NoError(t, client.Get(context.Background(), "/me/", nil, &user))
			assert.Equal(t, tt.want, user.Username)
		})
	}
}

func TestErrorBodyParsing(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    int
		wantMessage string
		wantField   string
	}{
		{
			name:        "structured error with field details",
			status:      http.StatusBadRequest,
			body:        `{"code":1002,"message":"validation failed","errors":{"title":["required"]}}`,
			wantCode:    1002,
			wantMessage: "validation failed",
			wantField:   "title",
		},
		{
			name:        "detail only",
			status:      http.StatusUnauthorized,
			body:        `{"detail":"token expired"}`,
			wantCode:    http.StatusUnauthorized,
			wantMessage: "token expired",
		},
		{
			name:        "unparseable body keeps the status",
			status:      http.StatusBadGateway,
			body:        "<html>bad gateway</html>",
			wantCode:    http.StatusBadGateway,
			wantMessage: "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			client := newTestClient(t, handler, &memTokens{})

			err := client.Get(context.Background(), "/x/", nil, nil)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			if tt.wantField != "" {
				assert.Contains(t, apiErr.Errors, tt.wantField)
			}
		})
	}
}

func TestLoginStoresCredentialPair(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "admin" || body["password"] != "admin123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
			return
		}
		writeEnvelope(w, AuthResponse{
			Access: "A1", Refresh: "R1",
			User: User{Username: "admin", Role: "admin"},
		})
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer A1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "no token"})
			return
		}
		writeEnvelope(w, User{Username: "admin"})
	})

	tokens := &memTokens{}
	client := newTestClient(t, mux, tokens)
	auth := NewAuthService(client)

	_, err := auth.Login(context.Background(), "admin", "wrong")
	assert.True(t, IsUnauthorized(err))
	access, _ := tokens.Tokens()
	assert.Empty(t, access, "a failed login stores nothing")

	resp, err := auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Username)
	assert.True(t, client.Authenticated())

	// Subsequent requests ride on the stored pair.
	require.NoError(t, client.Get(context.Background(), "/me/", nil, &User{}))
}

func TestLogoutAlwaysClearsTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	client := newTestClient(t, mux, tokens)

	err := NewAuthService(client).Logout(context.Background())
	assert.Error(t, err, "the server failure still surfaces")
	assert.False(t, client.Authenticated(), "tokens are cleared regardless")
}
