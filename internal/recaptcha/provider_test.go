package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExecutor struct {
	token   string
	err     error
	loadErr error
	calls   int
	loads   int
}

func (c *countingExecutor) Execute(_ context.Context, siteKey, action string) (string, error) {
	c.calls++
	return c.token, c.err
}

func (c *countingExecutor) Load(context.Context, string) error {
	c.loads++
	return c.loadErr
}

func TestProvider_Unconfigured(t *testing.T) {
	exec := &countingExecutor{token: "never"}

	tests := []struct {
		name string
		p    *Provider
	}{
		{name: "no site key", p: New(Config{}, exec)},
		{name: "no executor", p: New(Config{SiteKey: "site"}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.p.Execute(context.Background(), "register")
			require.NoError(t, err)
			assert.Empty(t, token)
		})
	}
	assert.Zero(t, exec.calls)
}

func TestProvider_ExecuteLoadsOnce(t *testing.T) {
	exec := &countingExecutor{token: "token-123"}
	p := New(Config{SiteKey: "test-key"}, exec)

	for i := 0; i < 3; i++ {
		token, err := p.Execute(context.Background(), "register")
		require.NoError(t, err)
		assert.Equal(t, "token-123", token)
	}
	assert.Equal(t, 1, exec.loads)
	assert.Equal(t, 3, exec.calls)
}

func TestProvider_LoadFailureIsRetried(t *testing.T) {
	exec := &countingExecutor{token: "t", loadErr: errors.New("script blocked")}
	p := New(Config{SiteKey: "test-key"}, exec)

	_, err := p.Execute(context.Background(), "register")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenAcquisition)
	assert.Zero(t, exec.calls)

	exec.loadErr = nil
	token, err := p.Execute(context.Background(), "register")
	require.NoError(t, err)
	assert.Equal(t, "t", token)
	assert.Equal(t, 2, exec.loads)
}

func TestProvider_ExecutorError(t *testing.T) {
	p := New(Config{SiteKey: "test-key"}, &countingExecutor{err: errors.New("boom")})

	token, err := p.Execute(context.Background(), "register")
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrTokenAcquisition)
	assert.Contains(t, err.Error(), "boom")
}

func TestStaticExecutor(t *testing.T) {
	token, err := New(Config{SiteKey: "k"}, StaticExecutor("fixed")).Execute(context.Background(), "register")
	require.NoError(t, err)
	assert.Equal(t, "fixed", token)
}

func TestHTTPExecutor(t *testing.T) {
	seen := make(chan tokenRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		seen <- req
		_ = json.NewEncoder(w).Encode(tokenResponse{Token: "broker-token"})
	}))
	defer srv.Close()

	p := New(Config{SiteKey: "site"}, NewHTTPExecutor(srv.URL, time.Second))
	token, err := p.Execute(context.Background(), "register")
	require.NoError(t, err)
	assert.Equal(t, "broker-token", token)
	assert.Equal(t, tokenRequest{SiteKey: "site", Action: "register"}, <-seen)
}

func TestHTTPExecutor_BrokerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(Config{SiteKey: "site"}, NewHTTPExecutor(srv.URL, time.Second)).Execute(context.Background(), "register")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenAcquisition)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}
