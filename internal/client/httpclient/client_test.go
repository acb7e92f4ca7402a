package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) Config {
	cfg := DefaultConfig(name)
	cfg.RequestsPerSecond = 0
	cfg.MinRequests = 3
	cfg.OpenTimeout = 5 * time.Second
	return cfg
}

func hostOf(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Host
}

func TestGetJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "WishFlow/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	}))
	defer server.Close()

	client := New(testConfig("test-json"))

	var out struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	require.NoError(t, client.GetJSON(context.Background(), server.URL, &out))
	assert.Equal(t, "USD", out.Base)
	assert.Equal(t, 0.9, out.Rates["EUR"])
}

func TestGetJSON_ClientErrorIsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`not here`))
	}))
	defer server.Close()

	client := New(testConfig("test-404"))

	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, &out)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se), "Expected StatusError, got %v", err)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, client.State(hostOf(t, server.URL)))
}

func TestGet_TripsBreakerOn5xx(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(testConfig("test-trip"))

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), server.URL, nil)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State(hostOf(t, server.URL)))

	before := hits.Load()
	_, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, hits.Load())
}

func TestGetJSON_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := New(testConfig("test-decode"))

	var out map[string]any
	assert.Error(t, client.GetJSON(context.Background(), server.URL, &out))
}

func TestGet_RateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig("test-limit")
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	client := New(cfg)

	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Get(ctx, server.URL, nil)
	assert.Error(t, err)
}

func TestGet_BreakerIsPerHost(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	client := New(testConfig("test-per-host"))

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), failing.URL, nil)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, client.State(hostOf(t, failing.URL)))

	resp, err := client.Get(context.Background(), healthy.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, client.State(hostOf(t, healthy.URL)))
}

func TestGet_RateLimitIsPerHost(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	first := httptest.NewServer(handler)
	defer first.Close()
	second := httptest.NewServer(handler)
	defer second.Close()

	cfg := testConfig("test-limit-per-host")
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	client := New(cfg)

	resp, err := client.Get(context.Background(), first.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err = client.Get(ctx, second.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestGet_BlockPrivateNetworks(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig("test-blocked")
	cfg.BlockPrivateNetworks = true
	client := New(cfg)

	_, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrBlockedAddress)
	assert.Zero(t, hits.Load())
}

func TestIsPublicIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"127.0.0.1", false},
		{"10.1.2.3", false},
		{"192.168.0.10", false},
		{"172.16.5.4", false},
		{"169.254.169.254", false},
		{"0.0.0.0", false},
		{"::1", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"93.184.216.34", true},
		{"2606:4700::1111", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, isPublicIP(net.ParseIP(tt.ip)), tt.ip)
	}
}
