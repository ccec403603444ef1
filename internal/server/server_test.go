package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/kiranshivaraju/gitpulse/internal/backend/mock"
	"github.com/kiranshivaraju/gitpulse/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(port int) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: port, Env: "test"},
		Backend: config.BackendConfig{
			BaseURL:        "http://backend:5000",
			ProfileTimeout: time.Second,
			AITimeout:      time.Second,
		},
	}
}

func TestHealthHandler_OK(t *testing.T) {
	h := HealthHandler(testConfig(8080))

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "test", data["env"])
	assert.Equal(t, "http://backend:5000", data["backend"])
}

func TestNewHandler_WiresDashboard(t *testing.T) {
	h := NewHandler(testConfig(8080), mock.NewClient())

	req := httptest.NewRequest("POST", "/api/v1/dashboard", bytes.NewBufferString(`{"username":"octocat"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, testConfig(port)) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/api/v1/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, ShutdownTimeout)
}
