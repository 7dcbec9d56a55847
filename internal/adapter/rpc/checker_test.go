package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chainscope/internal/config"
	"chainscope/internal/domain/entity"
	"chainscope/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestChecker(timeout time.Duration) *Checker {
	return NewChecker(config.CheckerConfig{CheckTimeout: timeout}, zap.NewNop())
}

func jsonRPCServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckRPC_HTTP(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		working bool
		wantErr error
	}{
		{name: "healthy", status: http.StatusOK, body: `{"jsonrpc":"2.0","id":1,"result":"0x10"}`, working: true},
		{name: "json-rpc error", status: http.StatusOK, body: `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"nope"}}`, wantErr: apperrors.ErrExternalServiceFailure},
		{name: "missing result", status: http.StatusOK, body: `{"jsonrpc":"2.0","id":1}`, wantErr: apperrors.ErrExternalServiceFailure},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: apperrors.ErrExternalServiceFailure},
		{name: "http 503", status: http.StatusServiceUnavailable, body: ``, wantErr: apperrors.ErrExternalServiceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := jsonRPCServer(t, tt.status, tt.body)

			working, latency, err := newTestChecker(2*time.Second).CheckRPC(context.Background(), entity.RPCURL(ts.URL))

			assert.Equal(t, tt.working, working)
			assert.Positive(t, latency)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckRPC_HTTPTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
	}))
	defer ts.Close()

	working, _, err := newTestChecker(50*time.Millisecond).CheckRPC(context.Background(), entity.RPCURL(ts.URL))

	assert.False(t, working)
	require.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestCheckRPC_ExpiredContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	working, _, err := newTestChecker(time.Second).CheckRPC(ctx, "https://rpc.example")

	assert.False(t, working)
	require.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestCheckRPC_UnsupportedProtocol(t *testing.T) {
	working, latency, err := newTestChecker(time.Second).CheckRPC(context.Background(), "ipc:///tmp/geth.ipc")

	assert.False(t, working)
	assert.Zero(t, latency)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCheckRPC_WebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		assert.Contains(t, string(msg), "eth_blockNumber")
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"2.0","id":1,"result":"0xabc"}`))
	}))
	defer ts.Close()

	wsURL := entity.RPCURL("ws://" + strings.TrimPrefix(ts.URL, "http://"))
	working, latency, err := newTestChecker(2*time.Second).CheckRPC(context.Background(), wsURL)

	require.NoError(t, err)
	assert.True(t, working)
	assert.Positive(t, latency)
}

func TestCheckRPC_WebSocketDialFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	wsURL := entity.RPCURL("ws://" + strings.TrimPrefix(ts.URL, "http://"))
	working, _, err := newTestChecker(time.Second).CheckRPC(context.Background(), wsURL)

	assert.False(t, working)
	require.ErrorIs(t, err, apperrors.ErrExternalServiceFailure)
}
