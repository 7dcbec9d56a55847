package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chainscope/internal/config"
	"chainscope/internal/domain/entity"
	domainService "chainscope/internal/domain/service"
	"chainscope/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.RPCChecker = (*Checker)(nil)

const defaultProbeTimeout = 10 * time.Second

// Checker probes RPC endpoints with an eth_blockNumber call.
type Checker struct {
	client  *fasthttp.Client
	dialer  *websocket.Dialer
	timeout time.Duration
	logger  *zap.Logger
}

// NewChecker creates a new RPC checker instance.
func NewChecker(cfg config.CheckerConfig, logger *zap.Logger) *Checker {
	timeout := cfg.GetTimeout()
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Checker{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: timeout,
		},
		timeout: timeout,
		logger:  logger.Named("RPCChecker"),
	}
}

// checkPayload is the standard JSON-RPC request to check node health.
var checkPayload = []byte(`{"jsonrpc":"2.0","method":"eth_blockNumber","params":[],"id":1}`)

// JSONRPCResponse defines the basic structure for a JSON-RPC response.
type JSONRPCResponse struct {
	ID      any             `json:"id"`
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError defines the structure for a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// CheckRPC dispatches on the URL scheme. The returned latency covers the
// whole round trip, connection setup included.
func (c *Checker) CheckRPC(ctx context.Context, rpcURL entity.RPCURL) (bool, time.Duration, error) {
	startTime := time.Now()

	switch proto := entity.ProtocolOf(rpcURL); proto {
	case entity.ProtocolHTTP, entity.ProtocolHTTPS:
		return c.checkHTTP(ctx, rpcURL.String(), startTime)
	case entity.ProtocolWS, entity.ProtocolWSS:
		return c.checkWS(ctx, rpcURL.String(), startTime)
	default:
		c.logger.Warn("Skipping check for unsupported protocol", zap.String("url", rpcURL.String()))
		return false, 0, fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, rpcURL)
	}
}

// effectiveTimeout shortens the probe timeout to the context deadline.
func (c *Checker) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func (c *Checker) checkHTTP(ctx context.Context, rpcURL string, startTime time.Time) (bool, time.Duration, error) {
	timeout := c.effectiveTimeout(ctx)
	if timeout <= 0 {
		return false, 0, fmt.Errorf("%w: no time left to probe %s", apperrors.ErrTimeout, rpcURL)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rpcURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(checkPayload)

	requestErr := c.client.DoTimeout(req, resp, timeout)
	latency := time.Since(startTime)

	if requestErr != nil {
		c.logger.Debug("HTTP RPC check request failed",
			zap.String("url", rpcURL), zap.Duration("timeout", timeout), zap.Error(requestErr),
		)
		if errors.Is(requestErr, fasthttp.ErrTimeout) {
			return false, latency, fmt.Errorf("%w: http request to %s timed out after %v: %v",
				apperrors.ErrTimeout, rpcURL, timeout, requestErr,
			)
		}
		return false, latency, fmt.Errorf("%w: http request to %s failed: %v",
			apperrors.ErrExternalServiceFailure, rpcURL, requestErr,
		)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Debug("HTTP RPC check returned non-OK status",
			zap.String("url", rpcURL), zap.Int("statusCode", resp.StatusCode()),
		)
		return false, latency, fmt.Errorf("%w: rpc %s returned non-OK http status: %d",
			apperrors.ErrExternalServiceFailure, rpcURL, resp.StatusCode(),
		)
	}

	if err := c.validateJSONRPCResponse(rpcURL, resp.Body()); err != nil {
		return false, latency, err
	}
	return true, latency, nil
}

func (c *Checker) checkWS(ctx context.Context, rpcURL string, startTime time.Time) (bool, time.Duration, error) {
	timeout := c.effectiveTimeout(ctx)
	if timeout <= 0 {
		return false, 0, fmt.Errorf("%w: no time left to probe %s", apperrors.ErrTimeout, rpcURL)
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, _, err := c.dialer.DialContext(dialCtx, rpcURL, nil)
	if err != nil {
		c.logger.Debug("WS dial failed", zap.String("url", rpcURL), zap.Error(err))
		return false, time.Since(startTime), wsError(dialCtx, "dial", rpcURL, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, checkPayload); err != nil {
		c.logger.Debug("WS write failed", zap.String("url", rpcURL), zap.Error(err))
		return false, time.Since(startTime), wsError(dialCtx, "write", rpcURL, err)
	}

	_, message, err := conn.ReadMessage()
	latency := time.Since(startTime)
	if err != nil {
		c.logger.Debug("WS read failed", zap.String("url", rpcURL), zap.Error(err))
		return false, latency, wsError(dialCtx, "read", rpcURL, err)
	}

	if err := c.validateJSONRPCResponse(rpcURL, message); err != nil {
		return false, latency, err
	}
	return true, latency, nil
}

// wsError classifies a websocket failure as a timeout or an upstream failure.
func wsError(ctx context.Context, op, rpcURL string, err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: ws %s %s timed out: %v", apperrors.ErrTimeout, op, rpcURL, err)
	}
	return fmt.Errorf("%w: ws %s %s failed: %v", apperrors.ErrExternalServiceFailure, op, rpcURL, err)
}

// validateJSONRPCResponse checks that body is a successful JSON-RPC 2.0 response.
func (c *Checker) validateJSONRPCResponse(rpcURL string, body []byte) error {
	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		c.logger.Debug("RPC check failed to unmarshal JSON response",
			zap.String("url", rpcURL), zap.ByteString("body", body), zap.Error(err),
		)
		return fmt.Errorf("%w: rpc %s returned invalid JSON response: %v",
			apperrors.ErrExternalServiceFailure, rpcURL, err,
		)
	}

	if rpcResp.Error != nil {
		c.logger.Debug("RPC check returned JSON-RPC error",
			zap.String("url", rpcURL),
			zap.Int("errorCode", rpcResp.Error.Code),
			zap.String("errorMessage", rpcResp.Error.Message),
		)
		return fmt.Errorf("%w: rpc %s returned json-rpc error: %d %s",
			apperrors.ErrExternalServiceFailure, rpcURL, rpcResp.Error.Code, rpcResp.Error.Message,
		)
	}

	if rpcResp.Jsonrpc != "2.0" || len(rpcResp.Result) == 0 {
		c.logger.Debug("RPC check returned invalid JSON-RPC structure",
			zap.String("url", rpcURL), zap.ByteString("body", body),
		)
		return fmt.Errorf("%w: rpc %s returned invalid JSON-RPC structure",
			apperrors.ErrExternalServiceFailure, rpcURL,
		)
	}

	return nil
}
