package http

import (
	"time"

	handler "chainscope/internal/adapter/handler/http"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// NewRouter builds the route table for the chain API and the health check.
func NewRouter(h *handler.ChainHandler, logger *zap.Logger) *router.Router {
	r := router.New()

	r.GET("/chains", h.ListChains)
	r.GET("/chains/{chainId:[0-9]+}", h.GetChain)
	r.GET("/chains/{chainId:[0-9]+}/health", h.GetChainHealth)
	r.GET("/chains/{chainId:[0-9]+}/rpcs", h.GetChainRPCs)
	r.GET("/chains/{chainId:[0-9]+}/wallet", h.GetWalletConfig)

	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	logger.Info("All routes registered.")
	return r
}

// LoggingMiddleware stamps a request ID on every request and logs its outcome.
func LoggingMiddleware(logger *zap.Logger, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	logger = logger.Named("HTTP")
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		requestID := string(ctx.Request.Header.Peek(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set(RequestIDHeader, requestID)

		next(ctx)

		logger.Info("Request handled",
			zap.String("requestId", requestID),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
