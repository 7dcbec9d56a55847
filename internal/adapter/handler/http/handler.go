package http

import (
	"encoding/json"
	"errors"
	"strconv"

	"chainscope/internal/application/port"
	"chainscope/internal/domain"
	"chainscope/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// ChainHandler serves the chain and RPC ranking API.
type ChainHandler struct {
	service port.ChainService
	logger  *zap.Logger
}

// NewChainHandler creates a handler backed by service.
func NewChainHandler(service port.ChainService, logger *zap.Logger) *ChainHandler {
	return &ChainHandler{
		service: service,
		logger:  logger.Named("ChainHandler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListChains handles GET /chains?search=&testnets=true.
func (h *ChainHandler) ListChains(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	filter := port.ChainFilter{
		Search:          string(args.Peek("search")),
		IncludeTestnets: args.GetBool("testnets"),
	}

	chains, err := h.service.ListChains(ctx, filter)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, chains)
}

// GetChain handles GET /chains/{chainId}.
func (h *ChainHandler) GetChain(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}

	chain, err := h.service.GetChain(ctx, chainID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, chain)
}

// GetChainHealth handles GET /chains/{chainId}/health.
func (h *ChainHandler) GetChainHealth(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}

	snapshot, err := h.service.GetChainHealth(ctx, chainID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, snapshot)
}

// GetChainRPCs handles GET /chains/{chainId}/rpcs and returns every
// endpoint of the chain, best first.
func (h *ChainHandler) GetChainRPCs(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}

	ranked, err := h.service.GetRankedRPCs(ctx, chainID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, ranked)
}

// GetWalletConfig handles GET /chains/{chainId}/wallet?max=N.
func (h *ChainHandler) GetWalletConfig(ctx *fasthttp.RequestCtx) {
	chainID, ok := h.chainID(ctx)
	if !ok {
		return
	}

	maxRPCs := 0
	if raw := ctx.QueryArgs().Peek("max"); len(raw) > 0 {
		n, err := strconv.Atoi(string(raw))
		if err != nil || n < 0 {
			h.writeError(ctx, apperrors.ErrInvalidInput)
			return
		}
		maxRPCs = n
	}

	cfg, err := h.service.GetWalletConfig(ctx, chainID, maxRPCs)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, cfg)
}

// chainID parses the chainId route parameter, writing a 400 on failure.
func (h *ChainHandler) chainID(ctx *fasthttp.RequestCtx) (int64, bool) {
	chainIDStr, ok := ctx.UserValue("chainId").(string)
	if !ok {
		h.logger.Error("Failed to get chainId from context")
		h.writeError(ctx, apperrors.ErrInvalidInput)
		return 0, false
	}

	chainID, err := strconv.ParseInt(chainIDStr, 10, 64)
	if err != nil || chainID <= 0 {
		h.logger.Debug("Failed to parse chainId", zap.String("chainIdStr", chainIDStr), zap.Error(err))
		h.writeError(ctx, apperrors.ErrInvalidInput)
		return 0, false
	}
	return chainID, true
}

func (h *ChainHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain and application errors to HTTP status codes.
func (h *ChainHandler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
		msg = "internal server error"
	} else {
		h.logger.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(ctx, status, errorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrChainNotFound),
		errors.Is(err, domain.ErrNoRPCsAvailable),
		errors.Is(err, apperrors.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrUpstreamSourceFailure),
		errors.Is(err, apperrors.ErrExternalServiceFailure):
		return fasthttp.StatusBadGateway
	case errors.Is(err, apperrors.ErrTimeout):
		return fasthttp.StatusGatewayTimeout
	default:
		return fasthttp.StatusInternalServerError
	}
}
