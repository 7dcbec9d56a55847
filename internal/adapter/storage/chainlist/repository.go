package chainlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	dto "chainscope/internal/adapter/storage/chainlist/dto"
	"chainscope/internal/config"
	"chainscope/internal/domain"
	"chainscope/internal/domain/entity"
	domainRepo "chainscope/internal/domain/repository"
	"chainscope/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.ChainRepository = (*Repository)(nil)

const defaultFetchTimeout = 15 * time.Second

// Repository implements ChainRepository by fetching and merging every
// configured chain list source.
type Repository struct {
	client      *fasthttp.Client
	urls        []string
	timeout     time.Duration
	overlayFile string
	logger      *zap.Logger
}

// NewRepository creates a new Chainlist repository instance.
func NewRepository(cfg config.ChainlistConfig, logger *zap.Logger) *Repository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Repository{
		client:      &fasthttp.Client{},
		urls:        cfg.URLs,
		timeout:     timeout,
		overlayFile: cfg.OverlayFile,
		logger:      logger.Named("ChainlistStorage"),
	}
}

// GetAllChains fetches every source, merges them by chain ID and applies
// the local overlay. It fails only when no source could be read.
func (r *Repository) GetAllChains(ctx context.Context) ([]entity.Chain, error) {
	if len(r.urls) == 0 {
		return nil, fmt.Errorf("%w: no chain list sources configured", apperrors.ErrInvalidInput)
	}

	var (
		sources [][]entity.Chain
		errs    error
	)
	for _, url := range r.urls {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
		}
		chains, err := r.fetchSource(ctx, url)
		if err != nil {
			r.logger.Warn("Chain list source failed, skipping", zap.String("url", url), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		sources = append(sources, chains)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: all %d chain list sources failed: %w",
			domain.ErrUpstreamSourceFailure, len(r.urls), errs,
		)
	}

	merged := mergeChains(sources...)

	overlay, err := loadOverlay(r.overlayFile)
	if err != nil {
		r.logger.Error("Failed to load chain overlay, serving upstream data only", zap.Error(err))
	} else {
		merged = applyOverlay(merged, overlay, r.logger)
	}

	r.logger.Info("Merged chain list sources",
		zap.Int("sources", len(sources)),
		zap.Int("failedSources", len(multierr.Errors(errs))),
		zap.Int("chains", len(merged)),
	)
	return merged, nil
}

// fetchSource downloads and decodes one chain list.
func (r *Repository) fetchSource(ctx context.Context, url string) ([]entity.Chain, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	r.logger.Debug("Fetching chains", zap.String("url", url), zap.Duration("timeout", timeout))

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("%w: request to %s failed: %v", apperrors.ErrExternalServiceFailure, url, err)
	}

	if resp.StatusCode() == fasthttp.StatusNotFound {
		return nil, fmt.Errorf("%w: chain list source %s", apperrors.ErrNotFound, url)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		r.logger.Debug("Chain list source returned non-OK status",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("body", resp.Body()),
		)
		return nil, fmt.Errorf("%w: %s returned status %d",
			apperrors.ErrExternalServiceFailure, url, resp.StatusCode(),
		)
	}

	body := resp.Body()
	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		unzipped, err := resp.BodyGunzip()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decompress %s: %v", apperrors.ErrExternalServiceFailure, url, err)
		}
		body = unzipped
	}

	var rawChains []dto.ChainRaw
	if err := json.Unmarshal(body, &rawChains); err != nil {
		r.logger.Debug("Failed to unmarshal chain list",
			zap.String("url", url),
			zap.Error(err),
			zap.ByteString("bodySample", body[:min(1024, len(body))]),
		)
		return nil, fmt.Errorf("%w: failed to parse %s: %v", apperrors.ErrExternalServiceFailure, url, err)
	}

	chains := toDomainChains(rawChains, r.logger)
	r.logger.Debug("Fetched chain list source", zap.String("url", url), zap.Int("count", len(chains)))
	return chains, nil
}
