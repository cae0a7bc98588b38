package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"flipdeck-api/internal/cache"
	"flipdeck-api/internal/calc"
	"flipdeck-api/internal/store"
	"flipdeck-api/pkg/apierror"
	"flipdeck-api/pkg/response"
)

const portfolioCacheKey = "portfolio:totals"

// PortfolioHandler serves the aggregate dashboard figures, cached between
// mutations.
type PortfolioHandler struct {
	store *store.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(s *store.Store, c cache.Cache, ttl time.Duration) *PortfolioHandler {
	return &PortfolioHandler{store: s, cache: c, ttl: ttl}
}

// Get handles GET /api/v1/portfolio
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	compute := func() ([]byte, error) {
		return json.Marshal(calc.Portfolio(h.store.Export()))
	}

	var (
		data []byte
		err  error
	)
	if h.cache != nil {
		data, err = h.cache.GetOrSet(r.Context(), portfolioCacheKey, h.ttl, compute)
	} else {
		data, err = compute()
	}
	if err != nil {
		response.Error(w, apierror.InternalError("failed to compute portfolio totals"))
		return
	}

	response.OK(w, json.RawMessage(data))
}

// Invalidate drops the cached totals. Wired to the store's mutation hook so
// the dashboard never serves figures from before the last write.
func (h *PortfolioHandler) Invalidate() {
	if h.cache == nil {
		return
	}
	_ = h.cache.Delete(context.Background(), portfolioCacheKey)
}
