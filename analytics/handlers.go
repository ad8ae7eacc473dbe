package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	defaultDays  = 30
	maxDays      = 365
	defaultLimit = 10
	maxLimit     = 100
)

// Handler records page views and serves aggregated stats.
type Handler struct {
	store   *Store
	limiter *viewLimiter
	done    chan struct{}
	now     func() time.Time
}

// NewHandler creates a handler that counts a visitor's view of a path at most
// once per dedupe window.
func NewHandler(store *Store, dedupe time.Duration) *Handler {
	h := &Handler{
		store:   store,
		limiter: newViewLimiter(dedupe),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go h.limiter.run(h.done)
	return h
}

// Close stops background pruning.
func (h *Handler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// Middleware records successful GET requests for which track returns true.
// Bots and Do Not Track requests are ignored. Recording failures are logged
// and never fail the request.
func (h *Handler) Middleware(track func(path string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}
			req := c.Request()
			if req.Method != http.MethodGet {
				return nil
			}
			status := c.Response().Status
			if status < 200 || status >= 300 {
				return nil
			}
			path := req.URL.Path
			if !track(path) {
				return nil
			}
			ua := req.UserAgent()
			if IsBot(ua) || req.Header.Get("DNT") == "1" {
				return nil
			}
			now := h.now()
			key := VisitorKey(h.store.Salt(), c.RealIP(), ua, now) + "|" + path
			if !h.limiter.allow(key) {
				return nil
			}
			if err := h.store.Record(req.Context(), path, now); err != nil {
				c.Logger().Errorf("analytics: record %s: %v", path, err)
			}
			return nil
		}
	}
}

// GetStats returns top pages and daily totals as JSON.
// Query params: days (1-365, default 30), limit (1-100, default 10).
func (h *Handler) GetStats(c echo.Context) error {
	days := boundedInt(c.QueryParam("days"), defaultDays, maxDays)
	limit := boundedInt(c.QueryParam("limit"), defaultLimit, maxLimit)
	to := h.now()
	from := to.AddDate(0, 0, -(days - 1))
	stats, err := h.store.GetStats(c.Request().Context(), from, to, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers the stats endpoint.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/views/", h.GetStats)
}

func boundedInt(raw string, def, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
