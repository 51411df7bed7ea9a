// Package http assembles the router: middleware stack, feature routes, and
// the operational endpoints. Feature handlers register themselves; this
// package only decides ordering and which routes sit behind which guards.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"metdesk/internal/auth"
	"metdesk/internal/http/shared"
	"metdesk/internal/platform/metrics"
	"metdesk/internal/platform/middleware"
	"metdesk/internal/ratelimit"
	reporthandler "metdesk/internal/report/handler"
	"metdesk/internal/sheets"
)

// RouterDeps carries everything the router needs wired in from main. Limiter
// and CORSOrigins are optional; leaving them zero disables the layer.
type RouterDeps struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Reports     *reporthandler.Handler
	Auth        *auth.Handler
	Sheets      *sheets.Handler
	Tokens      middleware.StationTokenValidator
	Limiter     ratelimit.BucketStore
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	Ping        func(ctx context.Context) error
}

// NewRouter builds the full middleware chain. Order matters: recovery first so
// panics in any later layer still produce a 500, request IDs before logging so
// log lines carry them, and rate limiting after CORS so preflights stay cheap.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	if len(deps.CORSOrigins) > 0 {
		r.Use(middleware.CORS(deps.CORSOrigins))
	}
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ping != nil {
			if err := deps.Ping(req.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		if deps.Limiter != nil {
			r.Use(ratelimit.Middleware(deps.Limiter, deps.RateLimit, deps.RateWindow, deps.Metrics, deps.Logger))
		}

		requireStation := middleware.RequireStation(deps.Tokens, deps.Logger)
		deps.Reports.Register(r, requireStation)
		deps.Auth.Register(r)
		deps.Sheets.Register(r)
	})

	return r
}
