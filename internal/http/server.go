// Package http exposes the analytics engine as a JSON API: one upload
// endpoint and per-view read endpoints the dashboard polls as the user
// adjusts filters.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"acutrace/internal/cache"
	"acutrace/internal/middleware/trace"
	"acutrace/internal/services"
	"acutrace/internal/theme"
)

// Options tune the server's caching and request limits. Zero fields get
// defaults.
type Options struct {
	Palette            theme.Palette
	CacheSize          int
	CacheTTL           time.Duration
	CleanupInterval    time.Duration
	RateLimitPerMinute int
	MaxPayloadBytes    int64
}

func (o *Options) applyDefaults() {
	if o.Palette.NodeColors == nil {
		o.Palette = theme.Default()
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 500
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = 10 * time.Minute
	}
	if o.RateLimitPerMinute <= 0 {
		o.RateLimitPerMinute = 60
	}
	if o.MaxPayloadBytes <= 0 {
		o.MaxPayloadBytes = 32 << 20
	}
}

type Server struct {
	http.Server
	service     *services.AnalysisService
	palette     theme.Palette
	rateLimiter *rateLimiter

	// viewCache holds encoded view responses keyed by session id, view
	// name and canonical criteria.
	viewCache    *cache.LRU[[]byte]
	cacheManager *cache.Manager
	tracer       *trace.Middleware

	maxPayloadBytes int64
	shutdownOnce    sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, svc *services.AnalysisService, opts Options) *Server {
	opts.applyDefaults()

	s := &Server{
		service:         svc,
		palette:         opts.Palette,
		rateLimiter:     newRateLimiter(opts.RateLimitPerMinute),
		viewCache:       cache.NewLRU[[]byte](opts.CacheSize, opts.CacheTTL),
		cacheManager:    cache.NewManager(),
		tracer:          trace.NewMiddleware(extractClientIP),
		maxPayloadBytes: opts.MaxPayloadBytes,
	}

	s.cacheManager.Register(s.viewCache)
	s.cacheManager.StartCleanup(opts.CleanupInterval)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("POST /api/results", s.handleIngest)
	mux.HandleFunc("GET /api/results/{id}", s.handleResult)
	mux.HandleFunc("DELETE /api/results/{id}", s.handleDeleteResult)
	mux.HandleFunc("GET /api/results/{id}/transactions", s.handleTransactions)
	mux.HandleFunc("GET /api/results/{id}/categories", s.handleCategories)
	mux.HandleFunc("GET /api/results/{id}/trend", s.handleTrend)
	mux.HandleFunc("GET /api/results/{id}/stats", s.handleStats)
	mux.HandleFunc("GET /api/results/{id}/network", s.handleNetwork)
	mux.HandleFunc("GET /api/results/{id}/parties", s.handleParties)
	mux.HandleFunc("GET /api/results/{id}/dashboard", s.handleDashboard)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Wrap(s.withSecurityHeaders(mux)),
	}

	return s
}

// withSecurityHeaders adds security headers and rate limits uploads.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			clientIP := extractClientIP(r)
			if !s.rateLimiter.allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := s.tracer.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]int64{
		"total_requests":       m.TotalRequests,
		"avg_response_time_us": m.AverageResponseTime,
	})
}
