// Package http exposes the JSON API over the finance service.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"spendsmart/internal/cache"
	"spendsmart/internal/config"
	"spendsmart/internal/middleware/ratelimit"
	"spendsmart/internal/middleware/security"
	"spendsmart/internal/middleware/trace"
	"spendsmart/internal/services"
)

const (
	dashboardCacheKey = "dashboard"
	dashboardCacheMax = 8
)

// Server owns the router, the finance service and the derived-view cache.
// The dashboard is recomputed on every mutation-free request at most once
// per TTL; any mutation purges the cache so reads never serve a stale
// snapshot after a write.
type Server struct {
	http.Server

	service *services.FinanceService
	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	dashCache *cache.LRUCache[dashboardView]
}

func NewServer(cfg *config.Config, service *services.FinanceService) *Server {
	s := &Server{
		service:   service,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:    trace.NewMiddleware(extractClientIP),
		dashCache: cache.NewLRUCache[dashboardView](dashboardCacheMax, cfg.DashboardCacheTTL),
	}

	s.Addr = ":" + cfg.Port
	s.Handler = s.routes()
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 15 * time.Second
	s.IdleTimeout = 60 * time.Second

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(s.tracer.Handler)
	r.Use(s.withRateLimit)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/dashboard/categories", s.handleCategoryBreakdown)

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.handleListExpenses)
			r.Post("/", s.handleCreateExpense)
			r.Put("/{id}", s.handleUpdateExpense)
			r.Delete("/{id}", s.handleDeleteExpense)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", s.handleListGoals)
			r.Post("/", s.handleCreateGoal)
			r.Put("/{id}", s.handleUpdateGoal)
			r.Delete("/{id}", s.handleDeleteGoal)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", s.handleListSubscriptions)
			r.Get("/summary", s.handleSubscriptionSummary)
			r.Post("/", s.handleCreateSubscription)
			r.Put("/{id}", s.handleUpdateSubscription)
			r.Delete("/{id}", s.handleDeleteSubscription)
		})

		r.Post("/reset", s.handleReset)
	})

	return r
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(extractClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// invalidateDerived drops every cached derived view. Called after each
// successful mutation.
func (s *Server) invalidateDerived() {
	s.dashCache.Purge()
}

// Shutdown stops the listener and the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.Server.Shutdown(ctx)
}
