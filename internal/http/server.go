package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"listinha/internal/compare"
	"listinha/internal/export"
	applog "listinha/internal/log"
	"listinha/internal/services"
)

// Server exposes the list engine as a JSON API.
type Server struct {
	http.Server

	lists       *services.ListService
	share       *export.ShareLinker
	compare     *compare.Service
	compareWait time.Duration
	rateLimiter *rateLimiter
	logger      *applog.Logger

	shutdownOnce sync.Once
}

// Options carries the optional collaborators. Either field may be nil; the
// matching endpoint then reports 503.
type Options struct {
	Compare        *compare.Service
	CompareTimeout time.Duration
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, lists *services.ListService, share *export.ShareLinker, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		lists:       lists,
		share:       share,
		compare:     opts.Compare,
		compareWait: opts.CompareTimeout,
		rateLimiter: newRateLimiter(60),
		logger:      applog.New("http"),
	}
	if s.compareWait <= 0 {
		s.compareWait = 3 * time.Second
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /items", s.handleAddItem)
	mux.HandleFunc("DELETE /items/{id}", s.handleRemoveItem)
	mux.HandleFunc("PUT /budget", s.handleUpdateBudget)
	mux.HandleFunc("POST /finalize", s.handleFinalize)

	mux.HandleFunc("GET /list", s.handleGetList)
	mux.HandleFunc("GET /groups", s.handleGetGroups)
	mux.HandleFunc("GET /summary", s.handleGetSummary)
	mux.HandleFunc("GET /history", s.handleGetHistory)
	mux.HandleFunc("GET /share", s.handleGetShare)
	mux.HandleFunc("GET /export.txt", s.handleExportText)
	mux.HandleFunc("GET /compare", s.handleCompare)

	s.Server = http.Server{
		Addr:    addr,
		Handler: applog.RequestLogger(s.withSecurity(mux)),
	}
	return s
}

// withSecurity adds security headers and applies rate limiting to mutating
// requests.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if !s.rateLimiter.allow(applog.ClientIP(r)) {
				s.logger.Warn("Rate limit exceeded",
					"client_ip", applog.ClientIP(r), "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the HTTP server and the rate-limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
