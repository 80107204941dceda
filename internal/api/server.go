// Package api serves the problem and evaluation endpoints used by the coach.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/codecoach/internal/config"
	"github.com/abhisek/codecoach/internal/evaluator"
	"github.com/abhisek/codecoach/internal/problemgen"
	"github.com/abhisek/codecoach/internal/store"
)

// Server represents the HTTP API server.
type Server struct {
	config    config.ServerConfig
	router    *chi.Mux
	generator problemgen.Generator
	evaluator evaluator.Evaluator
	events    store.EventRepo
	logger    *slog.Logger
}

// NewServer creates a new API server. generator and evaluator may be nil when
// no LLM provider is configured; events may be nil to skip recording.
func NewServer(
	cfg config.ServerConfig,
	generator problemgen.Generator,
	eval evaluator.Evaluator,
	events store.EventRepo,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:    cfg,
		generator: generator,
		evaluator: eval,
		events:    events,
		logger:    logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Heartbeat("/health"))

	r.Group(func(r chi.Router) {
		if s.config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.config.RequestTimeout))
		}
		r.Post("/generate-problem", s.handleGenerateProblem)
		r.Post("/evaluate-solution", s.handleEvaluateSolution)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gracefully")
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
