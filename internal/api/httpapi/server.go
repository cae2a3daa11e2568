// Package httpapi exposes job search over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"jobsearch/internal/search"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// RateLimiter counts requests per client in fixed windows.
type RateLimiter interface {
	IncrementRateLimit(ctx context.Context, scope, client string) (int64, error)
}

// HealthCheck probes one dependency for /health.
type HealthCheck func(ctx context.Context) error

type Options struct {
	Limiter            RateLimiter
	Checks             map[string]HealthCheck
	RateLimitPerMinute int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
}

type Server struct {
	router  *mux.Router
	service *search.Service
	opts    Options
	logger  *zap.Logger
}

func New(service *search.Service, opts Options, logger *zap.Logger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		service: service,
		opts:    opts,
		logger:  logger.Named("http"),
	}

	s.router.Use(Recovery(s.logger), Logger(s.logger))

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	if opts.Limiter != nil && opts.RateLimitPerMinute > 0 {
		api.Use(RateLimit(opts.Limiter, opts.RateLimitPerMinute, s.logger))
	}
	api.HandleFunc("/jobs/search", s.handleSearch).Methods(http.MethodGet)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
