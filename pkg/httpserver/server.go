// Package httpserver provides a reusable HTTP server builder: chi router
// with the standard middleware stack, health endpoint, optional CORS,
// request logging and prometheus metrics, and graceful shutdown.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Option func(*Options)

type Options struct {
	port           int
	logger         *zap.Logger
	corsOrigins    []string
	enableLogging  bool
	enableMetrics  bool
	requestTimeout time.Duration
}

func WithPort(port int) Option {
	return func(o *Options) {
		o.port = port
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithCORSOrigins enables CORS for the given origins. An empty list leaves
// CORS off entirely.
func WithCORSOrigins(origins ...string) Option {
	return func(o *Options) {
		o.corsOrigins = append(o.corsOrigins, origins...)
	}
}

func WithLogging(enabled bool) Option {
	return func(o *Options) {
		o.enableLogging = enabled
	}
}

// WithMetrics exposes /metrics and records per-request durations.
func WithMetrics(enabled bool) Option {
	return func(o *Options) {
		o.enableMetrics = enabled
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.requestTimeout = d
	}
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	lis        net.Listener
	logger     *zap.Logger
}

// New creates a new HTTP server using the builder options.
func New(opts ...Option) (*Server, error) {
	options := &Options{
		port:           8080,
		logger:         zap.NewNop(),
		requestTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.port < 1 || options.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", options.port)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", options.port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", options.port, err)
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(options.requestTimeout))

	if len(options.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   options.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if options.enableLogging {
		r.Use(LoggingMiddleware(logger))
	}
	if options.enableMetrics {
		r.Use(MetricsMiddleware())
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return &Server{
		httpServer: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: r,
		lis:    lis,
		logger: logger.Named("http-server"),
	}, nil
}

// RegisterRoutes allows the main application to mount its specific routes.
func (s *Server) RegisterRoutes(registerFunc func(r chi.Router)) {
	registerFunc(s.router)
}

// Start runs the server in a goroutine and returns immediately.
func (s *Server) Start() {
	s.logger.Info("http server starting", zap.String("addr", s.lis.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(s.lis); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server failed", zap.Error(err))
		}
	}()

	s.logger.Info("http server started", zap.String("addr", s.lis.Addr().String()))
}

// Shutdown gracefully shuts down the server, honoring the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("forced shutdown due to timeout", zap.Error(err))
		_ = s.httpServer.Close()
		return err
	}

	s.logger.Info("http server stopped")
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
