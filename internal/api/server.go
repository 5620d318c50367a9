// Package api provides the HTTP API and WebSocket server for the bakery service.
//
// The server follows the same lifecycle pattern as the infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nerrad567/bakery-core/internal/bakery"
	"github.com/nerrad567/bakery-core/internal/infrastructure/config"
	"github.com/nerrad567/bakery-core/internal/infrastructure/logging"
	"github.com/nerrad567/bakery-core/internal/infrastructure/metrics"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// HealthChecker is implemented by components the health endpoint probes.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EventPublisher delivers domain events to an external bus (MQTT).
type EventPublisher interface {
	PublishEvent(eventType string, payload any) error
}

// PriceRecorder writes baked good prices and event counts to a time-series store (InfluxDB).
type PriceRecorder interface {
	WriteBakedGoodPrice(bakeryID, bakedGoodID int64, name string, price float64, at time.Time)
	WriteEvent(eventType string)
}

// Deps holds the dependencies required by the API server.
// Leave optional interface fields unset rather than assigning a typed nil.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Security config.SecurityConfig
	Metrics  config.MetricsConfig
	Logger   *logging.Logger
	Repo     bakery.Repository

	DB        HealthChecker       // Optional: probed by /health
	Publisher EventPublisher      // Optional: MQTT event fan-out
	Prices    PriceRecorder       // Optional: InfluxDB telemetry
	Collector *metrics.Metrics    // Optional: Prometheus collectors
	Gatherer  prometheus.Gatherer // Optional: defaults to prometheus.DefaultGatherer

	Version string
}

// Server is the HTTP API server for the bakery service.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg        config.APIConfig
	wsCfg      config.WebSocketConfig
	secCfg     config.SecurityConfig
	metricsCfg config.MetricsConfig
	logger     *logging.Logger
	repo       bakery.Repository
	db         HealthChecker
	publisher  EventPublisher
	prices     PriceRecorder
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
	version    string

	server  *http.Server
	hub     *Hub
	limiter *RateLimiter
	cancel  context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Repo == nil {
		return nil, fmt.Errorf("bakery repository is required")
	}

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Server{
		cfg:        deps.Config,
		wsCfg:      deps.WS,
		secCfg:     deps.Security,
		metricsCfg: deps.Metrics,
		logger:     deps.Logger,
		repo:       deps.Repo,
		db:         deps.DB,
		publisher:  deps.Publisher,
		prices:     deps.Prices,
		metrics:    deps.Collector,
		gatherer:   gatherer,
		version:    deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub and the rate limiter cleanup, builds the router,
// and launches the HTTP listener in a background goroutine. The server can be
// stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop background goroutines
	// independently of the parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = NewHub(s.wsCfg, s.logger)
	s.hub.SetMetrics(s.metrics)
	go s.hub.Run(srvCtx)

	if s.secCfg.RateLimit.Enabled {
		s.limiter = NewRateLimiter(srvCtx, s.secCfg.RateLimit)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	// Stops the hub and rate limiter cleanup
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// Hub returns the WebSocket hub. Nil until Start() is called.
func (s *Server) Hub() *Hub {
	return s.hub
}
