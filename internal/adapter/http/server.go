package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/wind-analytics-service/internal/dashboard"
	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

// Dashboard is the set of views served under /api/v1.
type Dashboard interface {
	sharedobs.ReadinessChecker
	States() []dashboard.StateSummary
	Tiers() []dashboard.TierSummary
	Overview(ctx context.Context, state string) (dashboard.Overview, error)
	Defaults(state string) (domain.ProjectParameters, error)
	Bounds() domain.ParameterBounds
	Comparison(tiers []domain.PotentialTier) []domain.ComparisonRow
	Markers(ctx context.Context, tiers []domain.PotentialTier) dashboard.MapView
	Sources() []domain.SourceCitation
	Calculate(ctx context.Context, state string, params domain.ProjectParameters) (domain.Assessment, error)
	SubmitFeedback(ctx context.Context, in domain.FeedbackInput) (domain.Feedback, error)
}

// Server exposes the dashboard API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dashboard  Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api/v1 routes, /healthz, /readyz,
// and /metrics.
func NewServer(addr string, d Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dashboard: d,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(d))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/states", s.handleStates)
	mux.HandleFunc("GET /api/v1/states/{name}", s.handleOverview)
	mux.HandleFunc("GET /api/v1/states/{name}/defaults", s.handleDefaults)
	mux.HandleFunc("GET /api/v1/tiers", s.handleTiers)
	mux.HandleFunc("GET /api/v1/parameters", s.handleParameters)
	mux.HandleFunc("GET /api/v1/comparison", s.handleComparison)
	mux.HandleFunc("GET /api/v1/map", s.handleMap)
	mux.HandleFunc("GET /api/v1/sources", s.handleSources)
	mux.HandleFunc("POST /api/v1/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/v1/feedback", s.handleFeedback)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
