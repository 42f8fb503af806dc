// Package api exposes the estimation engine over HTTP: summary, daily and
// range queries over the usage dataset, a single-request estimate endpoint,
// a static dashboard, and Prometheus metrics. Configuration and analytics
// are re-read on every request, so edits to either show up without a
// restart; the engine itself holds no state between requests.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/LaurealDente/env5001/internal/analytics"
	"github.com/LaurealDente/env5001/internal/config"
	"github.com/LaurealDente/env5001/internal/estimate"
)

// Source supplies the configuration and usage dataset for one request.
// Tests inject fixtures here; production uses FileSource.
type Source struct {
	Config func() (*config.Config, error)
	Days   func(cfg *config.Config) ([]estimate.DayCounts, error)
}

// FileSource reads the configuration from configPath and the analytics
// dataset from the path the configuration names.
func FileSource(configPath string, logger zerolog.Logger) Source {
	return Source{
		Config: func() (*config.Config, error) {
			return config.Load(configPath, logger)
		},
		Days: func(cfg *config.Config) ([]estimate.DayCounts, error) {
			return analytics.Load(cfg.Paths.AnalyticsYAML, logger)
		},
	}
}

// Server is the HTTP API over the estimation engine.
type Server struct {
	source Source
	logger zerolog.Logger
}

// New builds a Server over the given source.
func New(source Source, logger zerolog.Logger) *Server {
	return &Server{source: source, logger: logger}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(requestID), accessLog(s.logger))

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/summary", s.summary).Methods(http.MethodGet)
	r.HandleFunc("/daily/{date}", s.daily).Methods(http.MethodGet)
	r.HandleFunc("/range", s.rangeQuery).Methods(http.MethodGet)
	r.HandleFunc("/estimate", s.estimateRequest).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/ui", s.dashboard).Methods(http.MethodGet)
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	}).Methods(http.MethodGet)

	return r
}

// load reads configuration and analytics for one request.
func (s *Server) load() (*config.Config, []estimate.DayCounts, error) {
	cfg, err := s.source.Config()
	if err != nil {
		return nil, nil, err
	}
	days, err := s.source.Days(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, days, nil
}

// compute runs the daily aggregation under the request's region, tier and
// model selection.
func (s *Server) compute(cfg *config.Config, days []estimate.DayCounts, region, tier, model string) ([]estimate.DayResult, error) {
	params, err := cfg.EngineParams(region, tier)
	if err != nil {
		return nil, err
	}
	m, err := estimate.ModelFor(estimate.ModelName(model))
	if err != nil {
		return nil, err
	}
	return estimate.ComputeDaily(days, params, m)
}
