package api

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/LaurealDente/env5001/internal/estimate"
)

// configEcho is the effective-configuration block of the summary response.
type configEcho struct {
	TopicSizeChars         int     `json:"topic_size_chars"`
	PromptSizeChars        int     `json:"prompt_size_chars"`
	ChatbotAvgTopics       int     `json:"chatbot_avg_topics"`
	ChatbotAvgPrompts      int     `json:"chatbot_avg_prompts"`
	OutputTokensAvg        int     `json:"output_tokens_avg"`
	CarbonIntensityGPerKWh float64 `json:"carbon_intensity_g_per_kwh"`
	AnalyticsYAML          string  `json:"analytics_yaml"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		s.logger.Error().Err(err).Msg("failed to write health response")
	}
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	cfg, days, err := s.load()
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	q := r.URL.Query()
	results, err := s.compute(cfg, days, q.Get("region"), q.Get("tier"), q.Get("model"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	respond(w, s.logger, map[string]any{
		"config": configEcho{
			TopicSizeChars:         cfg.Simulation.TopicSizeChars,
			PromptSizeChars:        cfg.Simulation.PromptSizeChars,
			ChatbotAvgTopics:       cfg.Simulation.ChatbotAvgTopics,
			ChatbotAvgPrompts:      cfg.Simulation.ChatbotAvgPrompts,
			OutputTokensAvg:        cfg.Simulation.OutputTokensAvg,
			CarbonIntensityGPerKWh: cfg.Carbon.IntensityGramsPerKWh,
			AnalyticsYAML:          cfg.Paths.AnalyticsYAML,
		},
		"summary": estimate.Summarize(results),
	})
}

func (s *Server) daily(w http.ResponseWriter, r *http.Request) {
	date, err := estimate.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	cfg, days, err := s.load()
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	q := r.URL.Query()
	results, err := s.compute(cfg, days, q.Get("region"), q.Get("tier"), q.Get("model"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	for _, day := range results {
		if day.Date.Equal(date.Time) {
			respond(w, s.logger, day)
			return
		}
	}

	respondError(w, s.logger, fmt.Errorf("%w: no data for date %s", errNotFound, date))
}

func (s *Server) rangeQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var start, end *estimate.Date
	if raw := q.Get("start"); raw != "" {
		d, err := estimate.ParseDate(raw)
		if err != nil {
			respondError(w, s.logger, err)
			return
		}
		start = &d
	}
	if raw := q.Get("end"); raw != "" {
		d, err := estimate.ParseDate(raw)
		if err != nil {
			respondError(w, s.logger, err)
			return
		}
		end = &d
	}

	cfg, days, err := s.load()
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	results, err := s.compute(cfg, days, q.Get("region"), q.Get("tier"), q.Get("model"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	filtered := estimate.FilterRange(results, start, end)
	respond(w, s.logger, map[string]any{
		"range":   map[string]string{"start": q.Get("start"), "end": q.Get("end")},
		"summary": estimate.Summarize(filtered),
		"days":    filtered,
	})
}

// estimateBody is the single-request estimate payload.
type estimateBody struct {
	Profile      string  `json:"profile"`
	Topics       []int   `json:"topics"`
	Prompts      []int   `json:"prompts"`
	OutputTokens float64 `json:"output_tokens"`
	Region       string  `json:"region"`
	Tier         string  `json:"tier"`
}

func (s *Server) estimateRequest(w http.ResponseWriter, r *http.Request) {
	var body estimateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, s.logger, fmt.Errorf("%w: decoding request body: %v", estimate.ErrInvalidInput, err))
		return
	}

	cfg, err := s.source.Config()
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	params, err := cfg.EngineParams(body.Region, body.Tier)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}

	call, err := estimate.EstimateRequest(body.Profile, params, body.Topics, body.Prompts, body.OutputTokens)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respond(w, s.logger, call)
}
