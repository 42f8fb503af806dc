package api

import (
	_ "embed"
	"net/http"
)

//go:embed ui/index.html
var dashboardHTML []byte

// dashboard serves the static dashboard. It is plain HTML+JS consuming the
// /range endpoint, so there is no front-end build step.
func (s *Server) dashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(dashboardHTML); err != nil {
		s.logger.Error().Err(err).Msg("failed to write dashboard")
	}
}
