package handlers

import (
	"net/http"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/httpserver/deps"
)

type sourcesResponse struct {
	Sources map[domain.SourceID]bool `json:"sources"`
	Online  bool                     `json:"online"`
}

// Sources handles GET /api/sources: current availability flags.
func Sources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sourcesResponse{
			Sources: d.Sources.Availability(),
			Online:  d.Engine.OnlineAvailable(),
		})
	}
}

// ProbeSources handles POST /api/sources/probe: re-check every source
// now instead of waiting for the background prober.
func ProbeSources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Engine.RefreshAvailability(r.Context())
		writeJSON(w, http.StatusOK, sourcesResponse{
			Sources: d.Sources.Availability(),
			Online:  d.Engine.OnlineAvailable(),
		})
	}
}
