package handlers

import (
	"net/http"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
)

type cacheStatsResponse struct {
	Entries int `json:"entries"`
	Pruned  int `json:"pruned,omitempty"`
}

// CacheStats handles GET /api/cache.
func CacheStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cacheStatsResponse{Entries: d.Cache.Len()})
	}
}

// ClearCache handles DELETE /api/cache.
func ClearCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Cache.Clear()
		d.Logger.Info("result cache cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// PruneCache handles POST /api/cache/prune: drop expired entries now.
func PruneCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pruned := d.Cache.PruneExpired()
		writeJSON(w, http.StatusOK, cacheStatsResponse{
			Entries: d.Cache.Len(),
			Pruned:  pruned,
		})
	}
}
