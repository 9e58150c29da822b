package handlers

import (
	"net/http"
	"strconv"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/logger"
	redisstore "github.com/skyseek/skyseek/internal/store/redis"
)

type recentsResponse struct {
	Recents []redisstore.RecentSearch `json:"recents"`
}

// Recents handles GET /api/recents. Returns 503 when Redis is
// disabled: the feature is off, not broken.
func Recents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Recents == nil {
			writeError(w, http.StatusServiceUnavailable, "recent searches are disabled")
			return
		}

		n := d.RecentsMax
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 {
				n = v
			}
		}

		recents, err := d.Recents.Recent(r.Context(), n)
		if err != nil {
			d.Logger.Error("read recents failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to read recent searches")
			return
		}
		writeJSON(w, http.StatusOK, recentsResponse{Recents: recents})
	}
}

// ClearRecents handles DELETE /api/recents.
func ClearRecents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Recents == nil {
			writeError(w, http.StatusServiceUnavailable, "recent searches are disabled")
			return
		}
		if err := d.Recents.ClearRecents(r.Context()); err != nil {
			d.Logger.Error("clear recents failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to clear recent searches")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
