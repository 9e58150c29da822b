package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	ObjectsLoaded *int   `json:"objects_loaded,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	SearchMode string                     `json:"search_mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra handles GET /infra: a component-level status view for
// operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Catalog.Count()
		lastReload := "never"
		if t := d.Catalog.LastReload(); !t.IsZero() {
			lastReload = t.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:            count > 0,
				ObjectsLoaded: &count,
				LastReload:    lastReload,
			},
			"sources": checkSources(d),
			"redis":   checkRedis(d),
			"cache": {
				OK:   true,
				Mode: "in-memory",
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			SearchMode: determineSearchMode(components),
			Components: components,
		})
	}
}

// determineSearchMode summarizes what kind of search the service can
// currently offer.
func determineSearchMode(components map[string]componentStatus) string {
	if catalog, ok := components["catalog"]; ok && !catalog.OK {
		return "critical"
	}
	if srcs, ok := components["sources"]; ok && !srcs.OK {
		return "local-only"
	}
	return "hybrid"
}

func checkSources(d deps.Deps) componentStatus {
	if d.Engine.OnlineAvailable() {
		return componentStatus{
			OK:   true,
			Mode: "online",
		}
	}
	return componentStatus{
		OK:     false,
		Mode:   "offline",
		Impact: "online-search-disabled",
	}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "recent-searches-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "recent-searches-disabled",
			Error:  "timeout",
		}
	}
	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "recent-searches-enabled",
	}
}
