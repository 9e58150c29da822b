package handlers

import (
	"net/http"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready          bool `json:"ready"`
	CatalogObjects int  `json:"catalog_objects"`
}

// Readyz reports ready once the bundled catalog is loaded. Remote
// sources being down never blocks readiness: local search still works.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Catalog.Count()
		status := http.StatusOK
		if count == 0 {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:          count > 0,
			CatalogObjects: count,
		})
	}
}
