package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/engine"
	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/logger"
)

type searchResponse struct {
	Query   string                    `json:"query"`
	Results []domain.SearchableObject `json:"results"`
	Groups  []domain.ResultGroup      `json:"groups,omitempty"`
	Stats   domain.SearchStats        `json:"stats"`
	Sources map[domain.SourceID]bool  `json:"sources"`
}

// Search handles GET /api/search. The query is required; everything
// else narrows or reshapes the result set.
//
//	q           query string (required, min 2 chars for online stages)
//	mode        local | hybrid | online
//	types       comma-separated object types
//	sources     comma-separated source ids
//	min_mag     lower magnitude bound
//	max_mag     upper magnitude bound
//	online_only skip the local stage
//	sort        relevance | name | type | ra | magnitude | source
//	group       type | source (omit for a flat list)
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter q")
			return
		}

		filters, err := parseFilters(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode := engine.ParseMode(r.URL.Query().Get("mode"))

		d.Logger.Info("search request",
			logger.String("query", query),
			logger.String("mode", string(mode)))

		results, stats := d.Engine.SearchNow(r.Context(), query, filters, mode)

		sorted := domain.SortResults(results, domain.SortOption(r.URL.Query().Get("sort")))

		resp := searchResponse{
			Query:   query,
			Results: sorted,
			Stats:   stats,
			Sources: d.Sources.Availability(),
		}
		switch r.URL.Query().Get("group") {
		case "type":
			resp.Groups = domain.GroupResults(sorted, false)
		case "source":
			resp.Groups = domain.GroupResults(sorted, true)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func parseFilters(r *http.Request) (domain.SearchFilters, error) {
	filters := domain.DefaultFilters()
	q := r.URL.Query()

	if raw := q.Get("types"); raw != "" {
		filters.Types = make(map[domain.ObjectType]bool)
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filters.Types[domain.ObjectType(strings.ToLower(t))] = true
			}
		}
	}
	if raw := q.Get("sources"); raw != "" {
		filters.Sources = make(map[domain.SourceID]bool)
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Sources[domain.SourceID(strings.ToLower(s))] = true
			}
		}
	}
	if raw := q.Get("min_mag"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, errInvalidParam("min_mag")
		}
		filters.MinMagnitude = &v
	}
	if raw := q.Get("max_mag"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, errInvalidParam("max_mag")
		}
		filters.MaxMagnitude = &v
	}
	if raw := q.Get("online_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errInvalidParam("online_only")
		}
		filters.OnlineOnly = v
	}
	if raw := q.Get("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, errInvalidParam("radius")
		}
		filters.SearchRadius = v
	}
	return filters, nil
}

type paramError string

func errInvalidParam(name string) error { return paramError(name) }

func (e paramError) Error() string { return "invalid parameter " + string(e) }

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
