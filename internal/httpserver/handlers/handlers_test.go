package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyseek/skyseek/internal/cache"
	"github.com/skyseek/skyseek/internal/catalog"
	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/engine"
	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/logger"
	"github.com/skyseek/skyseek/internal/sources"
)

func testDeps(t *testing.T) deps.Deps {
	t.Helper()

	idx := catalog.NewIndex()
	idx.Update([]domain.SearchableObject{
		{
			Name:           "M31",
			Type:           domain.TypeDSO,
			RA:             domain.Ptr(10.6847),
			Dec:            domain.Ptr(41.269),
			Magnitude:      domain.Ptr(3.44),
			CommonNames:    "Andromeda Galaxy",
			AlternateNames: []string{"NGC 224"},
			Source:         domain.SourceLocal,
		},
		{
			Name:      "Vega",
			Type:      domain.TypeStar,
			RA:        domain.Ptr(279.2347),
			Dec:       domain.Ptr(38.7837),
			Magnitude: domain.Ptr(0.03),
			Source:    domain.SourceLocal,
		},
		{
			Name:   "Orion",
			Type:   domain.TypeConstellation,
			Source: domain.SourceLocal,
		},
	})

	log := logger.NewNop()
	resultCache := cache.New(time.Minute)
	registry := sources.NewRegistry(log) // no remote sources wired

	eng := engine.New(engine.Deps{
		Log:     log,
		Catalog: idx,
		Sources: registry,
		Cache:   resultCache,
	}, engine.Options{
		DebounceDelay: time.Millisecond,
		OnlineTimeout: time.Second,
	})
	t.Cleanup(eng.Close)

	return deps.Deps{
		Logger:     log,
		StartTime:  time.Now(),
		Version:    "test",
		Engine:     eng,
		Catalog:    idx,
		Cache:      resultCache,
		Sources:    registry,
		RecentsMax: 50,
	}
}

func doGet(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSearchMissingQuery(t *testing.T) {
	rec := doGet(t, Search(testDeps(t)), "/api/search")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing query parameter q", resp.Error)
}

func TestSearchLocalResults(t *testing.T) {
	rec := doGet(t, Search(testDeps(t)), "/api/search?q=m31&mode=local")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "m31", resp.Query)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "M31", resp.Results[0].Name)
	assert.Equal(t, len(resp.Results), resp.Stats.TotalResults)
	assert.Empty(t, resp.Groups)
}

func TestSearchInvalidParam(t *testing.T) {
	d := testDeps(t)
	for _, param := range []string{"min_mag=bright", "max_mag=dim", "online_only=perhaps", "radius=wide"} {
		rec := doGet(t, Search(d), "/api/search?q=m31&"+param)
		assert.Equal(t, http.StatusBadRequest, rec.Code, param)
	}
}

func TestSearchTypeFilter(t *testing.T) {
	rec := doGet(t, Search(testDeps(t)), "/api/search?q=vega&types=star")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	for _, obj := range resp.Results {
		assert.Equal(t, domain.TypeStar, obj.Type)
	}
}

func TestSearchGroupedByType(t *testing.T) {
	rec := doGet(t, Search(testDeps(t)), "/api/search?q=m31&group=type")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Groups)
	total := 0
	for _, g := range resp.Groups {
		total += len(g.Objects)
	}
	assert.Equal(t, len(resp.Results), total)
}

func TestHealthz(t *testing.T) {
	rec := doGet(t, Healthz(testDeps(t)), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var resp healthzResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestReadyz(t *testing.T) {
	d := testDeps(t)

	rec := doGet(t, Readyz(d), "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp readyzResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Ready)
	assert.Equal(t, 3, resp.CatalogObjects)

	d.Catalog.Update(nil)
	rec = doGet(t, Readyz(d), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCacheEndpoints(t *testing.T) {
	d := testDeps(t)
	d.Cache.Put("m31", []domain.SearchableObject{{Name: "M31"}}, cache.OriginOnline)

	rec := doGet(t, CacheStats(d), "/api/cache")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats cacheStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Entries)

	rec = httptest.NewRecorder()
	ClearCache(d)(rec, httptest.NewRequest(http.MethodDelete, "/api/cache", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, d.Cache.Len())
}

func TestRecentsDisabled(t *testing.T) {
	d := testDeps(t) // Recents is nil: Redis disabled

	rec := doGet(t, Recents(d), "/api/recents")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	ClearRecents(d)(rec, httptest.NewRequest(http.MethodDelete, "/api/recents", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSourcesHandler(t *testing.T) {
	rec := doGet(t, Sources(testDeps(t)), "/api/sources")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sourcesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Online)
	assert.Empty(t, resp.Sources)
}
