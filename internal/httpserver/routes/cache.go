package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/httpserver/handlers"
)

func init() { Register(registerCache) }

func registerCache(r chi.Router, d deps.Deps) {
	r.Get("/api/cache", handlers.CacheStats(d))
	r.Delete("/api/cache", handlers.ClearCache(d))
	r.Post("/api/cache/prune", handlers.PruneCache(d))
}
