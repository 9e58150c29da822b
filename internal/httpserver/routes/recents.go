package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/httpserver/handlers"
)

func init() { Register(registerRecents) }

func registerRecents(r chi.Router, d deps.Deps) {
	r.Get("/api/recents", handlers.Recents(d))
	r.Delete("/api/recents", handlers.ClearRecents(d))
}
