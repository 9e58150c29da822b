package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/httpserver/handlers"
)

func init() { Register(registerSources) }

func registerSources(r chi.Router, d deps.Deps) {
	r.Get("/api/sources", handlers.Sources(d))
	r.Post("/api/sources/probe", handlers.ProbeSources(d))
}
