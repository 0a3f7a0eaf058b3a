package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed(r))
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stacks", s.handleListStacks)
		r.Get("/stacks/{name}", s.handleGetStack)
		r.Get("/stacks/{name}/positions/{position}", s.handleCardAtPosition)
		r.Get("/stacks/{name}/cards/{card}", s.handlePositionOfCard)
		r.Get("/stacks/{name}/shuffle", s.handleShuffle)

		r.Get("/rounds", s.handleNextRound)
		r.Post("/answers", s.handleSubmitAnswer)
		r.Get("/timer", s.handleTimer)

		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handleUpdatePreferences)

		r.Get("/stats", s.handleStats)
		r.Get("/stats/history", s.handleHistory)
		r.Delete("/stats", s.handleResetStats)

		r.Post("/events", s.handleRecordEvents)
		r.Get("/events", s.handleListEvents)
	})
	return r
}
