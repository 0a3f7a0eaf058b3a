package api

import (
	"net/http"

	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/progress"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StatsService.Summary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if summary == nil {
		summary = []progress.Summary{}
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	history, err := s.StatsService.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

// handleResetStats clears stats. Optional mode and stack query parameters
// narrow the reset.
func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()
	mode, stack := q.Get("mode"), q.Get("stack")

	if err := s.StatsService.Reset(r.Context(), mode, stack); err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("stats reset: mode=%q, stack=%q", mode, stack)
	w.WriteHeader(http.StatusNoContent)
}
