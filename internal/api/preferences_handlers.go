package api

import (
	"net/http"

	"github.com/vytor/deckflash/internal/models"
)

type preferencesRequest struct {
	Stack        string `json:"stack" validate:"required"`
	Mode         string `json:"mode" validate:"required"`
	ChoicesCount int    `json:"choices_count" validate:"min=2,max=10"`
	TimerSeconds int    `json:"timer_seconds" validate:"min=0,max=120"`
	ShowGlyphs   *bool  `json:"show_glyphs"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.PreferencesService.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}

// handleUpdatePreferences replaces the stored preferences. An omitted
// show_glyphs keeps glyphs on.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	showGlyphs := true
	if req.ShowGlyphs != nil {
		showGlyphs = *req.ShowGlyphs
	}
	prefs, err := s.PreferencesService.Update(r.Context(), models.Preferences{
		Stack:        req.Stack,
		Mode:         req.Mode,
		ChoicesCount: req.ChoicesCount,
		TimerSeconds: req.TimerSeconds,
		ShowGlyphs:   showGlyphs,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}
