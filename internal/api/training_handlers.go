package api

import (
	"net/http"

	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/services"
	"github.com/vytor/deckflash/internal/training"
)

type answerRequest struct {
	Stack          string  `json:"stack" validate:"required"`
	Mode           string  `json:"mode" validate:"required"`
	TargetPosition int     `json:"target_position" validate:"required,min=1"`
	AnswerPosition int     `json:"answer_position" validate:"required,min=1"`
	ElapsedSeconds float64 `json:"elapsed_seconds" validate:"gte=0"`
}

type timerResponse struct {
	Progress float64             `json:"progress"`
	State    training.TimerState `json:"state"`
}

// handleNextRound builds a round; missing query parameters fall back to the
// stored preferences.
func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	choices, err := queryInt(r, "choices", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	round, err := s.TrainingService.NextRound(r.Context(), q.Get("stack"), q.Get("mode"), choices)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, round)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req answerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"stack":  req.Stack,
		"mode":   req.Mode,
		"target": req.TargetPosition,
		"answer": req.AnswerPosition,
	})
	log.Debug("submitting answer")

	result, err := s.TrainingService.SubmitAnswer(r.Context(), services.Answer{
		Stack:          req.Stack,
		Mode:           req.Mode,
		TargetPosition: req.TargetPosition,
		AnswerPosition: req.AnswerPosition,
		ElapsedSeconds: req.ElapsedSeconds,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleTimer(w http.ResponseWriter, r *http.Request) {
	remaining, err := queryFloat(r, "remaining", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	duration, err := queryFloat(r, "duration", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if remaining < 0 {
		handleError(w, r, errors.NewValidationError("remaining", "cannot be negative"))
		return
	}
	writeJSON(w, r, http.StatusOK, timerResponse{
		Progress: training.CalculateTimerProgress(remaining, duration),
		State:    training.TimerColor(remaining),
	})
}
