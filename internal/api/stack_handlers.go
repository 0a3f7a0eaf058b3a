package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/training"
)

type stackSummary struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Size  int    `json:"size"`
}

type stackDetail struct {
	stackSummary
	Cards []deck.PositionedCard `json:"cards"`
}

type shuffleResponse struct {
	Stack   string                `json:"stack"`
	Cards   []deck.PositionedCard `json:"cards"`
	Offsets []float64             `json:"offsets,omitempty"`
}

func summarize(s deck.Stack) stackSummary {
	return stackSummary{Name: s.Name, Label: s.Label, Size: s.Len()}
}

func (s *Server) stackParam(r *http.Request) (deck.Stack, error) {
	name := chi.URLParam(r, "name")
	stack, err := s.Registry.Get(name)
	if err != nil {
		return deck.Stack{}, errors.NewNotFoundError("stack", name)
	}
	return stack, nil
}

func (s *Server) handleListStacks(w http.ResponseWriter, r *http.Request) {
	stacks := s.Registry.Stacks()
	out := make([]stackSummary, 0, len(stacks))
	for _, st := range stacks {
		out = append(out, summarize(st))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleGetStack(w http.ResponseWriter, r *http.Request) {
	stack, err := s.stackParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stackDetail{
		stackSummary: summarize(stack),
		Cards:        stack.PositionedCards(),
	})
}

func (s *Server) handleCardAtPosition(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	stack, err := s.stackParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	raw := chi.URLParam(r, "position")
	position, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("invalid position: %s", raw)
		handleError(w, r, errors.NewBadRequestError("position must be an integer"))
		return
	}
	pc, err := stack.Positioned(position)
	if err != nil {
		handleError(w, r, errors.NewNotFoundError("position", fmt.Sprintf("%d in %s", position, stack.Name)))
		return
	}
	writeJSON(w, r, http.StatusOK, pc)
}

func (s *Server) handlePositionOfCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	stack, err := s.stackParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	raw := chi.URLParam(r, "card")
	card, err := deck.ParseCard(raw)
	if err != nil {
		log.Warn("invalid card code: %s", raw)
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}
	pc, err := stack.Locate(card)
	if err != nil {
		handleError(w, r, errors.NewNotFoundError("card", fmt.Sprintf("%s in %s", card, stack.Name)))
		return
	}
	writeJSON(w, r, http.StatusOK, pc)
}

// handleShuffle serves a shuffled practice deck. When card_width and
// container_width are given, fan offsets for laying the cards out are included.
func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	stack, err := s.stackParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardWidth, err := queryFloat(r, "card_width", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	containerWidth, err := queryFloat(r, "container_width", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.TrainingService.ShufflePractice(r.Context(), stack.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := shuffleResponse{Stack: stack.Name, Cards: cards}
	if cardWidth > 0 && containerWidth > 0 {
		resp.Offsets = training.SpreadOffsets(len(cards), cardWidth, containerWidth)
	}
	writeJSON(w, r, http.StatusOK, resp)
}
