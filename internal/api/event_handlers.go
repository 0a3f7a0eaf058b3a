package api

import (
	"net/http"
	"time"

	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/services"
)

type eventRequest struct {
	Name       string         `json:"name" validate:"required,max=64"`
	Properties map[string]any `json:"properties"`
}

type eventsRequest struct {
	Events []eventRequest `json:"events" validate:"required,min=1,max=100,dive"`
}

type eventsResponse struct {
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

// handleRecordEvents queues client events for storage. It answers 202 even
// when the queue is full; dropped reports how many were discarded.
func (s *Server) handleRecordEvents(w http.ResponseWriter, r *http.Request) {
	var req eventsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	inputs := make([]services.EventInput, 0, len(req.Events))
	for _, e := range req.Events {
		inputs = append(inputs, services.EventInput{Name: e.Name, Properties: e.Properties})
	}
	accepted, err := s.EventService.Record(r.Context(), inputs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, eventsResponse{
		Accepted: accepted,
		Dropped:  len(inputs) - accepted,
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	filter := models.EventFilter{Name: r.URL.Query().Get("name"), Limit: limit}
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("since must be an RFC 3339 timestamp"))
			return
		}
		filter.Since = &since
	}

	events, err := s.EventService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, events)
}
