package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// regenerateRequestBody is the body of POST /api/itinerary/regenerate.
type regenerateRequestBody struct {
	ItineraryID    string           `json:"itineraryId"`
	Section        string           `json:"section"`
	DayNumber      *int             `json:"dayNumber,omitempty"`
	TimeBlockIndex *int             `json:"timeBlockIndex,omitempty"`
	NewPreferences *preferencesBody `json:"newPreferences,omitempty"`
}

type preferencesBody struct {
	Budget *string `json:"budget,omitempty"`
	Style  string  `json:"style,omitempty"`
}

// RegenerateItinerary handles POST /api/itinerary/regenerate.
//
//	404  the itinerary does not exist, or itineraryId is not a UUID
//	422  malformed request, or a day/time-block index outside the itinerary
//	500  the synthesizer failed or the store could not be updated
func (s *Server) RegenerateItinerary(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to regenerate itinerary section"

	var body regenerateRequestBody
	if err := decodeJSON(r, &body); err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, failMsg, err)
			return
		}
		writeError(w, http.StatusUnprocessableEntity, failMsg, err)
		return
	}

	req, err := requestToRegenerate(body)
	if err != nil {
		// Only an unresolvable id fails here.
		notFound(w)
		return
	}

	it, err := s.regen.Regenerate(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, itineraryToResponse(it))
	case errors.Is(err, domain.ErrNotFound):
		notFound(w)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrIndex):
		writeError(w, http.StatusUnprocessableEntity, failMsg, err)
	default:
		s.log.ErrorContext(r.Context(), "regenerate itinerary",
			"itinerary_id", req.ItineraryID, "section", req.Section, "error", err)
		writeError(w, http.StatusInternalServerError, failMsg, err)
	}
}

// requestToRegenerate converts the wire body to a domain request.
// An empty itineraryId maps to uuid.Nil and is rejected by the service; a
// non-UUID id cannot name an itinerary and yields domain.ErrNotFound, as on
// GET /api/itinerary/{id}.
func requestToRegenerate(b regenerateRequestBody) (domain.RegenerateRequest, error) {
	req := domain.RegenerateRequest{
		Section:        domain.Section(b.Section),
		DayNumber:      b.DayNumber,
		TimeBlockIndex: b.TimeBlockIndex,
	}
	if b.ItineraryID != "" {
		id, err := uuid.Parse(b.ItineraryID)
		if err != nil {
			return req, fmt.Errorf("handler.requestToRegenerate: itineraryId %q: %w", b.ItineraryID, domain.ErrNotFound)
		}
		req.ItineraryID = id
	}
	if p := b.NewPreferences; p != nil {
		prefs := &domain.Preferences{Style: p.Style}
		if p.Budget != nil {
			budget := domain.Budget(*p.Budget)
			prefs.Budget = &budget
		}
		req.NewPreferences = prefs
	}
	return req, nil
}
