package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/service"
)

// tripRequestBody is the body of POST /api/itinerary/generate.
// Dates stay strings here so the service can report format errors by field.
type tripRequestBody struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Interests   []string `json:"interests"`
	Budget      string   `json:"budget"`
	Pace        string   `json:"pace"`
}

// previewRequestBody is the body of POST /api/travel-data/preview.
type previewRequestBody struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Budget      string `json:"budget"`
}

// itineraryResponse is the wire form of domain.Itinerary. Trip dates are
// calendar dates, and every list is present even when empty.
type itineraryResponse struct {
	ID          uuid.UUID                `json:"id"`
	Title       string                   `json:"title"`
	Destination string                   `json:"destination"`
	StartDate   openapi_types.Date       `json:"startDate"`
	EndDate     openapi_types.Date       `json:"endDate"`
	Interests   []string                 `json:"interests"`
	Budget      domain.Budget            `json:"budget"`
	Pace        domain.Pace              `json:"pace"`
	Days        []domain.ItineraryDay    `json:"days"`
	FlightData  []domain.FlightOption    `json:"flightData"`
	HotelData   []domain.HotelOption     `json:"hotelData"`
	WeatherData []domain.WeatherForecast `json:"weatherData"`
	TotalCost   string                   `json:"totalCost,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type itineraryListResponse struct {
	Data       []itineraryResponse `json:"data"`
	Pagination pagination          `json:"pagination"`
}

// GenerateItinerary handles POST /api/itinerary/generate.
// Every failure, validation included, is reported as 500 with {message, error}.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to generate itinerary"

	var body tripRequestBody
	if err := decodeJSON(r, &body); err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, failMsg, err)
			return
		}
		writeError(w, http.StatusInternalServerError, failMsg, err)
		return
	}

	it, err := s.itineraries.Generate(r.Context(), domain.TripRequestInput{
		Destination: body.Destination,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Interests:   body.Interests,
		Budget:      body.Budget,
		Pace:        body.Pace,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "generate itinerary", "error", err)
		writeError(w, http.StatusInternalServerError, failMsg, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// PreviewTravelData handles POST /api/travel-data/preview.
func (s *Server) PreviewTravelData(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to fetch travel data"

	var body previewRequestBody
	if err := decodeJSON(r, &body); err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, failMsg, err)
			return
		}
		writeError(w, http.StatusInternalServerError, failMsg, err)
		return
	}

	snap, err := s.itineraries.Preview(r.Context(), service.PreviewInput{
		Destination: body.Destination,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Budget:      body.Budget,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "preview travel data", "error", err)
		writeError(w, http.StatusInternalServerError, failMsg, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// GetItinerary handles GET /api/itinerary/{id}.
// An id that is not a UUID cannot name an itinerary and is reported as 404.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w)
		return
	}

	it, err := s.itineraries.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w)
			return
		}
		s.log.ErrorContext(r.Context(), "get itinerary", "itinerary_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch itinerary", err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// ListItineraries handles GET /api/itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := domain.NewPaginationParams(queryInt(q.Get("page")), queryInt(q.Get("limit")))

	its, total, err := s.itineraries.ListPaged(r.Context(), params)
	if err != nil {
		s.log.ErrorContext(r.Context(), "list itineraries", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch itineraries", err)
		return
	}

	data := make([]itineraryResponse, len(its))
	for i, it := range its {
		data[i] = itineraryToResponse(it)
	}
	writeJSON(w, http.StatusOK, itineraryListResponse{
		Data: data,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// itineraryToResponse maps a domain.Itinerary to its wire form.
func itineraryToResponse(it domain.Itinerary) itineraryResponse {
	return itineraryResponse{
		ID:          it.ID,
		Title:       it.Title,
		Destination: it.Destination,
		StartDate:   openapi_types.Date{Time: it.StartDate},
		EndDate:     openapi_types.Date{Time: it.EndDate},
		Interests:   orEmpty(it.Interests),
		Budget:      it.Budget,
		Pace:        it.Pace,
		Days:        daysOrEmpty(it.Days),
		FlightData:  orEmpty(it.FlightData),
		HotelData:   orEmpty(it.HotelData),
		WeatherData: orEmpty(it.WeatherData),
		TotalCost:   it.TotalCost,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// daysOrEmpty also gives each day a non-nil block list.
func daysOrEmpty(days []domain.ItineraryDay) []domain.ItineraryDay {
	out := make([]domain.ItineraryDay, len(days))
	for i, d := range days {
		d.TimeBlocks = orEmpty(d.TimeBlocks)
		out[i] = d
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// queryInt parses an optional integer query parameter. Missing or malformed
// values yield nil so the pagination defaults apply.
func queryInt(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
