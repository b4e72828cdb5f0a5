// Package handler implements the HTTP handlers for the itinerary planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, itinerary.go, regenerate.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/service"
)

// ItineraryServicer defines the generation and lookup operations the
// itinerary handlers depend on. Defining the interface here, in the consumer
// package, lets handler tests inject a mock without a store or synthesizer.
type ItineraryServicer interface {
	Generate(ctx context.Context, in domain.TripRequestInput) (domain.Itinerary, error)
	Preview(ctx context.Context, in service.PreviewInput) (domain.SupplySnapshot, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
}

// RegenerationServicer defines the partial-regeneration operation.
type RegenerationServicer interface {
	Regenerate(ctx context.Context, req domain.RegenerateRequest) (domain.Itinerary, error)
}

// ExportServicer defines the export operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, id uuid.UUID) (domain.ItineraryExport, error)
	Rows(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies of every API handler.
// Wire it in main.go via Routes and mount the result on the root router.
type Server struct {
	itineraries ItineraryServicer
	regen       RegenerationServicer
	export      ExportServicer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(itineraries ItineraryServicer, regen RegenerationServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{itineraries: itineraries, regen: regen, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns the API router. limit, when non-nil, wraps only the
// endpoints that call the synthesizer (generate and regenerate).
func (s *Server) Routes(limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if limit != nil {
				r.Use(limit)
			}
			r.Post("/itinerary/generate", s.GenerateItinerary)
			r.Post("/itinerary/regenerate", s.RegenerateItinerary)
		})

		r.Post("/travel-data/preview", s.PreviewTravelData)
		r.Get("/itinerary/{id}", s.GetItinerary)
		r.Get("/itinerary/{id}/export", s.ExportItinerary)
		r.Get("/itineraries", s.ListItineraries)
	})

	return r
}
