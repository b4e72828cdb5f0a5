// Package service contains the business logic for the itinerary planner.
// Services validate inputs, enforce business rules, and orchestrate repo,
// supply, and synthesizer calls. No SQL or HTTP lives here; services depend
// on interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/internal/supply"
	"github.com/pkordes/itinerary-planner/internal/synth"
)

// previewLimit caps each category in a supply preview.
const previewLimit = 2

// SupplyGatherer fetches the supply snapshot for a query. It never fails;
// providers that error contribute empty lists.
type SupplyGatherer interface {
	Gather(ctx context.Context, q supply.Query) domain.SupplySnapshot
}

// PreviewInput is the raw body of a supply preview request.
type PreviewInput struct {
	Destination string
	StartDate   string
	EndDate     string
	Budget      string
}

// ItineraryService implements generation, lookup, and supply previews.
type ItineraryService struct {
	repo   repo.ItineraryRepo
	supply SupplyGatherer
	synth  synth.Synthesizer
	origin string
	log    *slog.Logger
}

// NewItineraryService constructs an ItineraryService. origin is the departure
// airport used for flight searches.
func NewItineraryService(r repo.ItineraryRepo, g SupplyGatherer, s synth.Synthesizer, origin string, log *slog.Logger) *ItineraryService {
	if log == nil {
		log = slog.Default()
	}
	return &ItineraryService{repo: r, supply: g, synth: s, origin: origin, log: log}
}

// Generate validates the request, gathers supply data, synthesizes a day plan,
// and persists the resulting itinerary.
// Returns domain.ErrValidation for bad input and domain.ErrSynthesis when the
// synthesizer fails or returns days that do not cover the trip.
func (s *ItineraryService) Generate(ctx context.Context, in domain.TripRequestInput) (domain.Itinerary, error) {
	trip, err := ValidateTripRequest(in)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	snap := s.supply.Gather(ctx, s.query(trip))

	days, err := s.synth.Synthesize(ctx, trip, snap)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", asSynthesisError(err))
	}
	if err := checkDayNumbers(days, trip.DaySpan(), true); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Itinerary{
		Title:       trip.Title(),
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Interests:   trip.Interests,
		Budget:      trip.Budget,
		Pace:        trip.Pace,
		Days:        days,
		FlightData:  snap.Flights,
		HotelData:   snap.Hotels,
		WeatherData: snap.Weather,
		TotalCost:   domain.FormatCurrency(domain.SumDayCosts(days)),
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	s.log.InfoContext(ctx, "itinerary generated",
		"itinerary_id", created.ID,
		"destination", created.Destination,
		"days", len(created.Days),
		"total_cost", created.TotalCost,
	)
	return created, nil
}

// Preview gathers supply data for a prospective trip and returns at most two
// entries per category.
func (s *ItineraryService) Preview(ctx context.Context, in PreviewInput) (domain.SupplySnapshot, error) {
	dest := strings.TrimSpace(in.Destination)
	if dest == "" {
		return domain.SupplySnapshot{}, fmt.Errorf("service.ItineraryService.Preview: %w",
			domain.NewValidationError(domain.KindMissingField, "destination", "destination is required"))
	}
	start, end, err := validateDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return domain.SupplySnapshot{}, fmt.Errorf("service.ItineraryService.Preview: %w", err)
	}
	budget, err := parseBudget(in.Budget)
	if err != nil {
		return domain.SupplySnapshot{}, fmt.Errorf("service.ItineraryService.Preview: %w", err)
	}

	snap := s.supply.Gather(ctx, supply.Query{
		Origin:      s.origin,
		Destination: dest,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
	})
	return snap.Truncate(previewLimit), nil
}

// GetByID returns a single itinerary.
// Returns domain.ErrNotFound if it does not exist.
func (s *ItineraryService) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return it, nil
}

// ListPaged returns one page of itineraries, newest first, and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	its, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if its == nil {
		its = []domain.Itinerary{}
	}
	return its, total, nil
}

func (s *ItineraryService) query(trip domain.TripRequest) supply.Query {
	return supply.Query{
		Origin:      s.origin,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Budget:      trip.Budget,
	}
}
