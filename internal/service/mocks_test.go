package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/internal/service"
	"github.com/pkordes/itinerary-planner/internal/supply"
	"github.com/pkordes/itinerary-planner/internal/synth"
)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
// Each method is a function field — set only the ones your test needs.
type mockItineraryRepo struct {
	create    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	update    func(ctx context.Context, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error)
	list      func(ctx context.Context) ([]domain.Itinerary, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	return m.update(ctx, id, patch)
}
func (m *mockItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	return m.list(ctx)
}
func (m *mockItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockItineraryRepo must satisfy repo.ItineraryRepo.
var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// fakeSynth is a function-field synth.Synthesizer.
type fakeSynth struct {
	synthesize   func(ctx context.Context, trip domain.TripRequest, s domain.SupplySnapshot) ([]domain.ItineraryDay, error)
	resynthesize func(ctx context.Context, in synth.ResynthesisInput) ([]domain.ItineraryDay, error)
}

func (f *fakeSynth) Synthesize(ctx context.Context, trip domain.TripRequest, s domain.SupplySnapshot) ([]domain.ItineraryDay, error) {
	return f.synthesize(ctx, trip, s)
}
func (f *fakeSynth) Resynthesize(ctx context.Context, in synth.ResynthesisInput) ([]domain.ItineraryDay, error) {
	return f.resynthesize(ctx, in)
}

var _ synth.Synthesizer = (*fakeSynth)(nil)

// gatherFunc adapts a function to service.SupplyGatherer.
type gatherFunc func(ctx context.Context, q supply.Query) domain.SupplySnapshot

func (f gatherFunc) Gather(ctx context.Context, q supply.Query) domain.SupplySnapshot {
	return f(ctx, q)
}

var _ service.SupplyGatherer = gatherFunc(nil)

// ---- fixtures --------------------------------------------------------------

func baliInput() domain.TripRequestInput {
	return domain.TripRequestInput{
		Destination: "Bali, Indonesia",
		StartDate:   "2024-03-15",
		EndDate:     "2024-03-20",
		Interests:   []string{"photography", "food"},
		Budget:      "mid-range",
		Pace:        "moderate",
	}
}

// mockGatherer returns the fixture providers' data without going through
// the concurrent Gatherer.
func mockGatherer() gatherFunc {
	return func(ctx context.Context, q supply.Query) domain.SupplySnapshot {
		f, _ := supply.MockFlights{}.SearchFlights(ctx, q)
		h, _ := supply.MockHotels{}.SearchHotels(ctx, q)
		w, _ := supply.MockWeather{}.Forecast(ctx, q)
		return domain.SupplySnapshot{Flights: f, Hotels: h, Weather: w}
	}
}

// simpleDays builds n days with blocks blocks each, costing 10 per block.
func simpleDays(n, blocks int, label string) []domain.ItineraryDay {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	out := make([]domain.ItineraryDay, n)
	for i := range n {
		d := domain.ItineraryDay{
			Day:   i + 1,
			Date:  start.AddDate(0, 0, i).Format(domain.DateLayout),
			Title: fmt.Sprintf("%s day %d", label, i+1),
		}
		periods := []domain.Period{domain.PeriodMorning, domain.PeriodAfternoon, domain.PeriodEvening}
		for b := range blocks {
			d.TimeBlocks = append(d.TimeBlocks, domain.TimeBlock{
				Time:   fmt.Sprintf("%d:00", 9+b*4),
				Period: periods[b%len(periods)],
				Activity: domain.Activity{
					Name: fmt.Sprintf("%s activity %d.%d", label, i+1, b),
					Cost: "$10",
				},
			})
		}
		d.TotalCost = float64(10 * blocks)
		out[i] = d
	}
	return out
}

// storedBali is a persisted six-day itinerary with three blocks per day.
func storedBali() domain.Itinerary {
	return domain.Itinerary{
		ID:          uuid.New(),
		Title:       "6 Days in Bali, Indonesia",
		Destination: "Bali, Indonesia",
		StartDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		Interests:   []string{"photography", "food"},
		Budget:      domain.BudgetMid,
		Pace:        domain.PaceModerate,
		Days:        simpleDays(6, 3, "orig"),
		TotalCost:   "$180",
	}
}

// intPtr returns a pointer to n.
func intPtr(n int) *int { return &n }
