package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/handler"
	"github.com/pkordes/itinerary-planner/internal/service"
)

// mockItineraryServicer is a hand-written test double for handler.ItineraryServicer.
// Each method is a function field — set only the ones your test needs.
type mockItineraryServicer struct {
	generate  func(ctx context.Context, in domain.TripRequestInput) (domain.Itinerary, error)
	preview   func(ctx context.Context, in service.PreviewInput) (domain.SupplySnapshot, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
}

func (m *mockItineraryServicer) Generate(ctx context.Context, in domain.TripRequestInput) (domain.Itinerary, error) {
	return m.generate(ctx, in)
}
func (m *mockItineraryServicer) Preview(ctx context.Context, in service.PreviewInput) (domain.SupplySnapshot, error) {
	return m.preview(ctx, in)
}
func (m *mockItineraryServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockRegenerationServicer struct {
	regenerate func(ctx context.Context, req domain.RegenerateRequest) (domain.Itinerary, error)
}

func (m *mockRegenerationServicer) Regenerate(ctx context.Context, req domain.RegenerateRequest) (domain.Itinerary, error) {
	return m.regenerate(ctx, req)
}

var _ handler.RegenerationServicer = (*mockRegenerationServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, id uuid.UUID) (domain.ItineraryExport, error)
	rows   func(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, id uuid.UUID) (domain.ItineraryExport, error) {
	return m.export(ctx, id)
}
func (m *mockExportServicer) Rows(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.rows(ctx, id)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// newHTTPHandler wires the given mocks through the real router.
// Nil mocks are replaced with empty ones; a route whose mock method is unset
// panics, which the tests treat as "should not have been called".
func newHTTPHandler(it *mockItineraryServicer, rg *mockRegenerationServicer, ex *mockExportServicer) http.Handler {
	if it == nil {
		it = &mockItineraryServicer{}
	}
	if rg == nil {
		rg = &mockRegenerationServicer{}
	}
	if ex == nil {
		ex = &mockExportServicer{}
	}
	return handler.NewServer(it, rg, ex, nil).Routes(nil)
}

// newServer builds a Server around an itinerary mock only.
func newServer(it *mockItineraryServicer) *handler.Server {
	return handler.NewServer(it, &mockRegenerationServicer{}, &mockExportServicer{}, nil)
}

// jsonBody marshals v into a *bytes.Buffer suitable for use as a request body.
func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("jsonBody: %v", err)
	}
	return bytes.NewBuffer(b)
}

// errorResponse mirrors the error body written by every failing handler.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// sampleItinerary is a two-day itinerary with one block on day 1 and none on day 2.
func sampleItinerary() domain.Itinerary {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Itinerary{
		ID:          uuid.MustParse("6f1c2a4e-8d0b-4c3e-9a51-2b7f0e4d9c11"),
		Title:       "2 Days in Kyoto",
		Destination: "Kyoto",
		StartDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Interests:   []string{"history"},
		Budget:      domain.BudgetMid,
		Pace:        domain.PaceRelaxed,
		Days: []domain.ItineraryDay{
			{
				Day:   1,
				Date:  "2024-04-01",
				Title: "Temples",
				TimeBlocks: []domain.TimeBlock{{
					Time:     "09:00",
					Period:   domain.PeriodMorning,
					Activity: domain.Activity{Name: "Kinkaku-ji", Cost: "$5", Location: domain.Location{Address: "1 Kinkakujicho"}},
				}},
				TotalCost: 5,
			},
			{Day: 2, Date: "2024-04-02", Title: "Rest"},
		},
		TotalCost: "$5",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
