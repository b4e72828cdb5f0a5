package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/repo"
)

// ExportService assembles export payloads for a single itinerary.
type ExportService struct {
	repo repo.ItineraryRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(r repo.ItineraryRepo) *ExportService {
	return &ExportService{repo: r}
}

// Export returns the itinerary wrapped for client-side document rendering.
// Returns domain.ErrNotFound if it does not exist.
func (s *ExportService) Export(ctx context.Context, id uuid.UUID) (domain.ItineraryExport, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ItineraryExport{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return domain.ItineraryExport{Message: domain.ExportMessage, Itinerary: it}, nil
}

// Rows returns one ExportRow per time block of the itinerary.
// Days with no blocks contribute one row with empty block fields.
func (s *ExportService) Rows(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}
	return domain.ExportRows(it), nil
}
