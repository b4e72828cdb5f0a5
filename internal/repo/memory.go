package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// memoryItineraryRepo keeps itineraries in a map guarded by a RWMutex.
// Records are deep-copied on the way in and out so callers never share
// slices with the store.
type memoryItineraryRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]domain.Itinerary
	now  func() time.Time
}

// NewMemoryItineraryRepo returns an empty in-process ItineraryRepo.
// Contents are lost when the process exits.
func NewMemoryItineraryRepo() ItineraryRepo {
	return &memoryItineraryRepo{
		byID: make(map[uuid.UUID]domain.Itinerary),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryItineraryRepo) Create(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := it.Clone()
	rec.ID = uuid.New()
	rec.CreatedAt = r.now()
	rec.UpdatedAt = rec.CreatedAt
	if rec.Days == nil {
		rec.Days = []domain.ItineraryDay{}
	}
	r.byID[rec.ID] = rec
	return rec.Clone(), nil
}

func (r *memoryItineraryRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", domain.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (r *memoryItineraryRepo) Update(_ context.Context, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", domain.ErrNotFound)
	}
	rec = patch.Apply(rec)
	rec.UpdatedAt = r.now()
	r.byID[id] = rec
	return rec.Clone(), nil
}

func (r *memoryItineraryRepo) List(_ context.Context) ([]domain.Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *memoryItineraryRepo) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedLocked()
	total := int64(len(all))
	start, end := p.Window(len(all))
	return all[start:end], total, nil
}

// sortedLocked returns copies of every record, newest first.
// Ties on CreatedAt are broken by ID so paging is stable.
func (r *memoryItineraryRepo) sortedLocked() []domain.Itinerary {
	out := make([]domain.Itinerary, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
