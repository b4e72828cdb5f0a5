// Package repo contains all persistence logic for the itinerary planner.
// ItineraryRepo is the store contract; this file holds the Postgres
// implementation, memory.go and sqlite.go hold the alternatives.
// No business logic lives here — only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItineraryRepo defines the persistence operations for itineraries.
// The service layer depends on this interface, not a concrete store,
// which allows services to be unit-tested with a mock.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record with
	// ID, CreatedAt, and UpdatedAt assigned by the store.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary.
	// Returns domain.ErrNotFound if no itinerary with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// Update applies a shallow top-level patch and returns the updated record.
	// Returns domain.ErrNotFound if no itinerary with that ID exists; it never
	// creates one implicitly.
	Update(ctx context.Context, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error)

	// List returns every itinerary, newest first.
	List(ctx context.Context) ([]domain.Itinerary, error)

	// ListPaged returns one page of itineraries, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
}

const itineraryColumns = `id, title, destination, start_date, end_date, interests, budget, pace,
	days, flight_data, hotel_data, weather_data, total_cost, created_at, updated_at`

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
// Nested structures live in JSONB columns; pgx marshals them with encoding/json.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided Postgres connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

// Create inserts a new itinerary row and returns the full persisted record.
func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (title, destination, start_date, end_date, interests, budget, pace,
		                         days, flight_data, hotel_data, weather_data, total_cost)
		VALUES (@title, @destination, @start_date, @end_date, @interests, @budget, @pace,
		        @days, @flight_data, @hotel_data, @weather_data, @total_cost)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"title":        it.Title,
		"destination":  it.Destination,
		"start_date":   it.StartDate,
		"end_date":     it.EndDate,
		"interests":    nonNil(it.Interests),
		"budget":       string(it.Budget),
		"pace":         string(it.Pace),
		"days":         nonNil(it.Days),
		"flight_data":  it.FlightData, // nil becomes NULL
		"hotel_data":   it.HotelData,
		"weather_data": it.WeatherData,
		"total_cost":   it.TotalCost,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an itinerary by primary key.
func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	q := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update patches the itinerary in a single statement so the read-modify-write
// is atomic. NULL parameters leave their column untouched.
func (r *pgItineraryRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET title      = COALESCE(@title, title),
		    budget     = COALESCE(@budget, budget),
		    days       = COALESCE(@days, days),
		    total_cost = COALESCE(@total_cost, total_cost),
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"id":         id,
		"title":      patch.Title,
		"budget":     (*string)(patch.Budget),
		"days":       nil,
		"total_cost": patch.TotalCost,
	}
	if patch.Days != nil {
		args["days"] = patch.Days
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

// List returns all itineraries ordered by created_at descending.
func (r *pgItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	q := `SELECT ` + itineraryColumns + ` FROM itineraries ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	out, err := collectItineraries(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	return out, nil
}

// ListPaged returns one page of itineraries and the total row count.
func (r *pgItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM itineraries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + itineraryColumns + `
		FROM itineraries
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	out, err := collectItineraries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanItinerary to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// collectItineraries drains rows and closes them.
func collectItineraries(rows pgx.Rows) ([]domain.Itinerary, error) {
	defer rows.Close()

	out := []domain.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// scanItinerary maps a single database row into a domain.Itinerary.
// It handles the UUID, DATE, and JSONB conversions.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it        domain.Itinerary
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		budget    string
		pace      string
	)

	err := s.Scan(&id, &it.Title, &it.Destination, &startDate, &endDate, &it.Interests,
		&budget, &pace, &it.Days, &it.FlightData, &it.HotelData, &it.WeatherData,
		&it.TotalCost, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.StartDate = startDate.Time
	it.EndDate = endDate.Time
	it.Budget = domain.Budget(budget)
	it.Pace = domain.Pace(pace)
	return it, nil
}

// nonNil keeps NOT NULL JSON columns from receiving a SQL NULL.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
