package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database at path with WAL journaling.
// The parent directory is created if it does not exist.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	// A single writer connection avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	return db, nil
}

// sqliteItineraryRepo is the SQLite implementation of ItineraryRepo.
// Nested structures are stored as JSON text; timestamps as RFC 3339 text.
type sqliteItineraryRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteItineraryRepo constructs an ItineraryRepo on an open SQLite database.
// The schema from migrations.SQLite must already be applied.
func NewSQLiteItineraryRepo(db *sql.DB) ItineraryRepo {
	return &sqliteItineraryRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *sqliteItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	rec := it.Clone()
	rec.ID = uuid.New()
	rec.CreatedAt = r.now()
	rec.UpdatedAt = rec.CreatedAt
	if rec.Days == nil {
		rec.Days = []domain.ItineraryDay{}
	}
	if rec.Interests == nil {
		rec.Interests = []string{}
	}

	cols, err := encodeRow(rec)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO itineraries (id, title, destination, start_date, end_date, interests, budget, pace,
		                         days, flight_data, hotel_data, weather_data, total_cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, q,
		rec.ID.String(), rec.Title, rec.Destination,
		rec.StartDate.Format(domain.DateLayout), rec.EndDate.Format(domain.DateLayout),
		cols.interests, string(rec.Budget), string(rec.Pace),
		cols.days, cols.flights, cols.hotels, cols.weather, rec.TotalCost,
		formatTimestamp(rec.CreatedAt), formatTimestamp(rec.UpdatedAt),
	)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return rec, nil
}

func (r *sqliteItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	q := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = ?`

	result, err := scanSQLiteItinerary(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update runs the patch and the read-back in one transaction so the returned
// record is the one this call wrote.
func (r *sqliteItineraryRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	var days any
	if patch.Days != nil {
		b, err := json.Marshal(patch.Days)
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: encode days: %w", err)
		}
		days = string(b)
	}
	var budget any
	if patch.Budget != nil {
		budget = string(*patch.Budget)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE itineraries
		SET title      = COALESCE(?, title),
		    budget     = COALESCE(?, budget),
		    days       = COALESCE(?, days),
		    total_cost = COALESCE(?, total_cost),
		    updated_at = ?
		WHERE id = ?`

	res, err := tx.ExecContext(ctx, q,
		nullableString(patch.Title), budget, days, nullableString(patch.TotalCost),
		formatTimestamp(r.now()), id.String())
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	} else if n == 0 {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", domain.ErrNotFound)
	}

	sel := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = ?`
	result, err := scanSQLiteItinerary(tx.QueryRowContext(ctx, sel, id.String()))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: commit: %w", err)
	}
	return result, nil
}

func (r *sqliteItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	q := `SELECT ` + itineraryColumns + ` FROM itineraries ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	out, err := collectSQLiteItineraries(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	return out, nil
}

func (r *sqliteItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM itineraries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + itineraryColumns + ` FROM itineraries ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	out, err := collectSQLiteItineraries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

// encodedColumns holds the JSON text for the nested columns of one row.
type encodedColumns struct {
	interests string
	days      string
	flights   sql.NullString
	hotels    sql.NullString
	weather   sql.NullString
}

func encodeRow(it domain.Itinerary) (encodedColumns, error) {
	var (
		cols encodedColumns
		err  error
	)
	if cols.interests, err = encodeJSON(it.Interests); err != nil {
		return cols, fmt.Errorf("encode interests: %w", err)
	}
	if cols.days, err = encodeJSON(it.Days); err != nil {
		return cols, fmt.Errorf("encode days: %w", err)
	}
	if cols.flights, err = encodeOptionalJSON(it.FlightData); err != nil {
		return cols, fmt.Errorf("encode flight data: %w", err)
	}
	if cols.hotels, err = encodeOptionalJSON(it.HotelData); err != nil {
		return cols, fmt.Errorf("encode hotel data: %w", err)
	}
	if cols.weather, err = encodeOptionalJSON(it.WeatherData); err != nil {
		return cols, fmt.Errorf("encode weather data: %w", err)
	}
	return cols, nil
}

func collectSQLiteItineraries(rows *sql.Rows) ([]domain.Itinerary, error) {
	defer rows.Close()

	out := []domain.Itinerary{}
	for rows.Next() {
		it, err := scanSQLiteItinerary(rows)
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

func scanSQLiteItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it                       domain.Itinerary
		id, start, end           string
		budget, pace             string
		interests, days          string
		flights, hotels, weather sql.NullString
		createdAt, updatedAt     string
	)

	err := s.Scan(&id, &it.Title, &it.Destination, &start, &end, &interests, &budget, &pace,
		&days, &flights, &hotels, &weather, &it.TotalCost, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	if it.ID, err = uuid.Parse(id); err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse id: %w", err)
	}
	if it.StartDate, err = time.Parse(domain.DateLayout, start); err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse start_date: %w", err)
	}
	if it.EndDate, err = time.Parse(domain.DateLayout, end); err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse end_date: %w", err)
	}
	if it.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse created_at: %w", err)
	}
	if it.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return domain.Itinerary{}, fmt.Errorf("parse updated_at: %w", err)
	}
	it.Budget = domain.Budget(budget)
	it.Pace = domain.Pace(pace)

	if err := json.Unmarshal([]byte(interests), &it.Interests); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode interests: %w", err)
	}
	if err := json.Unmarshal([]byte(days), &it.Days); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode days: %w", err)
	}
	if err := decodeOptionalJSON(flights, &it.FlightData); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode flight data: %w", err)
	}
	if err := decodeOptionalJSON(hotels, &it.HotelData); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode hotel data: %w", err)
	}
	if err := decodeOptionalJSON(weather, &it.WeatherData); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode weather data: %w", err)
	}
	return it, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeOptionalJSON[T any](s []T) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeOptionalJSON[T any](ns sql.NullString, dst *[]T) error {
	if !ns.Valid {
		*dst = nil
		return nil
	}
	return json.Unmarshal([]byte(ns.String), dst)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// formatTimestamp uses a fixed-width layout so text ordering matches time ordering.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}
