package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// ---- GET /api/itinerary/{id}/export ----

func TestExportItinerary_JSON_returns200(t *testing.T) {
	it := sampleItinerary()
	mock := &mockExportServicer{
		export: func(_ context.Context, id uuid.UUID) (domain.ItineraryExport, error) {
			require.Equal(t, it.ID, id)
			return domain.ItineraryExport{Message: domain.ExportMessage, Itinerary: it}, nil
		},
	}
	h := newHTTPHandler(nil, nil, mock)

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/"+it.ID.String()+"/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Message   string         `json:"message"`
		Itinerary map[string]any `json:"itinerary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "PDF export data", body.Message)
	assert.Equal(t, it.ID.String(), body.Itinerary["id"])
}

func TestExportItinerary_CSV_returnsRows(t *testing.T) {
	it := sampleItinerary()
	mock := &mockExportServicer{
		rows: func(context.Context, uuid.UUID) ([]domain.ExportRow, error) {
			return domain.ExportRows(it), nil
		},
	}
	h := newHTTPHandler(nil, nil, mock)

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/"+it.ID.String()+"/export?format=csv", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), it.ID.String()+".csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header + one block on day 1 + empty day 2")
	assert.Equal(t, "day", records[0][0])
	assert.Equal(t, []string{
		"1", "2024-04-01", "Temples", "5", "", "0", "09:00", "morning", "Kinkaku-ji", "", "$5", "1 Kinkakujicho",
	}, records[1])
	assert.Equal(t, "2", records[2][0])
	assert.Empty(t, records[2][5], "block_index is blank for a day without blocks")
	assert.Empty(t, records[2][8])
}

func TestExportItinerary_notFound_returns404(t *testing.T) {
	for _, format := range []string{"", "?format=csv"} {
		mock := &mockExportServicer{
			export: func(context.Context, uuid.UUID) (domain.ItineraryExport, error) {
				return domain.ItineraryExport{}, domain.ErrNotFound
			},
			rows: func(context.Context, uuid.UUID) ([]domain.ExportRow, error) {
				return nil, domain.ErrNotFound
			},
		}
		h := newHTTPHandler(nil, nil, mock)

		req := httptest.NewRequest(http.MethodGet, "/api/itinerary/"+uuid.NewString()+"/export"+format, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "format %q", format)
	}
}

func TestExportItinerary_unknownFormat_returns400(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/"+uuid.NewString()+"/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
