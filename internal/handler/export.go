// Package handler — export.go implements GET /api/itinerary/{id}/export.
// Returns the itinerary wrapped with an export message, or a flat table of
// its time blocks via ?format=csv.
package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day", "date", "day_title", "day_cost", "weather",
	"block_index", "time", "period", "activity", "duration", "cost", "address",
}

type exportResponse struct {
	Message   string            `json:"message"`
	Itinerary itineraryResponse `json:"itinerary"`
}

// ExportItinerary handles GET /api/itinerary/{id}/export.
// Use ?format=csv to receive CSV; default (or ?format=json) is JSON.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Failed to export itinerary"

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		exp, err := s.export.Export(r.Context(), id)
		if err != nil {
			s.exportFailed(w, r, id, err)
			return
		}
		writeJSON(w, http.StatusOK, exportResponse{
			Message:   exp.Message,
			Itinerary: itineraryToResponse(exp.Itinerary),
		})
	case "csv":
		rows, err := s.export.Rows(r.Context(), id)
		if err != nil {
			s.exportFailed(w, r, id, err)
			return
		}
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary-`+id.String()+`.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		body.WriteTo(w)
	default:
		writeError(w, http.StatusBadRequest, failMsg, errors.New(`format must be "json" or "csv"`))
	}
}

func (s *Server) exportFailed(w http.ResponseWriter, r *http.Request, id uuid.UUID, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		notFound(w)
		return
	}
	s.log.ErrorContext(r.Context(), "export itinerary", "itinerary_id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to export itinerary", err)
}

// buildCSV encodes rows as CSV with a header line. Block columns are left
// blank for a day that has no time blocks.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(rowToCSVRecord(r))
	}
	w.Flush()

	return &buf
}

// rowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func rowToCSVRecord(r domain.ExportRow) []string {
	blockIndex := ""
	if r.Time != "" || r.Period != "" || r.ActivityName != "" {
		blockIndex = strconv.Itoa(r.BlockIndex)
	}
	return []string{
		strconv.Itoa(r.Day),
		r.Date,
		r.DayTitle,
		strconv.FormatFloat(r.DayCost, 'f', -1, 64),
		r.Weather,
		blockIndex,
		r.Time,
		string(r.Period),
		r.ActivityName,
		r.Duration,
		r.Cost,
		r.Address,
	}
}
