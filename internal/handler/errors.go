package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// errorBody is the JSON body of every non-2xx response.
// Message says what failed; Error carries the underlying detail when there is one.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away; nothing left to report to.
	json.NewEncoder(w).Encode(v)
}

// writeError writes an errorBody. A nil err produces a message-only body.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, errorBody{Message: message, Error: unwrapMessage(err)})
}

// notFound writes the 404 body shared by every itinerary lookup.
func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "Itinerary not found", nil)
}

// decodeJSON reads a JSON request body into v. Unknown fields are ignored so
// older clients keep working.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

// tooLarge reports whether err came from an http.MaxBytesReader limit.
func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// unwrapMessage extracts the human-readable part of a wrapped error.
// A *domain.ValidationError yields its own message; otherwise the
// "pkg.Type.Method: " prefixes added by each layer are stripped.
// e.g. "service.ItineraryService.Generate: synthesis failed: timeout" → "synthesis failed: timeout"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	msg := err.Error()
	for {
		head, rest, ok := strings.Cut(msg, ": ")
		if !ok || !isCallSite(head) {
			return msg
		}
		msg = rest
	}
}

// isCallSite reports whether s looks like a "pkg.Type.Method" wrap prefix.
func isCallSite(s string) bool {
	return strings.Count(s, ".") >= 1 && !strings.ContainsAny(s, " \t")
}
