package service

import (
	"strings"
	"time"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// ValidateTripRequest checks raw client input and returns the canonical
// TripRequest. Failures are *domain.ValidationError naming the first
// offending field. It has no side effects.
func ValidateTripRequest(in domain.TripRequestInput) (domain.TripRequest, error) {
	dest := strings.TrimSpace(in.Destination)
	if dest == "" {
		return domain.TripRequest{}, domain.NewValidationError(domain.KindMissingField, "destination", "destination is required")
	}

	start, end, err := validateDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return domain.TripRequest{}, err
	}

	interests := normalizeInterests(in.Interests)
	if len(interests) == 0 {
		return domain.TripRequest{}, domain.NewValidationError(domain.KindEmptyCollection, "interests", "select at least one interest")
	}

	budget, err := parseBudget(in.Budget)
	if err != nil {
		return domain.TripRequest{}, err
	}

	pace := domain.Pace(strings.ToLower(strings.TrimSpace(in.Pace)))
	if !pace.Valid() {
		return domain.TripRequest{}, domain.NewValidationError(domain.KindInvalidEnum, "pace",
			"pace must be one of relaxed, moderate, packed (got %q)", in.Pace)
	}

	return domain.TripRequest{
		Destination: dest,
		StartDate:   start,
		EndDate:     end,
		Interests:   interests,
		Budget:      budget,
		Pace:        pace,
	}, nil
}

// validateDateRange parses both dates and checks the span.
func validateDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseDate("startDate", startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("endDate", endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.NewValidationError(domain.KindInvalidRange, "endDate",
			"endDate must not be before startDate")
	}
	if n := domain.DaySpan(start, end); n > domain.MaxTripDays {
		return time.Time{}, time.Time{}, domain.NewValidationError(domain.KindInvalidRange, "endDate",
			"trip spans %d days; the maximum is %d", n, domain.MaxTripDays)
	}
	return start, end, nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewValidationError(domain.KindMissingField, field, "%s is required", field)
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.KindInvalidFormat, field,
			"%s must be a date in YYYY-MM-DD format (got %q)", field, raw)
	}
	return t, nil
}

func parseBudget(raw string) (domain.Budget, error) {
	b := domain.Budget(strings.ToLower(strings.TrimSpace(raw)))
	if !b.Valid() {
		return "", domain.NewValidationError(domain.KindInvalidEnum, "budget",
			"budget must be one of budget, mid-range, luxury (got %q)", raw)
	}
	return b, nil
}

// normalizeInterests trims, lowercases, and dedups tags, keeping first-seen order.
func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
