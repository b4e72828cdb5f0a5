package synth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// coverage says whether a parsed day list must contain every trip day.
type coverage int

const (
	// coverAll requires exactly days 1..N.
	coverAll coverage = iota
	// allowGaps accepts any ordered subset of 1..N, including none.
	allowGaps
	// coverAllOrNone requires 1..N unless the result is empty.
	coverAllOrNone
)

// emptyOK reports whether an empty result means "keep the stored days".
func (c coverage) emptyOK() bool { return c != coverAll }

// dayEnvelope is the object shape the model is asked to return.
type dayEnvelope struct {
	Days *[]domain.ItineraryDay `json:"days"`
}

// parseDays decodes model output into a validated day list for trip.
//
// The content may be {"days":[...]} or a bare array. Days must be numbered
// within 1..N, unique, and ascending; totalCost must be a non-negative number;
// every block period must be known. With coverAll the list must be exactly
// 1..N. Dates are normalized to the trip calendar.
//
// For regeneration coverages, blank content, an object without "days", or an
// empty list yields an empty result, which the caller treats as "keep the
// stored days". Malformed JSON is always an error.
func parseDays(content string, trip domain.TripRequest, cov coverage) Result {
	raw := bytes.TrimSpace([]byte(content))
	if len(raw) == 0 {
		if cov.emptyOK() {
			return Ok([]domain.ItineraryDay{})
		}
		return Fail(fmt.Errorf("%w: empty response", domain.ErrSynthesis))
	}

	var days []domain.ItineraryDay
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &days); err != nil {
			return Fail(fmt.Errorf("%w: decode day list: %w", domain.ErrSynthesis, err))
		}
	} else {
		var env dayEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Fail(fmt.Errorf("%w: decode response: %w", domain.ErrSynthesis, err))
		}
		if env.Days == nil {
			if cov.emptyOK() {
				return Ok([]domain.ItineraryDay{})
			}
			return Fail(fmt.Errorf("%w: response has no \"days\" field", domain.ErrSynthesis))
		}
		days = *env.Days
	}

	if len(days) == 0 && cov.emptyOK() {
		return Ok(days)
	}
	if err := checkDays(days, trip, cov); err != nil {
		return Fail(err)
	}
	return Ok(days)
}

// checkDays validates days in place and normalizes dates and nil slices.
func checkDays(days []domain.ItineraryDay, trip domain.TripRequest, cov coverage) error {
	span := trip.DaySpan()

	if cov != allowGaps && len(days) != span {
		return fmt.Errorf("%w: got %d days, trip spans %d", domain.ErrSynthesis, len(days), span)
	}

	prev := 0
	for i := range days {
		d := &days[i]
		if d.Day < 1 || d.Day > span {
			return fmt.Errorf("%w: day %d outside 1..%d", domain.ErrSynthesis, d.Day, span)
		}
		if d.Day <= prev {
			return fmt.Errorf("%w: day %d duplicated or out of order", domain.ErrSynthesis, d.Day)
		}
		if d.TotalCost < 0 || math.IsNaN(d.TotalCost) || math.IsInf(d.TotalCost, 0) {
			return fmt.Errorf("%w: day %d totalCost %v is not a valid amount", domain.ErrSynthesis, d.Day, d.TotalCost)
		}
		for j, b := range d.TimeBlocks {
			if !b.Period.Valid() {
				return fmt.Errorf("%w: day %d block %d has unknown period %q", domain.ErrSynthesis, d.Day, j, b.Period)
			}
		}
		if d.TimeBlocks == nil {
			d.TimeBlocks = []domain.TimeBlock{}
		}
		d.Date = trip.DateOf(d.Day).Format(domain.DateLayout)
		prev = d.Day
	}
	return nil
}
