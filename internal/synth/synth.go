// Package synth produces day-by-day itinerary content from trip constraints.
//
// Two adapters satisfy Synthesizer: LLM calls an OpenAI-compatible chat
// completions API, and Local builds plans deterministically from a built-in
// activity catalog so the service runs without an API key. Both funnel their
// output through the same validation so callers only ever see well-formed day
// lists or an error wrapping domain.ErrSynthesis.
package synth

import (
	"context"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// Synthesizer generates and regenerates itinerary days.
type Synthesizer interface {
	// Synthesize builds a complete day list, one day per calendar day of trip.
	Synthesize(ctx context.Context, trip domain.TripRequest, supply domain.SupplySnapshot) ([]domain.ItineraryDay, error)

	// Resynthesize returns a replacement day list for the scope in in.
	// For SectionEntire the result covers every day; for narrower scopes days
	// outside the scope may be omitted and an empty list means "no change".
	Resynthesize(ctx context.Context, in ResynthesisInput) ([]domain.ItineraryDay, error)
}

// ResynthesisInput is the context a regeneration runs with.
type ResynthesisInput struct {
	Days        []domain.ItineraryDay
	Trip        domain.TripRequest
	Supply      domain.SupplySnapshot
	Scope       domain.RegenerationScope
	Preferences *domain.Preferences
}

// Result is the outcome of decoding a synthesizer response: exactly one of
// Days or Err is meaningful.
type Result struct {
	Days []domain.ItineraryDay
	Err  error
}

// Ok wraps a successfully parsed day list.
func Ok(days []domain.ItineraryDay) Result {
	if days == nil {
		days = []domain.ItineraryDay{}
	}
	return Result{Days: days}
}

// Fail wraps a failure.
func Fail(err error) Result {
	return Result{Err: err}
}

// Unwrap splits r into the conventional (value, error) pair.
func (r Result) Unwrap() ([]domain.ItineraryDay, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Days, nil
}
