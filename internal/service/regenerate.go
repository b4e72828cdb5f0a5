package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/internal/synth"
)

// RegenerationService replaces a day, a time block, or the whole day list of
// an existing itinerary.
//
// Replacement is always whole-day: the synthesizer's days overwrite the stored
// ones wholesale and are never merged field by field, so a time-block request
// may also change other blocks of the same day. Days the synthesizer leaves
// out keep their stored content, and the day count never shrinks.
//
// Concurrent regenerations of one itinerary are last-write-wins.
type RegenerationService struct {
	repo  repo.ItineraryRepo
	synth synth.Synthesizer
	log   *slog.Logger
}

// NewRegenerationService constructs a RegenerationService.
func NewRegenerationService(r repo.ItineraryRepo, s synth.Synthesizer, log *slog.Logger) *RegenerationService {
	if log == nil {
		log = slog.Default()
	}
	return &RegenerationService{repo: r, synth: s, log: log}
}

// Regenerate applies req and returns the updated itinerary.
//
// Errors:
//   - domain.ErrValidation: malformed request (unknown section, missing index)
//   - domain.ErrNotFound:   no itinerary with req.ItineraryID
//   - domain.ErrIndex:      dayNumber or timeBlockIndex outside the current version
//   - domain.ErrSynthesis:  the synthesizer failed or returned malformed days
//
// On any error the stored itinerary is left untouched. If the synthesizer
// returns no days, the stored itinerary is returned unchanged.
func (s *RegenerationService) Regenerate(ctx context.Context, req domain.RegenerateRequest) (domain.Itinerary, error) {
	if err := validateRegenerateRequest(req); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.RegenerationService.Regenerate: %w", err)
	}

	current, err := s.repo.GetByID(ctx, req.ItineraryID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.RegenerationService.Regenerate: %w", err)
	}

	scope, err := resolveScope(req, current.Days)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.RegenerationService.Regenerate: %w", err)
	}

	trip := current.TripRequest()
	if scope.Section == domain.SectionEntire && req.NewPreferences != nil && req.NewPreferences.Budget != nil {
		trip.Budget = *req.NewPreferences.Budget
	}

	days, err := s.synth.Resynthesize(ctx, synth.ResynthesisInput{
		Days:        domain.CloneDays(current.Days),
		Trip:        trip,
		Supply:      current.Supply(),
		Scope:       scope,
		Preferences: req.NewPreferences,
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.RegenerationService.Regenerate: %w", asSynthesisError(err))
	}
	if len(days) == 0 {
		s.log.WarnContext(ctx, "synthesizer returned no days; keeping stored itinerary",
			"itinerary_id", current.ID, "section", scope.Section)
		return current, nil
	}
	if err := checkDayNumbers(days, trip.DaySpan(), scope.Section == domain.SectionEntire); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.RegenerationService.Regenerate: %w", err)
	}

	merged := reconcileDays(current.Days, days)
	updated, err := s.repo.Update(ctx, current.ID, domain.ItineraryPatch{Days: merged})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.RegenerationService.Regenerate: %w", err)
	}

	s.log.InfoContext(ctx, "itinerary regenerated",
		"itinerary_id", updated.ID,
		"section", scope.Section,
		"day", scope.DayNumber,
		"time_block", scope.TimeBlockIndex,
	)
	return updated, nil
}

// validateRegenerateRequest checks the parts of req that do not depend on the
// stored itinerary.
func validateRegenerateRequest(req domain.RegenerateRequest) error {
	if req.ItineraryID == uuid.Nil {
		return domain.NewValidationError(domain.KindMissingField, "itineraryId", "itineraryId is required")
	}
	if !req.Section.Valid() {
		return domain.NewValidationError(domain.KindInvalidEnum, "section",
			"section must be one of day, timeBlock, entire (got %q)", req.Section)
	}
	if p := req.NewPreferences; p != nil && p.Budget != nil && !p.Budget.Valid() {
		return domain.NewValidationError(domain.KindInvalidEnum, "newPreferences.budget",
			"budget must be one of budget, mid-range, luxury (got %q)", *p.Budget)
	}
	return nil
}

// resolveScope checks req's indices against days and captures the target
// block's period. Index fields are ignored for SectionEntire.
func resolveScope(req domain.RegenerateRequest, days []domain.ItineraryDay) (domain.RegenerationScope, error) {
	scope := domain.RegenerationScope{Section: req.Section}
	if req.Section == domain.SectionEntire {
		return scope, nil
	}

	if req.DayNumber == nil {
		return scope, domain.NewValidationError(domain.KindMissingField, "dayNumber",
			"dayNumber is required for section %q", req.Section)
	}
	n := *req.DayNumber
	if n < 1 || n > len(days) {
		return scope, fmt.Errorf("%w: dayNumber %d outside 1..%d", domain.ErrIndex, n, len(days))
	}
	scope.DayNumber = n

	if req.Section == domain.SectionDay {
		return scope, nil
	}

	if req.TimeBlockIndex == nil {
		return scope, domain.NewValidationError(domain.KindMissingField, "timeBlockIndex",
			"timeBlockIndex is required for section %q", req.Section)
	}
	i := *req.TimeBlockIndex
	blocks := days[n-1].TimeBlocks
	if i < 0 || i >= len(blocks) {
		return scope, fmt.Errorf("%w: timeBlockIndex %d outside 0..%d of day %d", domain.ErrIndex, i, len(blocks)-1, n)
	}
	scope.TimeBlockIndex = i
	scope.Period = blocks[i].Period
	return scope, nil
}

// reconcileDays overlays next onto prev by day number. Days absent from next
// keep their previous content; the result is ordered by day number.
func reconcileDays(prev, next []domain.ItineraryDay) []domain.ItineraryDay {
	byDay := make(map[int]domain.ItineraryDay, len(prev))
	for _, d := range prev {
		byDay[d.Day] = d
	}
	for _, d := range next {
		byDay[d.Day] = d
	}

	out := make([]domain.ItineraryDay, 0, len(byDay))
	for _, n := range slices.Sorted(maps.Keys(byDay)) {
		out = append(out, byDay[n])
	}
	return domain.CloneDays(out)
}

// checkDayNumbers verifies synthesizer output: unique day numbers within
// 1..span, and with full set every number present.
func checkDayNumbers(days []domain.ItineraryDay, span int, full bool) error {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d.Day < 1 || d.Day > span {
			return fmt.Errorf("%w: day %d outside 1..%d", domain.ErrSynthesis, d.Day, span)
		}
		if seen[d.Day] {
			return fmt.Errorf("%w: day %d returned twice", domain.ErrSynthesis, d.Day)
		}
		seen[d.Day] = true
	}
	if full && len(seen) != span {
		return fmt.Errorf("%w: got %d of %d days", domain.ErrSynthesis, len(seen), span)
	}
	return nil
}

// asSynthesisError makes sure a synthesizer failure matches domain.ErrSynthesis
// while keeping its original chain.
func asSynthesisError(err error) error {
	if errors.Is(err, domain.ErrSynthesis) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrSynthesis, err)
}
