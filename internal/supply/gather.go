package supply

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// Gatherer queries the three providers concurrently and joins once all of
// them have settled. A failing provider contributes an empty list.
type Gatherer struct {
	flights FlightProvider
	hotels  HotelProvider
	weather WeatherProvider
	log     *slog.Logger
}

// NewGatherer constructs a Gatherer. A nil logger falls back to slog.Default().
func NewGatherer(f FlightProvider, h HotelProvider, w WeatherProvider, log *slog.Logger) *Gatherer {
	if log == nil {
		log = slog.Default()
	}
	return &Gatherer{flights: f, hotels: h, weather: w, log: log}
}

// Gather returns whatever the providers produced. It never fails: provider
// errors are logged and replaced by empty lists, and the group is not bound
// to a cancelling context so one failure cannot abort the others.
func (g *Gatherer) Gather(ctx context.Context, q Query) domain.SupplySnapshot {
	var (
		grp  errgroup.Group
		snap domain.SupplySnapshot
	)

	grp.Go(func() error {
		snap.Flights = recoverEmpty(ctx, g.log, "flights", q, g.flights.SearchFlights)
		return nil
	})
	grp.Go(func() error {
		snap.Hotels = recoverEmpty(ctx, g.log, "hotels", q, g.hotels.SearchHotels)
		return nil
	})
	grp.Go(func() error {
		snap.Weather = recoverEmpty(ctx, g.log, "weather", q, g.weather.Forecast)
		return nil
	})

	_ = grp.Wait()
	return snap
}

// recoverEmpty calls fn and turns any error or panic into an empty,
// non-nil list.
func recoverEmpty[T any](ctx context.Context, log *slog.Logger, provider string, q Query,
	fn func(context.Context, Query) ([]T, error)) (out []T) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "supply provider panicked",
				"provider", provider, "destination", q.Destination, "panic", fmt.Sprint(r))
			out = []T{}
		}
	}()

	res, err := fn(ctx, q)
	if err != nil {
		log.WarnContext(ctx, "supply lookup failed; continuing without it",
			"provider", provider,
			"destination", q.Destination,
			"error", fmt.Errorf("%w: %s: %w", domain.ErrProvider, provider, err),
		)
		return []T{}
	}
	if res == nil {
		return []T{}
	}
	return res
}
