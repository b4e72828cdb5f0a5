// Package supply provides the flight, hotel, and weather lookups that feed
// itinerary generation, plus the Gatherer that queries them concurrently.
package supply

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// Query carries the parameters shared by all three providers.
type Query struct {
	Origin      string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      domain.Budget
}

// Key identifies the query for caching. Two queries with the same key return
// the same offers.
func (q Query) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", q.Origin, q.Destination,
		q.StartDate.Format(domain.DateLayout), q.EndDate.Format(domain.DateLayout), q.Budget)
}

// FlightProvider searches flight offers from Query.Origin to Query.Destination.
type FlightProvider interface {
	SearchFlights(ctx context.Context, q Query) ([]domain.FlightOption, error)
}

// HotelProvider searches hotel offers at Query.Destination.
type HotelProvider interface {
	SearchHotels(ctx context.Context, q Query) ([]domain.HotelOption, error)
}

// WeatherProvider forecasts weather at Query.Destination for the trip dates.
type WeatherProvider interface {
	Forecast(ctx context.Context, q Query) ([]domain.WeatherForecast, error)
}
