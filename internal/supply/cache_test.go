package supply_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/supply"
)

// mapCache is an in-memory supply.Cache. getErr, when set, is returned by Get
// to simulate an unreachable cache.
type mapCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return nil, supply.ErrCacheMiss
	}
	return b, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

var _ supply.Cache = (*mapCache)(nil)

// countingFlights counts calls through to the mock provider.
type countingFlights struct {
	calls int
	err   error
}

func (c *countingFlights) SearchFlights(ctx context.Context, q supply.Query) ([]domain.FlightOption, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return supply.MockFlights{}.SearchFlights(ctx, q)
}

func TestCachedFlights_SecondLookupServedFromCache(t *testing.T) {
	cache := newMapCache()
	inner := &countingFlights{}
	p := supply.NewCachedFlights(inner, cache, time.Hour, discardLogger())

	first, err := p.SearchFlights(context.Background(), queryFixture())
	require.NoError(t, err)
	second, err := p.SearchFlights(context.Background(), queryFixture())
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, time.Hour, cache.ttls["flights:"+queryFixture().Key()])
}

func TestCachedFlights_DifferentQueriesMissSeparately(t *testing.T) {
	inner := &countingFlights{}
	p := supply.NewCachedFlights(inner, newMapCache(), time.Hour, discardLogger())

	q2 := queryFixture()
	q2.Destination = "Kyoto, Japan"

	_, err := p.SearchFlights(context.Background(), queryFixture())
	require.NoError(t, err)
	_, err = p.SearchFlights(context.Background(), q2)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFlights_CacheUnavailable_FallsBackToProvider(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("dial tcp: connection refused")
	inner := &countingFlights{}
	p := supply.NewCachedFlights(inner, cache, time.Hour, discardLogger())

	flights, err := p.SearchFlights(context.Background(), queryFixture())

	require.NoError(t, err)
	assert.Len(t, flights, 3)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedFlights_ProviderError_NotCached(t *testing.T) {
	cache := newMapCache()
	inner := &countingFlights{err: errors.New("timeout")}
	p := supply.NewCachedFlights(inner, cache, time.Hour, discardLogger())

	_, err := p.SearchFlights(context.Background(), queryFixture())

	require.Error(t, err)
	assert.Empty(t, cache.data)
}

func TestCachedWeatherAndHotels_ReadThrough(t *testing.T) {
	cache := newMapCache()
	h := supply.NewCachedHotels(supply.MockHotels{}, cache, time.Minute, discardLogger())
	w := supply.NewCachedWeather(supply.MockWeather{}, cache, time.Minute, discardLogger())

	hotels, err := h.SearchHotels(context.Background(), queryFixture())
	require.NoError(t, err)
	weather, err := w.Forecast(context.Background(), queryFixture())
	require.NoError(t, err)

	assert.Len(t, hotels, 5)
	assert.Len(t, weather, 6)
	assert.Contains(t, cache.data, "hotels:"+queryFixture().Key())
	assert.Contains(t, cache.data, "weather:"+queryFixture().Key())
}
