package supply

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the byte store the cached providers read through.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache adapts a go-redis client to Cache.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache returns a Cache storing entries under prefix in Redis.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("supply.RedisCache.Get: %w", err)
	}
	return b, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("supply.RedisCache.Set: %w", err)
	}
	return nil
}

// readThrough serves kind/q from cache, falling back to fetch on a miss or a
// cache error. Only successful, non-empty lookups are stored.
type readThrough[T any] struct {
	cache Cache
	kind  string
	ttl   time.Duration
	log   *slog.Logger
}

func (r readThrough[T]) get(ctx context.Context, q Query, fetch func(context.Context, Query) ([]T, error)) ([]T, error) {
	key := r.kind + ":" + q.Key()

	if b, err := r.cache.Get(ctx, key); err == nil {
		var out []T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		r.log.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, ErrCacheMiss) {
		r.log.WarnContext(ctx, "supply cache read failed", "key", key, "error", err)
	}

	out, err := fetch(ctx, q)
	if err != nil || len(out) == 0 {
		return out, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
			r.log.WarnContext(ctx, "supply cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// CachedFlights decorates a FlightProvider with a read-through cache.
type CachedFlights struct {
	next FlightProvider
	rt   readThrough[domain.FlightOption]
}

// NewCachedFlights wraps next so results are cached for ttl.
func NewCachedFlights(next FlightProvider, c Cache, ttl time.Duration, log *slog.Logger) *CachedFlights {
	return &CachedFlights{next: next, rt: newReadThrough[domain.FlightOption](c, "flights", ttl, log)}
}

func (p *CachedFlights) SearchFlights(ctx context.Context, q Query) ([]domain.FlightOption, error) {
	return p.rt.get(ctx, q, p.next.SearchFlights)
}

// CachedHotels decorates a HotelProvider with a read-through cache.
type CachedHotels struct {
	next HotelProvider
	rt   readThrough[domain.HotelOption]
}

// NewCachedHotels wraps next so results are cached for ttl.
func NewCachedHotels(next HotelProvider, c Cache, ttl time.Duration, log *slog.Logger) *CachedHotels {
	return &CachedHotels{next: next, rt: newReadThrough[domain.HotelOption](c, "hotels", ttl, log)}
}

func (p *CachedHotels) SearchHotels(ctx context.Context, q Query) ([]domain.HotelOption, error) {
	return p.rt.get(ctx, q, p.next.SearchHotels)
}

// CachedWeather decorates a WeatherProvider with a read-through cache.
type CachedWeather struct {
	next WeatherProvider
	rt   readThrough[domain.WeatherForecast]
}

// NewCachedWeather wraps next so results are cached for ttl.
func NewCachedWeather(next WeatherProvider, c Cache, ttl time.Duration, log *slog.Logger) *CachedWeather {
	return &CachedWeather{next: next, rt: newReadThrough[domain.WeatherForecast](c, "weather", ttl, log)}
}

func (p *CachedWeather) Forecast(ctx context.Context, q Query) ([]domain.WeatherForecast, error) {
	return p.rt.get(ctx, q, p.next.Forecast)
}

func newReadThrough[T any](c Cache, kind string, ttl time.Duration, log *slog.Logger) readThrough[T] {
	if log == nil {
		log = slog.Default()
	}
	return readThrough[T]{cache: c, kind: kind, ttl: ttl, log: log}
}
