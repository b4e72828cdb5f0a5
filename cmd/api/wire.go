package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/itinerary-planner/internal/config"
	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/internal/supply"
	"github.com/pkordes/itinerary-planner/internal/synth"
	"github.com/pkordes/itinerary-planner/migrations"
)

// openStore builds the itinerary store selected by cfg.StoreDriver and
// returns a function that releases it.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.ItineraryRepo, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		// New does not open connections immediately; the Ping below does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect: %w", err)
		}
		if cfg.AutoMigrate {
			sqlDB := stdlib.OpenDBFromPool(pool)
			err := migrations.Up(ctx, goose.DialectPostgres, sqlDB)
			sqlDB.Close()
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			log.Info("postgres migrations applied")
		}
		log.Info("database connection established", "driver", "postgres")
		return repo.NewItineraryRepo(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := repo.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := migrations.Up(ctx, goose.DialectSQLite3, db); err != nil {
				db.Close()
				return nil, nil, err
			}
			log.Info("sqlite migrations applied", "path", cfg.SQLitePath)
		}
		log.Info("database opened", "driver", "sqlite", "path", cfg.SQLitePath)
		return repo.NewSQLiteItineraryRepo(db), func() { db.Close() }, nil

	default:
		log.Warn("using in-memory store; itineraries are lost on restart")
		return repo.NewMemoryItineraryRepo(), func() {}, nil
	}
}

// supplyProviders returns the fixture providers, wrapped in a Redis
// read-through cache when REDIS_URL is set and reachable. An unreachable
// Redis is logged and skipped rather than failing startup.
func supplyProviders(ctx context.Context, cfg config.Config, log *slog.Logger) (
	supply.FlightProvider, supply.HotelProvider, supply.WeatherProvider, func(),
) {
	var (
		flights supply.FlightProvider  = supply.MockFlights{}
		hotels  supply.HotelProvider   = supply.MockHotels{}
		weather supply.WeatherProvider = supply.MockWeather{}
	)
	if cfg.RedisURL == "" {
		return flights, hotels, weather, func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL; supply cache disabled", "error", err)
		return flights, hotels, weather, func() {}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable; supply cache disabled", "error", err)
		client.Close()
		return flights, hotels, weather, func() {}
	}

	cache := supply.NewRedisCache(client, "itinerary:supply:")
	log.Info("supply cache enabled", "ttl", cfg.SupplyCacheTTL)
	return supply.NewCachedFlights(flights, cache, cfg.SupplyCacheTTL, log),
		supply.NewCachedHotels(hotels, cache, cfg.SupplyCacheTTL, log),
		supply.NewCachedWeather(weather, cache, cfg.SupplyCacheTTL, log),
		func() { client.Close() }
}

// newSynthesizer picks the LLM adapter when an API key is configured and the
// built-in planner otherwise.
func newSynthesizer(cfg config.Config, log *slog.Logger) synth.Synthesizer {
	if cfg.OpenAIAPIKey == "" {
		log.Info("no OPENAI_API_KEY; using local itinerary planner")
		return synth.NewLocal(log)
	}
	log.Info("using LLM synthesizer", "base_url", cfg.OpenAIBaseURL, "model", cfg.OpenAIModel)
	return synth.NewLLM(synth.LLMConfig{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.SynthTimeout,
	}, log)
}
