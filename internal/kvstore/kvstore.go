// Package kvstore contains the logic for establishing the connection to the
// Redis key-value store that holds every product record.
//
// It handles:
//   - building go-redis options from config
//   - wiring command logging (slow commands, and every command in local env)
//   - optional New Relic instrumentation (nrredis-v9)
//   - the start-up ping
package kvstore

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/product-cache/internal/config"
	loggerConfig "github.com/deppfellow/product-cache/internal/logger"
)

// KVStore wraps the go-redis client and a logger.
//
// Client is safe for concurrent use and pools its own connections, so a
// single KVStore is shared by every request.
type KVStore struct {
	Client *redis.Client
	log    *zerolog.Logger
}

// PingTimeout is how long start-up waits for the store to answer PING.
const PingTimeout = 5 * time.Second

// New creates the Redis client with instrumentation.
//
// The connection is lazy; New pings once so the logs show whether the store
// is reachable, but an unreachable store does not stop start-up. Requests
// made while it is down fail with 500, which is the documented contract.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// New Relic datastore segments for every command.
	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	client.AddHook(newCommandLogger(logger, cfg.Observability.Logging.SlowCommandThreshold, cfg.Primary.Env == "local"))

	store := &KVStore{
		Client: client,
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("failed to connect to Redis, continuing; product requests will fail until it is reachable")
	} else {
		logger.Info().Str("address", cfg.Redis.Address).Msg("connected to Redis")
	}

	return store, nil
}

// Ping checks the store is reachable.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// Close closes the client and its connection pool.
func (s *KVStore) Close() error {
	s.log.Info().Msg("closing Redis connection pool")
	return s.Client.Close()
}
