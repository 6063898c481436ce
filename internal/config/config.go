// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file if one
// is present), loads them on top of a set of defaults into structured Go
// types, and validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Provide defaults that match the service contract (port 8080, local Redis).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the PRODUCTS_ prefix. The prefix is removed, the
	rest is lowercased, and a double underscore marks a nesting level:

		PRODUCTS_SERVER__PORT          -> server.port      -> Config.Server.Port
		PRODUCTS_REDIS__ADDRESS        -> redis.address    -> Config.Redis.Address
		PRODUCTS_SERVER__READ_TIMEOUT  -> server.read_timeout

	Single underscores stay part of the key name.
*/

// EnvPrefix is the prefix every environment variable read by LoadConfig carries.
const EnvPrefix = "PRODUCTS_"

// ServiceName is the fixed name used to tag logs and APM data.
const ServiceName = "product-cache"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Product       ProductConfig        `koanf:"product" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// RedisConfig contains connection details for the backing store.
// Address is "host:port".
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`

	// PoolSize of 0 leaves the go-redis default (10 per CPU).
	PoolSize int `koanf:"pool_size" validate:"gte=0"`
}

// ProductConfig holds knobs of the product endpoints themselves.
type ProductConfig struct {
	// DeleteExpectedCount is the DEL reply a product deletion must return to
	// be reported as successful. It defaults to 3 to keep the behavior the
	// service has always had, even though a single-key DEL can only report
	// 0 or 1. Set it to 1 once that has been signed off.
	DeleteExpectedCount int64 `koanf:"delete_expected_count" validate:"gte=0"`
}

// defaults is the lowest config layer; env vars override any of these keys.
func defaults() map[string]any {
	return map[string]any{
		"primary.env":                                         "development",
		"server.port":                                         "8080",
		"server.read_timeout":                                 30,
		"server.write_timeout":                                30,
		"server.idle_timeout":                                 60,
		"server.cors_allowed_origins":                         []string{"*"},
		"redis.address":                                       "127.0.0.1:6379",
		"redis.db":                                            0,
		"product.delete_expected_count":                       3,
		"observability.service_name":                          ServiceName,
		"observability.environment":                           "development",
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_command_threshold":        "100ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.interval":                "30s",
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"redis"},
	}
}

// envKey turns PRODUCTS_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig builds the Config from defaults and environment variables,
// validates it, and fills in the observability block.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// Values stay strings here; Unmarshal splits them on commas only where
	// the target is a list (PRODUCTS_SERVER__CORS_ALLOWED_ORIGINS=a,b).
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are never taken from the env block
	// directly so telemetry stays consistently labelled.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
