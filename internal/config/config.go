// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the service. Defaults are sensible for
// local development against the bundled dataset.
type Config struct {
	Port        string `env:"CW_PORT" envDefault:"8080"`
	DatasetPath string `env:"CW_DATASET_PATH" envDefault:"data/food_prices.csv"`

	DBDriver string `env:"CW_DB_DRIVER" envDefault:"bun"`
	DBPath   string `env:"CW_DB_PATH" envDefault:"chopwise.db"`

	ModelHost       string        `env:"CW_MODEL_HOST" envDefault:"http://localhost:8500"`
	ForecastTimeout time.Duration `env:"CW_FORECAST_TIMEOUT" envDefault:"10s"`

	CacheBackend  string        `env:"CW_CACHE_BACKEND" envDefault:"memory"`
	CacheCapacity int           `env:"CW_CACHE_CAPACITY" envDefault:"256"`
	CacheTTL      time.Duration `env:"CW_CACHE_TTL" envDefault:"1h"`
	RedisAddr     string        `env:"CW_REDIS_ADDR" envDefault:"localhost:6379"`

	ConfidenceFloor float64 `env:"CW_CONFIDENCE_FLOOR" envDefault:"0.1"`
	FuzzyAccept     float64 `env:"CW_FUZZY_ACCEPT" envDefault:"0.6"`
	FuzzySuggest    float64 `env:"CW_FUZZY_SUGGEST" envDefault:"0.4"`
}

// Load reads configuration from a .env file (if present) and the process
// environment, then validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "bun", "sqlite":
	default:
		return fmt.Errorf("invalid CW_DB_DRIVER %q (want bun or sqlite)", c.DBDriver)
	}

	switch c.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid CW_CACHE_BACKEND %q (want memory or redis)", c.CacheBackend)
	}

	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return fmt.Errorf("CW_CONFIDENCE_FLOOR must be in [0,1], got %g", c.ConfidenceFloor)
	}
	if c.FuzzyAccept < 0 || c.FuzzyAccept > 1 || c.FuzzySuggest < 0 || c.FuzzySuggest > 1 {
		return fmt.Errorf("fuzzy thresholds must be in [0,1]")
	}
	if c.FuzzySuggest > c.FuzzyAccept {
		return fmt.Errorf("CW_FUZZY_SUGGEST (%g) must not exceed CW_FUZZY_ACCEPT (%g)", c.FuzzySuggest, c.FuzzyAccept)
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("CW_CACHE_CAPACITY must be positive, got %d", c.CacheCapacity)
	}
	return nil
}
