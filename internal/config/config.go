package config

import (
	"fmt"
	"math"
	"time"

	"github.com/oggyb/spacematch/internal/validation"
)

type Config struct {
	App struct {
		Env string `koanf:"env" validate:"oneof=development staging production test"`
	} `koanf:"app"`

	Log struct {
		Level     string `koanf:"level"`
		Format    string `koanf:"format" validate:"oneof=text json"`
		Component string `koanf:"component"`
		Source    bool   `koanf:"source"`
	} `koanf:"log"`

	DB struct {
		DSN      string `koanf:"dsn"`
		Host     string `koanf:"host"`
		Port     string `koanf:"port"`
		User     string `koanf:"user"`
		Password string `koanf:"password"`
		Name     string `koanf:"name"`
	} `koanf:"db"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	GRPC struct {
		Host string `koanf:"host"`
		Port string `koanf:"port"`
	} `koanf:"grpc"`

	Metrics struct {
		Enabled bool   `koanf:"enabled"`
		Addr    string `koanf:"addr"`
	} `koanf:"metrics"`

	Matching MatchingConfig `koanf:"matching"`

	Feed struct {
		DefaultLimit    int `koanf:"default_limit" validate:"min=1"`
		MaxLimit        int `koanf:"max_limit" validate:"min=1,gtefield=DefaultLimit"`
		OverFetchFactor int `koanf:"overfetch_factor" validate:"min=1"`
	} `koanf:"feed"`

	Cache struct {
		SwipeTTL        time.Duration `koanf:"swipe_ttl"`
		PendingCountTTL time.Duration `koanf:"pending_count_ttl"`
	} `koanf:"cache"`
}

// MatchingConfig holds the scoring weights and match policy.
type MatchingConfig struct {
	ItemWeight     float64 `koanf:"item_weight" validate:"gte=0,lte=1"`
	ProviderWeight float64 `koanf:"provider_weight" validate:"gte=0,lte=1"`
	MinScore       int     `koanf:"min_score" validate:"gte=0,lte=100"`
	// RejectPolicy decides who may reject a pending match: any, provider or participant.
	RejectPolicy string `koanf:"reject_policy" validate:"oneof=any provider participant"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}

	cfg.App.Env = "development"

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.Component = "grpc_server"

	cfg.DB.Host = "localhost"
	cfg.DB.Port = "3306"
	cfg.DB.User = "root"
	cfg.DB.Password = "root"
	cfg.DB.Name = "spacematch"

	cfg.Redis.Addr = "localhost:6379"

	cfg.GRPC.Host = "127.0.0.1"
	cfg.GRPC.Port = "50051"

	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = "127.0.0.1:9090"

	cfg.Matching = MatchingConfig{
		ItemWeight:     0.7,
		ProviderWeight: 0.3,
		MinScore:       50,
		RejectPolicy:   "any",
	}

	cfg.Feed.DefaultLimit = 20
	cfg.Feed.MaxLimit = 100
	cfg.Feed.OverFetchFactor = 3

	cfg.Cache.SwipeTTL = 10 * time.Minute
	cfg.Cache.PendingCountTTL = time.Hour

	return cfg
}

// DSN returns the MySQL DSN, built from the parts when not set directly.
func (c *Config) DSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name,
	)
}

// Validate checks field ranges and that the scoring weights sum to 1.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if sum := c.Matching.ItemWeight + c.Matching.ProviderWeight; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("matching weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}
