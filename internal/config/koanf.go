package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar names an optional YAML config file.
const PathEnvVar = "CONFIG_PATH"

// envKeys maps the supported environment variables to koanf paths.
var envKeys = map[string]string{
	"app_env": "app.env",

	"log_level":     "log.level",
	"log_format":    "log.format",
	"log_component": "log.component",
	"log_source":    "log.source",

	"mysql_dsn":   "db.dsn",
	"db_host":     "db.host",
	"db_port":     "db.port",
	"db_user":     "db.user",
	"db_password": "db.password",
	"db_name":     "db.name",

	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",

	"grpc_host": "grpc.host",
	"grpc_port": "grpc.port",

	"metrics_enabled": "metrics.enabled",
	"metrics_addr":    "metrics.addr",

	"match_item_weight":     "matching.item_weight",
	"match_provider_weight": "matching.provider_weight",
	"match_min_score":       "matching.min_score",
	"match_reject_policy":   "matching.reject_policy",

	"feed_default_limit":    "feed.default_limit",
	"feed_max_limit":        "feed.max_limit",
	"feed_overfetch_factor": "feed.overfetch_factor",

	"swipe_cache_ttl":   "cache.swipe_ttl",
	"pending_count_ttl": "cache.pending_count_ttl",
}

// Load builds the config from defaults, then the optional YAML file at
// $CONFIG_PATH, then environment variables. The result is validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := strings.TrimSpace(os.Getenv(PathEnvVar)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransform maps e.g. REDIS_ADDR -> redis.addr. Unknown variables return
// "" and are skipped by the provider.
func envTransform(key string) string {
	return envKeys[strings.ToLower(key)]
}
