package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port       string `envconfig:"PORT" default:"8080"`
	GinMode    string `envconfig:"GIN_MODE" default:"debug"`
	BaseURL    string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	MongodbURL string `envconfig:"MONGODB_URL" required:"true"`
	Database   string `envconfig:"MONGODB_DATABASE" default:"melodex"`

	// Cache settings. An empty VALKEY_URL falls back to the in-memory
	// cache; search responses are cached for SearchCacheTTL.
	ValkeyURL      string        `envconfig:"VALKEY_URL"`
	SearchCacheTTL time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"60s"`

	// Listener identity claims are verified against this secret;
	// token issuance belongs to the identity service
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Discovery tuning
	RecommendTargetSize int64 `envconfig:"RECOMMEND_TARGET_SIZE" default:"20"`
	PreferenceTopK      int   `envconfig:"PREFERENCE_TOP_K" default:"2"`
	QuickSearchLimit    int64 `envconfig:"QUICK_SEARCH_LIMIT" default:"10"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
