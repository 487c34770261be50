package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Catalog   CatalogConfig
	Favorites FavoritesConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// APIConfig holds settings for the upstream video-hosting API. Requests go
// through the relay prefix so the service can run behind the same CORS
// constraints as a browser client.
type APIConfig struct {
	BaseURL     string        `envconfig:"CATALOG_API_BASE_URL" default:"https://doodapi.com/api"`
	ProxyPrefix string        `envconfig:"CATALOG_PROXY_PREFIX" default:"https://corsproxy.io/?"`
	Key         string        `envconfig:"CATALOG_API_KEY" default:"497584ycgrio4h93tbtz0u"`
	Timeout     time.Duration `envconfig:"CATALOG_API_TIMEOUT" default:"30s"`
	UserAgent   string        `envconfig:"CATALOG_USER_AGENT"`
	EmbedBase   string        `envconfig:"CATALOG_EMBED_BASE_URL" default:"https://dood.wf/e"`
}

// CatalogConfig holds catalog behavior settings
type CatalogConfig struct {
	PageSize        int  `envconfig:"CATALOG_PAGE_SIZE" default:"20"`
	SearchScanLimit int  `envconfig:"CATALOG_SEARCH_SCAN_LIMIT" default:"50"`
	RelatedLimit    int  `envconfig:"CATALOG_RELATED_LIMIT" default:"15"`
	DemoFallback    bool `envconfig:"CATALOG_DEMO_FALLBACK" default:"true"`
}

// FavoritesConfig holds favorites store configuration
type FavoritesConfig struct {
	Path string `envconfig:"FAVORITES_DB_PATH" default:"data/favorites"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	if err := envconfig.Process("", &cfg.API); err != nil {
		return nil, fmt.Errorf("failed to load api config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Catalog); err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Favorites); err != nil {
		return nil, fmt.Errorf("failed to load favorites config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("CATALOG_API_BASE_URL is required")
	}
	if c.API.Key == "" {
		return fmt.Errorf("CATALOG_API_KEY is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("CATALOG_API_TIMEOUT must be positive")
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}
	if c.Catalog.SearchScanLimit <= 0 {
		return fmt.Errorf("CATALOG_SEARCH_SCAN_LIMIT must be positive")
	}
	if c.Catalog.RelatedLimit <= 0 {
		return fmt.Errorf("CATALOG_RELATED_LIMIT must be positive")
	}
	if c.Favorites.Path == "" {
		return fmt.Errorf("FAVORITES_DB_PATH is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	return nil
}
