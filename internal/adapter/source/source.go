package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// NewClient creates the metadata client described by the configuration.
// This factory function abstracts away the specific backend implementation.
func NewClient(cfg *adapter.MetadataConfig, logger *slog.Logger) (domain.MetadataClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("metadata config is nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("metadata base URL is required")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("metadata API key is required (set metadata.api_key or MARQUEE_METADATA_API_KEY)")
	}

	return tmdb.NewClient(cfg.BaseURL, cfg.ImageBaseURL, cfg.APIKey, logger, tmdb.WithLanguage(cfg.Language)), nil
}

// NewImageResolver builds image URLs from the configured CDN root.
// It never touches the network, so no API key is needed.
func NewImageResolver(cfg *adapter.MetadataConfig, logger *slog.Logger) domain.ImageResolver {
	return tmdb.NewClient(cfg.BaseURL, cfg.ImageBaseURL, "", logger)
}
