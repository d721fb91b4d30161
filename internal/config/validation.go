package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/conneroisu/basset/internal/errors"
)

// Validate checks that the resolved configuration is usable before the
// engine is constructed. Errors here are the only configuration errors the
// rest of the tool ever sees.
func Validate(config *Config) error {
	if strings.TrimSpace(config.Storage.Root) == "" {
		return errors.NewConfigError("storage_root", "storage.root must not be empty", nil)
	}

	if config.Storage.BaseURL != "" {
		parsed, err := url.Parse(config.Storage.BaseURL)
		if err != nil {
			return errors.NewConfigError("storage_base_url",
				fmt.Sprintf("storage.base_url %q is not a valid URL", config.Storage.BaseURL), err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.NewConfigError("storage_base_url",
				fmt.Sprintf("storage.base_url must use http or https, got %q", parsed.Scheme), nil)
		}
	}

	if strings.Contains(config.Assets.Path, "..") {
		return errors.NewConfigError("assets_path",
			fmt.Sprintf("assets.path %q contains path traversal", config.Assets.Path), nil)
	}

	if strings.Contains(config.CacheMap.Path, "..") {
		return errors.NewConfigError("cache_map_path",
			fmt.Sprintf("cache_map.path %q contains path traversal", config.CacheMap.Path), nil)
	}

	if config.CacheMap.Enabled && strings.TrimSpace(config.CacheMap.Path) == "" {
		return errors.NewConfigError("cache_map_path",
			"cache_map.path must not be empty when the cache map is enabled", nil)
	}

	// The cache-busting token ends up in a query string; reject characters
	// that would break the emitted markup.
	for _, c := range []string{"\"", "'", "<", ">", " "} {
		if strings.Contains(config.Assets.CacheBusting, c) {
			return errors.NewConfigError("cache_busting",
				fmt.Sprintf("assets.cache_busting contains unsafe character %q", c), nil)
		}
	}

	return nil
}
