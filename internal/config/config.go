// Package config provides configuration management for basset using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files and environment variable
// overrides with a BASSET_ prefix. It resolves the storage disk, the base
// internalization path, the cache-busting token, and the cache-map settings
// before the internalization engine is constructed; the engine itself never
// reads ambient configuration.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Assets   AssetsConfig   `yaml:"assets"`
	CacheMap CacheMapConfig `yaml:"cache_map"`
	Watch    WatchConfig    `yaml:"watch"`
}

// StorageConfig describes the disk internalized assets are written to.
type StorageConfig struct {
	// Root is the local directory backing the disk.
	Root string `yaml:"root"`
	// BaseURL is the public URL the root directory is served under.
	BaseURL string `yaml:"base_url"`
}

// AssetsConfig controls where assets land on the disk and how emitted URLs
// are cache-busted.
type AssetsConfig struct {
	// Path is the base internalization path, relative to the disk root.
	Path string `yaml:"path"`
	// CacheBusting is appended to every emitted URL as a ?token query
	// string when non-empty.
	CacheBusting string `yaml:"cache_busting"`
}

// CacheMapConfig controls the persistent identifier->path index.
type CacheMapConfig struct {
	Enabled bool `yaml:"enabled"`
	// Root is the directory the backing file lives under.
	Root string `yaml:"root"`
	// Path is the backing file prefix; the file is <root>/<path>.basset.
	Path string `yaml:"path"`
}

// WatchConfig lists local directories re-internalized on change by the
// watch command.
type WatchConfig struct {
	Paths    []string      `yaml:"paths"`
	Debounce time.Duration `yaml:"debounce"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults only if not explicitly set
	if !viper.IsSet("storage.root") && config.Storage.Root == "" {
		config.Storage.Root = "./public"
	}
	if !viper.IsSet("storage.base_url") && config.Storage.BaseURL == "" {
		config.Storage.BaseURL = "http://localhost:8080"
	}
	if !viper.IsSet("assets.path") && config.Assets.Path == "" {
		config.Assets.Path = "basset"
	}

	// Handle settings set via viper (workaround for viper nested-key handling)
	if viper.IsSet("cache_map.enabled") {
		config.CacheMap.Enabled = viper.GetBool("cache_map.enabled")
	}
	if viper.IsSet("cache_map.root") && config.CacheMap.Root == "" {
		config.CacheMap.Root = viper.GetString("cache_map.root")
	}
	if config.CacheMap.Root == "" {
		config.CacheMap.Root = "./storage"
	}
	if config.CacheMap.Path == "" {
		config.CacheMap.Path = "basset/cache-map"
	}

	if viper.IsSet("watch.paths") && len(config.Watch.Paths) == 0 {
		config.Watch.Paths = viper.GetStringSlice("watch.paths")
	}
	if config.Watch.Debounce <= 0 {
		config.Watch.Debounce = 300 * time.Millisecond
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
