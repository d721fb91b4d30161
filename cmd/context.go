package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/conneroisu/basset/internal/cachemap"
	"github.com/conneroisu/basset/internal/config"
	"github.com/conneroisu/basset/internal/engine"
	"github.com/conneroisu/basset/internal/fetcher"
	"github.com/conneroisu/basset/internal/logging"
	"github.com/conneroisu/basset/internal/storage"
)

// runContext wires the collaborators every command needs: resolved
// configuration, the storage disk, the cache map and the engine. One
// context is one "run" in the engine's sense; its loaded set lives and
// dies with it.
type runContext struct {
	cfg    *config.Config
	fs     afero.Fs
	disk   *storage.LocalDisk
	cache  *cachemap.Map
	engine *engine.Internalizer
	logger logging.Logger
}

func newRunContext() (*runContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})

	fs := afero.NewOsFs()

	appRoot, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	disk := storage.NewLocalDisk(fs, cfg.Storage.Root, cfg.Storage.BaseURL)

	cache, err := cachemap.New(fs, cachemap.Config{
		Enabled: cfg.CacheMap.Enabled,
		Root:    cfg.CacheMap.Root,
		Path:    cfg.CacheMap.Path,
		AppRoot: appRoot,
		BaseURL: cfg.Storage.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	return &runContext{
		cfg:    cfg,
		fs:     fs,
		disk:   disk,
		cache:  cache,
		engine: engine.New(cfg, disk, fetcher.New(), fs, cache, logger, appRoot),
		logger: logger,
	}, nil
}
