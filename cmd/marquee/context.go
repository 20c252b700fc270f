package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/progress"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/watchlist"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *adapter.Config
	logger     *slog.Logger
	configErr  error
}

// environment is the opened local state a command works against
type environment struct {
	cfg       *adapter.Config
	logger    *slog.Logger
	store     domain.StateStore
	images    domain.ImageResolver
	watchlist *watchlist.Service
	progress  *progress.Service
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads configuration and the logger once per invocation
func (c *commandContext) ensureConfig() (*adapter.Config, *slog.Logger, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := adapter.LoadConfig(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}

		logger, err := adapter.SetupLogger(&cfg.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = adapter.NullLogger()
		}
		slog.SetDefault(logger)

		c.config = cfg
		c.logger = logger
	})
	return c.config, c.logger, c.configErr
}

// withEnv opens the configured store, runs fn, and closes the store again
func (c *commandContext) withEnv(fn func(*environment) error) error {
	cfg, logger, err := c.ensureConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Storage.Backend, cfg.Storage.Dir, logger)
	if err != nil {
		return fmt.Errorf("open %s store in %s: %w", cfg.Storage.Backend, cfg.Storage.Dir, err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}()

	return fn(&environment{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		images:    source.NewImageResolver(&cfg.Metadata, logger),
		watchlist: watchlist.NewService(st, logger),
		progress:  progress.NewService(st, logger),
	})
}
