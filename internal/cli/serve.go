package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/strataviz/harris/internal/api"
	"github.com/strataviz/harris/pkg/cache"
	"github.com/strataviz/harris/pkg/pipeline"
	"github.com/strataviz/harris/pkg/store"
)

const defaultServeAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		redisAddr  string
		mongoURI   string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the layout pipeline over HTTP:

  POST /v1/layout              compute a layout for a posted matrix
  GET  /v1/matrices            list stored matrices
  PUT  /v1/matrices/{name}     store a matrix under a name
  GET  /v1/matrices/{name}     fetch a stored matrix
  GET  /v1/matrices/{name}/layout  compute its layout

Without --mongo-uri, stored matrices live in memory and vanish on restart.
Without --redis-addr, layouts are cached on the local filesystem.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&configPath, "config", "", "harris.toml config file")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for shared layout caching")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for matrix persistence")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

// runServe assembles the cache, store, and runner, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, configPath, redisAddr, mongoURI string, noCache bool) error {
	fileCfg, err := loadConfig(firstNonEmpty(configPath, configFileName), configPath != "")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if redisAddr == "" {
		redisAddr = fileCfg.Redis.Addr
	}
	if mongoURI == "" {
		mongoURI = fileCfg.Mongo.URI
	}
	addr = firstNonEmpty(addr, fileCfg.Serve.Addr, defaultServeAddr)

	layoutCache, err := c.serveCache(ctx, redisAddr, fileCfg.Redis, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(layoutCache)
	defer runner.Close()

	st, err := c.serveStore(ctx, mongoURI, fileCfg.Mongo)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	server := api.NewServer(runner, st, c.Logger)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (c *CLI) serveCache(ctx context.Context, redisAddr string, redisCfg cache.RedisConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		redisCfg.Addr = redisAddr
		rc, err := cache.NewRedisCache(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}

func (c *CLI) serveStore(ctx context.Context, mongoURI string, mongoCfg store.MongoConfig) (store.Store, error) {
	if mongoURI == "" {
		c.Logger.Warn("no mongo uri configured, stored matrices are in-memory only")
		return store.NewMemStore(), nil
	}
	mongoCfg.URI = mongoURI
	st, err := store.NewMongoStore(ctx, mongoCfg)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("using mongodb store", "database", mongoCfg.Database)
	return st, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
