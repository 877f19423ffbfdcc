package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rloyola/panoptes/internal/cache"
	"github.com/rloyola/panoptes/internal/config"
	"github.com/rloyola/panoptes/internal/httpclient"
	"github.com/rloyola/panoptes/internal/match"
	"github.com/rloyola/panoptes/internal/search"
	"github.com/rloyola/panoptes/internal/server"
	"github.com/rloyola/panoptes/internal/source"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	logg := mustLogger()
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("loading configuration", zap.Error(err))
	}

	svc, cleanup := buildService(cfg, logg)
	defer cleanup()

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(svc, logg, version).Router(),
	}

	go func() {
		logg.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("http server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Warn("shutdown incomplete", zap.Error(err))
	}
}

func mustLogger() *zap.Logger {
	logg, err := newLogger()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	return logg
}

// buildService wires the shared search stack used by serve and watch.
// The returned cleanup closes the cache connection when one was opened.
func buildService(cfg *config.Config, logg *zap.Logger) (*search.Service, func()) {
	client, err := httpclient.New(httpclient.Options{
		ProxyURL: cfg.ProxyURL,
		Timeout:  cfg.SourceTimeout,
		Logger:   logg,
	})
	if err != nil {
		logg.Fatal("building http client", zap.Error(err))
	}

	cleanup := func() {}
	var store search.Cache
	if cfg.RedisURL != "" {
		c, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logg.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			logg.Info("redis cache connected", zap.Duration("ttl", cfg.CacheTTL))
			store = c
			cleanup = func() { c.Close() }
		}
	}

	scorer := match.Default()
	if cfg.Score.KeywordWeight > 0 {
		scorer.KeywordWeight = cfg.Score.KeywordWeight
	}
	if cfg.Score.TitleBonus > 0 {
		scorer.TitleBonus = cfg.Score.TitleBonus
	}

	sources := source.Registry(client, source.Config{
		AdzunaAppID:   cfg.Adzuna.AppID,
		AdzunaAppKey:  cfg.Adzuna.AppKey,
		AdzunaCountry: cfg.Adzuna.Country,
	}, logg)

	svc := search.New(sources, search.Options{
		Scorer:          scorer,
		Cache:           store,
		Logger:          logg,
		Timeout:         cfg.SearchTimeout,
		DefaultLocation: cfg.DefaultLocation,
	})

	return svc, cleanup
}
