package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"fitbalance-bot/config"
	telegram "fitbalance-bot/internal/api"
	"fitbalance-bot/internal/container"
	"fitbalance-bot/internal/domain/port"
	"fitbalance-bot/internal/infrastructure/cache"
	"fitbalance-bot/internal/infrastructure/export"
	"fitbalance-bot/internal/infrastructure/food"
	"fitbalance-bot/internal/infrastructure/storage"
	"fitbalance-bot/internal/infrastructure/translate"
	"fitbalance-bot/internal/infrastructure/weather"
	"fitbalance-bot/internal/metrics"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "fitbalance",
	Short:         "Telegram-бот для учёта воды, калорий и тренировок",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		return run(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config (or set CONFIG_PATH env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	lookupCache, closeCache := newLookupCache(ctx, cfg, logger)
	defer func() {
		if err := closeCache(); err != nil {
			logger.Warn("failed to close food cache", zap.Error(err))
		}
	}()

	foodLookup := cache.NewFoodLookup(
		food.NewClient(httpClient, cfg.Food.BaseURL, logger.Named("food")),
		lookupCache,
		logger.Named("cache"),
	)

	catalog := cfg.Catalog()
	appContainer := container.New(container.Deps{
		Users:              storage.NewMemoryUserRepository(),
		Weather:            weather.NewClient(httpClient, cfg.Weather.BaseURL, cfg.Weather.APIKey, logger.Named("weather")),
		Translator:         translate.NewClient(httpClient, cfg.Translate.BaseURL, logger.Named("translate")),
		Food:               foodLookup,
		Exporter:           export.NewXLSXExporter(),
		Catalog:            &catalog,
		DefaultTemperature: cfg.Weather.DefaultTemperature,
		SourceLang:         cfg.Translate.Source,
		TargetLang:         cfg.Translate.Target,
		Logger:             logger,
	})

	m := metrics.New(prometheus.DefaultRegisterer)
	router := telegram.NewRouter(appContainer, m, logger.Named("router"))

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.Debug, router, logger.Named("bot"))
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Остановка бота завершает и сервер метрик
		defer cancel()
		logger.Info("bot is running")
		return bot.Run(gctx)
	})

	if cfg.Monitoring.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.Monitoring.MetricsAddr, Handler: metricsHandler()}
		g.Go(func() error {
			logger.Info("metrics server started", zap.String("addr", cfg.Monitoring.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 3*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	logger.Info("bot stopped")
	return err
}

func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// newLookupCache выбирает Redis, если он задан и доступен, иначе кэш в памяти.
// Возвращаемая функция закрывает соединение с Redis при остановке.
func newLookupCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.LookupCache, func() error) {
	noop := func() error { return nil }
	if cfg.Redis.Address == "" {
		return cache.NewMemoryCache(cfg.Cache.TTL), noop
	}

	client := cache.NewRedisClient(cache.RedisOptions{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx, client); err != nil {
		logger.Warn("redis unavailable, using in-memory cache",
			zap.String("addr", cfg.Redis.Address),
			zap.Error(err),
		)
		_ = client.Close()
		return cache.NewMemoryCache(cfg.Cache.TTL), noop
	}

	logger.Info("food cache in redis", zap.String("addr", cfg.Redis.Address))
	return cache.NewRedisCache(client, cfg.Cache.TTL), client.Close
}
