package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skyseek/skyseek/internal/cache"
	"github.com/skyseek/skyseek/internal/catalog"
	"github.com/skyseek/skyseek/internal/config"
	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/engine"
	"github.com/skyseek/skyseek/internal/httpserver"
	"github.com/skyseek/skyseek/internal/httpserver/deps"
	"github.com/skyseek/skyseek/internal/logger"
	"github.com/skyseek/skyseek/internal/redis"
	"github.com/skyseek/skyseek/internal/scheduler"
	"github.com/skyseek/skyseek/internal/sources"
	redisstore "github.com/skyseek/skyseek/internal/store/redis"
	"github.com/skyseek/skyseek/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	eng         *engine.Engine
	prober      *scheduler.Prober
	janitor     *scheduler.Janitor
}

func New() *App {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Bundled catalog: without it there is nothing to search locally.
	idx := catalog.NewIndex()
	objects, err := catalog.Load()
	if err != nil {
		log.Errorf("failed to load bundled catalog: %v", err)
		os.Exit(1)
	}
	idx.Update(objects)
	log.Info("catalog loaded", logger.Int("objects", idx.Count()))

	// Remote sources. They start unavailable; the first probe flips
	// them up.
	registry := sources.NewRegistry(log,
		sources.NewSimbad(log),
		sources.NewSesame(log),
	)

	resultCache := cache.New(cfg.CacheTTL)

	// Redis is optional: without it the service just loses recent
	// searches, nothing else.
	var redisClient *goredis.Client
	var recents *redisstore.Store
	if cfg.RedisAddr != "" {
		redisClient, err = redis.Connect(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			log.Warnf("redis unavailable, recent searches disabled: %v", err)
			redisClient = nil
		} else {
			recents = redisstore.NewStore(redisClient, log, cfg.RecentsMax)
		}
	} else {
		log.Info("redis not configured, recent searches disabled")
	}

	enabledSources := make(map[domain.SourceID]bool, len(cfg.EnabledSources))
	for _, id := range cfg.EnabledSources {
		enabledSources[domain.SourceID(id)] = true
	}

	engineDeps := engine.Deps{
		Log:     log,
		Catalog: idx,
		Sources: registry,
		Cache:   resultCache,
	}
	if recents != nil {
		engineDeps.Recents = recents
	}
	eng := engine.New(engineDeps, engine.Options{
		DebounceDelay:  cfg.DebounceDelay,
		OnlineTimeout:  cfg.OnlineTimeout,
		Mode:           engine.ParseMode(cfg.SearchMode),
		EnabledSources: enabledSources,
		GroupBySource:  cfg.GroupBySource,
	})

	prober := scheduler.NewProber(eng, log, cfg.ProbeInterval)
	janitor := scheduler.NewJanitor(resultCache, log, cfg.JanitorInterval)

	d := deps.Deps{
		Logger:      log,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		Engine:      eng,
		Catalog:     idx,
		Cache:       resultCache,
		Sources:     registry,
		RedisClient: redisClient,
		Recents:     recents,
		RecentsMax:  cfg.RecentsMax,
	}

	server := httpserver.New(cfg, log, d)

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      server,
		redisClient: redisClient,
		eng:         eng,
		prober:      prober,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("starting skyseek %s on %s (commit=%s, built=%s, go=%s)",
		version.Version, a.cfg.ListenPort, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.prober.Start(ctx)
	a.logger.Info("availability prober started",
		logger.Duration("interval", a.cfg.ProbeInterval))

	a.janitor.Start(ctx)
	a.logger.Info("cache janitor started",
		logger.Duration("interval", a.cfg.JanitorInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.prober.Stop()
	a.janitor.Stop()
	a.eng.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("skyseek stopped cleanly")
	return nil
}
