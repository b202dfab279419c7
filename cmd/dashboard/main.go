package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dropship-dashboard/config"
	"dropship-dashboard/internal/analyzer"
	"dropship-dashboard/internal/bot"
	"dropship-dashboard/internal/cache"
	"dropship-dashboard/internal/database"
	"dropship-dashboard/internal/dsers"
	"dropship-dashboard/internal/handlers"
	applog "dropship-dashboard/internal/logger"
	"dropship-dashboard/internal/metrics"
	"dropship-dashboard/internal/scheduler"
	"dropship-dashboard/internal/scraper"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Carrega variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := applog.New(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer logger.Sync()

	for _, key := range cfg.GeneratedKeys {
		logger.Warn("key not set, using a random one; sessions reset on restart", zap.String("key", key))
	}

	if err := run(cfg, logger); err != nil {
		fatal(logger, "dashboard stopped", err)
	}
}

var exit = os.Exit

// fatal registra o erro e descarrega o logger antes de sair: os.Exit não
// executa os defers
func fatal(logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	_ = logger.Sync()
	exit(1)
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Banco de dados
	db, err := database.New(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Cache de buscas: Redis quando configurado, memória caso contrário
	var searchCache cache.SearchCache = cache.NewMemoryCache(cfg.SearchCacheTTL)
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.SearchCacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, caching searches in memory", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer redisCache.Close()
			searchCache = redisCache
		}
	}

	// Credenciais salvas têm prioridade sobre o ambiente
	settings, err := db.LoadSettings(ctx)
	if err != nil {
		logger.Warn("failed to load settings", zap.Error(err))
	}
	username, password := cfg.DSersUsername, cfg.DSersPassword
	if settings.HasCredentials() {
		username, password = settings.DSersUsername, settings.DSersPassword
	}

	manager := dsers.NewManager(func() dsers.Browser {
		return dsers.NewChromeBrowser(dsers.ChromeConfig{
			RemoteURL: cfg.ChromeRemoteURL,
			NoSandbox: cfg.ChromeNoSandbox,
			Logger:    logger,
		})
	}, dsers.Options{
		BaseURL:       cfg.DSersBaseURL,
		Username:      username,
		Password:      password,
		StepTimeout:   cfg.BrowserStepTimeout,
		SearchTimeout: cfg.BrowserSearchTimeout,
	}, logger)
	defer manager.Close()

	var backend analyzer.Inference
	if cfg.InferenceURL != "" {
		backend = analyzer.NewHTTPInference(cfg.InferenceURL, cfg.InferenceToken)
		logger.Info("using remote inference", zap.String("url", cfg.InferenceURL))
	}
	an := analyzer.New(backend, logger)

	catalogs := scraper.NewRegistry(manager.Catalog(), scraper.NewDemoCatalog("aliexpress"))
	m := metrics.New()

	// Telegram é opcional
	var telegram *tgbotapi.BotAPI
	var notifier scheduler.Notifier
	if cfg.TelegramBotToken != "" {
		telegram, err = bot.Init(cfg.TelegramBotToken, logger)
		if err != nil {
			logger.Warn("telegram disabled", zap.Error(err))
		} else if n := bot.NewNotifier(telegram, cfg.TelegramChatID, logger); n.Enabled() {
			notifier = n
		}
	}

	sched := scheduler.New(scheduler.DefaultRunners(scheduler.Deps{
		Store:    db,
		Catalogs: catalogs,
		Orders: func() (scheduler.OrderPlatform, error) {
			client, err := manager.Client()
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		Analyzer: an,
		Logger:   logger,
	}), scheduler.Config{
		Store:    db,
		Notifier: notifier,
		Metrics:  m,
		Logger:   logger,
	})

	restored, err := sched.Restore(ctx)
	if err != nil {
		logger.Warn("failed to restore scheduled tasks", zap.Error(err))
	}
	if cfg.SchedulerEnabled {
		sched.Start()
	}
	logger.Info("scheduler ready", zap.Int("restored", restored), zap.Bool("running", cfg.SchedulerEnabled))

	if telegram != nil {
		commands := bot.NewCommands(telegram, cfg.TelegramChatID, sched, db, logger)
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		go commands.Listen(ctx, telegram.GetUpdatesChan(u))
		defer telegram.StopReceivingUpdates()
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handlers.NewRouter(handlers.Deps{
		Store:              db,
		Catalogs:           catalogs,
		Cache:              searchCache,
		Supplier:           manager,
		Analyzer:           an,
		Tasks:              sched,
		Metrics:            m,
		Sessions:           handlers.NewSessionStore(cfg.SessionKey, cfg.CookieSecure),
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.CSRF(cfg.CSRFKey, cfg.CookieSecure, cfg.Port)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
		logger.Info("shutting down")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown failed", zap.Error(err))
	}
	logger.Info("dashboard stopped")
	return nil
}
