package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"fintrack-be/internal/cache"
	"fintrack-be/internal/config"
	"fintrack-be/internal/database"
	"fintrack-be/internal/jwt"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/middleware"
	"fintrack-be/internal/notification"
	"fintrack-be/internal/repository"
	"fintrack-be/internal/router"
	"fintrack-be/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	logger := applog.New(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	applog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		logger.ErrorContext(ctx, "Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "Server stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *applog.Logger) error {
	// Connect to database and bring the schema up to date
	db, err := database.Open(database.Options{
		Driver:     cfg.DatabaseDriver,
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.WithComponent(applog.ComponentCache).WarnContext(ctx, "Failed to connect to Redis, continuing without cache",
				applog.FieldError, err)
		} else {
			logger.WithComponent(applog.ComponentCache).InfoContext(ctx, "Connected to Redis cache")
			cacheClient = redisCache
			defer redisCache.Close()
		}
	}

	// Expense notifications go to the broker when one is configured
	var notifier notification.Notifier = notification.NewLogNotifier(logger)
	if cfg.AMQPURL != "" {
		client, err := notification.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return err
		}
		defer client.Close()
		notifier = client.Notifier()
		logger.WithComponent(applog.ComponentAMQP).InfoContext(ctx, "Connected to AMQP broker",
			applog.FieldQueue, cfg.AMQPQueue)
	}

	repo := repository.NewRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)

	// Initialize rate limiters; their sweepers stop with ctx
	generalRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	writeRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitWriteRPS), cfg.RateLimitWriteBurst)

	if applog.ParseLevel(cfg.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Logger:         logger,
		Tokens:         jwtService,
		Categories:     service.NewCategoryService(repo, cacheClient, cfg.CacheTTL),
		PaymentMethods: service.NewPaymentMethodService(repo, cacheClient, cfg.CacheTTL),
		Expenses: service.NewExpenseService(repo, service.ExpenseNotifications{
			Notifier:  notifier,
			Formatter: notification.NewFormatter(cfg.NotifyLocale, cfg.NotifyCurrencySymbol),
			Recipient: cfg.NotifyRecipient,
		}),
		Incomes:        service.NewIncomeService(repo),
		Profiles:       service.NewUserProfileService(repo),
		Feedback:       service.NewFeedbackService(repo),
		GeneralLimiter: generalRateLimiter,
		WriteLimiter:   writeRateLimiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.InfoContext(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
