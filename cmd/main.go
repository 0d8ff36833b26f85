package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"confidencevoice/internal/analysis"
	"confidencevoice/internal/api"
	"confidencevoice/internal/config"
	"confidencevoice/internal/events"
	"confidencevoice/internal/repository"
	"confidencevoice/internal/retry"
	"confidencevoice/internal/service"
	"confidencevoice/migrations"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func connectDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	attempt := 0
	err = retry.Fixed(10, 3*time.Second).Do(ctx, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			logger.Warn().Err(err).Msgf("Retry %d: failed to connect to DB", attempt)
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func echoLevel(level zerolog.Level) log.Lvl {
	switch level {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return log.DEBUG
	case zerolog.WarnLevel:
		return log.WARN
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return log.ERROR
	default:
		return log.INFO
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := connectDB(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer db.Close()
	logger.Info().Msgf("Connected to DB %s", cfg.DBName)

	if err := migrations.AutoMigrate(ctx, db, retry.Fixed(3, time.Second)); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}

	rdb := config.NewRedisClient(cfg.RedisAddr)
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.OrderTopic)
	defer kafkaWriter.Close()
	publisher := events.NewKafkaPublisher(kafkaWriter)

	store := repository.NewStore(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	bookRepo := repository.NewBookRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	contactRepo := repository.NewContactRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	validator := service.NewValidator()

	userService := service.NewUserService(userRepo, rdb, cfg.JWTSecret, cfg.JWTTTL, validator)
	bookService := service.NewBookService(bookRepo, rdb, cfg.BookCacheTTL, validator)
	categoryService := service.NewCategoryService(categoryRepo, bookService, validator)
	cartService := service.NewCartService(cartRepo, bookRepo)
	orderService := service.NewOrderService(store, orderRepo, publisher, validator)
	paymentService := service.NewPaymentService(paymentRepo, validator)
	checkoutService := service.NewCheckoutService(store, service.NewRedisIdempotencyStore(rdb, cfg.IdempotencyTTL), publisher, validator)
	contactService := service.NewContactService(contactRepo, validator)
	reports := analysis.NewClient(cfg.AnalysisServices(), retry.Exponential(3, 500*time.Millisecond), 10*time.Second)
	analysisService := service.NewAnalysisService(analysisRepo, reports)
	adminService := service.NewAdminService(userRepo, bookRepo, categoryRepo, orderRepo, contactRepo)

	kafkaReader := config.NewKafkaReader(cfg.KafkaBrokers, cfg.OrderTopic, cfg.ConsumerGroup)
	defer kafkaReader.Close()
	consumer := events.NewConsumer(kafkaReader, retry.Exponential(0, time.Second))
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		consumer.Run(ctx)
	}()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLevel(level))
	e.Validator = validator

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     cfg.RateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]interface{}{"success": false, "message": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]interface{}{"success": false, "message": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("20M"))
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.Static("/uploads", cfg.UploadDir)

	api.RegisterRoutes(e, api.Handlers{
		Auth:       api.NewAuthHandler(userService),
		Books:      api.NewBookHandler(bookService, cfg.UploadDir),
		Categories: api.NewCategoryHandler(categoryService),
		Cart:       api.NewCartHandler(cartService),
		Checkout:   api.NewCheckoutHandler(checkoutService),
		Orders:     api.NewOrderHandler(orderService),
		Payments:   api.NewPaymentHandler(paymentService),
		Contact:    api.NewContactHandler(contactService),
		Analysis:   api.NewAnalysisHandler(analysisService),
		Admin:      api.NewAdminHandler(adminService),
	}, api.JWT(cfg.JWTSecret))

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	<-consumerDone
}
