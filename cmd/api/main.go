package main

// @title WishFlow API
// @version 1.0
// @description Wishlists with shared views, item images, notes, currency conversion and market data.
// @BasePath /api/v1
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/wishflow/wishflow-backend/db/migrations"
	"github.com/dafibh/wishflow/wishflow-backend/internal/client/coingecko"
	"github.com/dafibh/wishflow/wishflow-backend/internal/client/exchangerate"
	"github.com/dafibh/wishflow/wishflow-backend/internal/client/httpclient"
	"github.com/dafibh/wishflow/wishflow-backend/internal/config"
	"github.com/dafibh/wishflow/wishflow-backend/internal/handler"
	"github.com/dafibh/wishflow/wishflow-backend/internal/middleware"
	"github.com/dafibh/wishflow/wishflow-backend/internal/repository/postgres"
	redisrepo "github.com/dafibh/wishflow/wishflow-backend/internal/repository/redis"
	"github.com/dafibh/wishflow/wishflow-backend/internal/repository/storage"
	"github.com/dafibh/wishflow/wishflow-backend/internal/service"
	"github.com/dafibh/wishflow/wishflow-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Connect to database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(ctx, pool, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Connect to redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping redis")
	}
	log.Info().Msg("Connected to redis")

	// Image storage is optional
	imageStorage, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize image storage")
	}
	if imageStorage == nil {
		log.Warn().Msg("STORAGE_DRIVER not set, item images are disabled")
	} else {
		log.Info().Str("driver", cfg.StorageDriver).Msg("Image storage ready")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	itemRepo := postgres.NewWishItemRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)

	// Outbound clients
	rateClient := exchangerate.New(httpclient.New(httpclient.DefaultConfig("exchangerate")), cfg.ExchangeRateURL)
	marketClient := coingecko.New(httpclient.New(httpclient.DefaultConfig("coingecko")), cfg.CoinGeckoURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	profileService := service.NewProfileService(userRepo)
	currencyService := service.NewCurrencyService(rateClient, cfg.ExchangeRateTTL)
	marketService := service.NewMarketService(marketClient, currencyService, cfg.MarketCacheTTL)
	categoryService := service.NewCategoryService(categoryRepo)
	activityService := service.NewActivityService(activityRepo)
	imageService := service.NewImageService(imageStorage)
	wishlistService := service.NewWishlistService(wishlistRepo, itemRepo, categoryService, activityService, imageService)
	itemService := service.NewWishItemService(itemRepo, wishlistRepo, noteRepo, userRepo, currencyService, activityService, imageService)
	noteService := service.NewNoteService(noteRepo, itemRepo, activityService)
	shareService := service.NewShareService(wishlistRepo, itemRepo, noteRepo, userRepo, itemService)
	dashboardService := service.NewDashboardService(wishlistRepo, itemRepo, userRepo, currencyService, activityService)
	previewService := service.NewLinkPreviewService(httpclient.New(service.PreviewClientConfig()))

	warmCtx, cancelWarm := context.WithTimeout(ctx, 5*time.Second)
	currencyService.Warm(warmCtx)
	cancelWarm()

	// WebSocket hub for live updates
	hub := websocket.NewHub()
	wishlistService.SetEventPublisher(hub)
	itemService.SetEventPublisher(hub)
	noteService.SetEventPublisher(hub)

	// Auth0 bearer JWTs are accepted alongside sessions when configured
	var jwtVerifier middleware.JWTVerifier
	wsValidators := websocket.ChainValidator{authService}
	if cfg.Auth0Enabled() {
		verifier, err := middleware.NewAuth0Verifier(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Auth0 verifier")
		}
		jwtVerifier = verifier

		wsJWT, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
		}
		wsValidators = append(wsValidators, wsJWT)
	}
	sessionAuth := middleware.NewSessionAuthMiddleware(authService, jwtVerifier, cfg.SessionCookieName)

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, sessionAuth, cfg.IsProduction()),
		Profile:   handler.NewProfileHandler(profileService),
		Category:  handler.NewCategoryHandler(categoryService),
		Wishlist:  handler.NewWishlistHandler(wishlistService),
		Item:      handler.NewWishItemHandler(itemService, previewService),
		Note:      handler.NewNoteHandler(noteService),
		Share:     handler.NewShareHandler(shareService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Currency:  handler.NewCurrencyHandler(currencyService),
		Market:    handler.NewMarketHandler(marketService),
	}
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": handler.PingFunc(pool.Ping),
		"redis": handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	})
	wsHandler := handler.NewWebSocketHandler(hub, wsValidators, cfg.SessionCookieName, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Image uploads are capped by the image service; this bounds everything else
	e.Use(echomiddleware.BodyLimit("12M"))

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.Recover())

	// Operational endpoints
	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws", wsHandler.HandleWS)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/api/v1/openapi.json", handler.OpenAPI3Handler([]handler.Server{
		{URL: "/api/v1", Description: "Current host"},
	}))

	// Register API routes
	handler.RegisterRoutes(e, sessionAuth, middleware.RateLimitMiddleware(rateLimiter), handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
