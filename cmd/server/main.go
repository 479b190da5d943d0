package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	catalogapp "github.com/servicehub/backend/internal/application/catalog"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	pricingapp "github.com/servicehub/backend/internal/application/pricing"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/infrastructure/auth"
	"github.com/servicehub/backend/internal/infrastructure/cache"
	"github.com/servicehub/backend/internal/infrastructure/config"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"github.com/servicehub/backend/internal/infrastructure/metrics"
	"github.com/servicehub/backend/internal/infrastructure/persistence"
	"github.com/servicehub/backend/internal/infrastructure/telemetry"
	"github.com/servicehub/backend/internal/interfaces/http/handler"
	"github.com/servicehub/backend/internal/interfaces/http/middleware"
	"github.com/servicehub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.ConfigForEnvironment(cfg.App.Env, cfg.Log.Level)
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	if cfg.Log.Output != "" {
		logCfg.Output = cfg.Log.Output
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}

	logsCfg := telemetryCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogExportEnabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, logsCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}

	log, err := logger.New(logCfg, logProvider.Core(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ServiceHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.Profiling.Enabled,
		ServerAddress:     cfg.Telemetry.Profiling.Endpoint,
		ApplicationName:   cfg.Telemetry.ServiceName,
		Environment:       cfg.App.Env,
		BasicAuthUser:     cfg.Telemetry.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Telemetry.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.App.IsDevelopment(),
		SlowQueryThresh: cfg.Database.SlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		blacklist = auth.NewRedisTokenBlacklist(client)
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis disabled, token revocation is local to this process")
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewProductTemplateRepository(db.DB)
	serviceRepo := persistence.NewServiceTemplateRepository(db.DB)
	ruleRepo := persistence.NewGormPricingRuleRepository(db.DB)

	var businessTypeRepo catalog.BusinessTypeRepository = persistence.NewGormBusinessTypeRepository(db.DB)
	if cfg.Catalog.CacheEnabled {
		cached, err := cache.NewCachedBusinessTypeRepository(businessTypeRepo, cache.BusinessTypeCacheConfig{
			TTL:     cfg.Catalog.CacheTTL,
			MaxCost: cfg.Catalog.CacheMaxCost,
		}, log)
		if err != nil {
			log.Fatal("Failed to create business type cache", zap.Error(err))
		}
		defer cached.Close()
		businessTypeRepo = cached
	}

	// Application services
	apps := identity.DefaultAppRegistry()
	accessSecret, refreshSecret := cfg.JWT.SigningSecrets(cfg.App.Env)
	tokens := auth.NewTokenService(auth.TokenServiceConfig{
		AccessSecret:      accessSecret,
		RefreshSecret:     refreshSecret,
		AccessExpiration:  cfg.JWT.AccessTokenExpiration,
		RefreshExpiration: cfg.JWT.RefreshTokenExpiration,
		Issuer:            cfg.JWT.Issuer,
	})
	authService := identityapp.NewAuthService(tenantRepo, userRepo, businessTypeRepo, apps, tokens, blacklist, log)
	tenantService := identityapp.NewTenantService(tenantRepo, log)
	pricingService := pricingapp.NewService(businessTypeRepo, productRepo, serviceRepo, ruleRepo,
		pricing.DefaultRegistry(), pricingapp.ServiceConfig{QuoteValidity: cfg.Pricing.QuoteValidity}, log)
	businessTypeService := catalogapp.NewBusinessTypeService(businessTypeRepo, productRepo, serviceRepo, ruleRepo, log)
	productTemplateService := catalogapp.NewTemplateService(productRepo, businessTypeRepo, log)
	serviceTemplateService := catalogapp.NewTemplateService(serviceRepo, businessTypeRepo, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.App.IsProduction()

	engine.Use(middleware.RequestID(), logger.Recovery(log), logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics())
	}
	engine.Use(
		middleware.SecureHeadersWithConfig(securityCfg),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
	}

	healthHandler := handler.NewHealthHandler(db, cfg.App.Env, cfg.App.Version)
	engine.GET("/health", healthHandler.Health)
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	security := router.Security{
		Authenticator: authService,
		Tenants:       authService,
		Apps:          apps,
		Logger:        log,
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		security.AuthLimit = middleware.RateLimit(authLimiter)
	}

	handlers := router.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		Tenant:          handler.NewTenantHandler(tenantService),
		Pricing:         handler.NewPricingHandler(pricingService),
		BusinessType:    handler.NewBusinessTypeHandler(businessTypeService),
		ProductTemplate: handler.NewTemplateHandler(productTemplateService),
		ServiceTemplate: handler.NewTemplateHandler(serviceTemplateService),
	}
	handlers.ExposeErrors(cfg.App.IsDevelopment())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, handlers, security)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down log provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
