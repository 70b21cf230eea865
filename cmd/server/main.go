package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"platelink/internal/config"
	"platelink/internal/handlers"
	"platelink/internal/middleware"
	"platelink/internal/repositories/mongodb"
	"platelink/internal/services"
	"platelink/internal/utils"
	"platelink/pkg/cache"
	"platelink/pkg/database"
	"platelink/pkg/logger"
	"platelink/pkg/retry"
	"platelink/routes"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig := &logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	}
	appLogger, err := logger.NewLogger(logConfig)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	auditLogger, err := logger.NewAuditLogger(logConfig)
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}

	// Mongo may come up after us in compose-style deployments; retry the
	// initial connection before giving up.
	var db *database.MongoDB
	err = retry.Do(context.Background(), retry.DefaultConfig(), func(error) bool { return true }, func(ctx context.Context) error {
		var connErr error
		db, connErr = database.NewMongoDB(&database.DatabaseConfig{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		return connErr
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	var cacheService mongodb.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			// The cache is an optimization; plate lookups fall through
			// to Mongo without it.
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			cacheService = redisCache
			defer redisCache.Close()
		}
	}

	userRepo := mongodb.NewUserRepository(db.Database)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database, cacheService)
	ledgerRepo := mongodb.NewLedgerRepository(db)
	referralRepo := mongodb.NewReferralRepository(db)
	activityRepo := mongodb.NewActivityRepository(db.Database)

	accountService := services.NewAccountService(userRepo, ledgerRepo, cfg.Security, cfg.Rewards, appLogger)
	registryService := services.NewRegistryService(vehicleRepo, userRepo, activityRepo, appLogger)
	ledgerService := services.NewLedgerService(ledgerRepo, appLogger)
	referralService := services.NewReferralService(referralRepo, ledgerRepo, cfg.Rewards, appLogger)
	searchService := services.NewSearchService(vehicleRepo, userRepo, ledgerRepo, activityRepo, cfg.Rewards, appLogger, auditLogger)
	activityService := services.NewActivityService(activityRepo, vehicleRepo)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	routes.Setup(v1, &routes.Handlers{
		Account:  handlers.NewAccountHandler(accountService),
		Vehicle:  handlers.NewVehicleHandler(registryService, activityService),
		Search:   handlers.NewSearchHandler(searchService),
		Wallet:   handlers.NewWalletHandler(ledgerService),
		Referral: handlers.NewReferralHandler(referralService),
		Activity: handlers.NewActivityHandler(activityService),
	}, cfg.Security)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": utils.AppName,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting %s on %s", utils.AppName, addr)
	if err := router.Run(addr); err != nil {
		appLogger.Fatalf("Server exited: %v", err)
	}
}
