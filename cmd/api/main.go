package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fopassistant/api/swagger" // swagger docs
	"fopassistant/internal/config"
	"fopassistant/internal/currency"
	"fopassistant/internal/database"
	"fopassistant/internal/exchange"
	"fopassistant/internal/handler"
	"fopassistant/internal/logger"
	"fopassistant/internal/repository"
	"fopassistant/internal/service"
	"fopassistant/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           FOP Assistant API
// @version         1.0
// @description     Tax calculation and multi-currency ledger for Ukrainian sole proprietors (FOP).
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg := config.Load("configs/.env")
	logger.Init(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.L.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		logger.L.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Connected to PostgreSQL successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	settingsRepo := repository.NewSettingsRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)
	txManager := repository.NewTransactionManager(db)

	rates := exchange.NewResolver(exchange.NewNBUClient(cfg.NBUBaseURL, cfg.RateLookupTimeout))
	normalizer := currency.NewNormalizer(rates)

	settingsService := service.NewSettingsService(settingsRepo, auditRepo, txManager)
	taxService := service.NewTaxService(settingsRepo)
	transactionService := service.NewTransactionService(transactionRepo, auditRepo, txManager, normalizer, wsHub)
	categoryService := service.NewCategoryService(categoryRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo)
	statisticsService := service.NewStatisticsService(statisticsRepo)
	auditService := service.NewAuditService(auditRepo)

	// Set up Gin Router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	api := router.Group("/api")
	handler.NewSettingsHandler(settingsService).RegisterRoutes(api)
	handler.NewTaxHandler(taxService).RegisterRoutes(api)
	handler.NewTransactionHandler(transactionService).RegisterRoutes(api)
	handler.NewStatisticsHandler(statisticsService).RegisterRoutes(api)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api)
	handler.NewProfileHandler(profileService).RegisterRoutes(api)
	handler.NewAuditHandler(auditService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.L.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
