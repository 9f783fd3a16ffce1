package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/config"
	"github.com/hieudt/minipos/internal/auth"
	"github.com/hieudt/minipos/internal/broker"
	"github.com/hieudt/minipos/internal/cache"
	"github.com/hieudt/minipos/internal/database"
	"github.com/hieudt/minipos/internal/logger"
	"github.com/hieudt/minipos/internal/search"

	custH "github.com/hieudt/minipos/internal/customer/handler"
	custRepoPkg "github.com/hieudt/minipos/internal/customer/repository"
	custUCPkg "github.com/hieudt/minipos/internal/customer/usecase"

	ledgerH "github.com/hieudt/minipos/internal/ledger/handler"
	ledgerRepoPkg "github.com/hieudt/minipos/internal/ledger/repository"
	ledgerUCPkg "github.com/hieudt/minipos/internal/ledger/usecase"

	orderH "github.com/hieudt/minipos/internal/order/handler"
	orderRepoPkg "github.com/hieudt/minipos/internal/order/repository"
	orderUCPkg "github.com/hieudt/minipos/internal/order/usecase"

	prodH "github.com/hieudt/minipos/internal/product/handler"
	prodRepoPkg "github.com/hieudt/minipos/internal/product/repository"
	prodUCPkg "github.com/hieudt/minipos/internal/product/usecase"

	stockinH "github.com/hieudt/minipos/internal/stockin/handler"
	stockinRepoPkg "github.com/hieudt/minipos/internal/stockin/repository"
	stockinUCPkg "github.com/hieudt/minipos/internal/stockin/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&cfg.Logger)
	defer appLogger.Sync()

	db, err := database.NewPostgres(&cfg.Postgres)
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		appLogger.Warn("could not connect to Redis (caching and stock locks disabled)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	esClient, err := search.NewClient(&cfg.Elastic)
	if err != nil {
		appLogger.Warn("could not connect to Elasticsearch (search falls back to SQL)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	var events broker.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := broker.NewKafkaPublisher(&cfg.Kafka)
		defer kafkaPublisher.Close()
		events = kafkaPublisher
		appLogger.Info("connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	ledgerRepo := ledgerRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db, ledgerRepo)
	stockinRepo := stockinRepoPkg.NewPGRepository(db, ledgerRepo)
	custRepo := custRepoPkg.NewPGRepository(db)

	ledgerUC := ledgerUCPkg.NewLedgerUseCase(ledgerRepo, redisClient, events, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, prodRepo, events, appLogger)
	stockinUC := stockinUCPkg.NewStockInUseCase(stockinRepo, prodRepo, events, appLogger)
	custUC := custUCPkg.NewCustomerUseCase(custRepo, appLogger)

	if cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(auth.Middleware(cfg.JWT.SecretKey))

	prodH.NewHandler(prodUC, appLogger).MapRoutes(api.Group("/products"))
	orderH.NewHandler(orderUC, appLogger).MapRoutes(api.Group("/orders"))
	stockinH.NewHandler(stockinUC, appLogger).MapRoutes(api.Group("/stock-in-orders"))
	ledgerH.NewHandler(ledgerUC, appLogger).MapRoutes(api.Group("/inventory"))
	custH.NewHandler(custUC, appLogger).MapRoutes(api.Group("/customers"))

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
