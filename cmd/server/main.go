package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/middleware"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"

	catCache "github.com/fekuna/omnipos-catalog-service/internal/category/cache"
	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"

	charH "github.com/fekuna/omnipos-catalog-service/internal/characteristic/handler"
	charRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/characteristic/repository"
	charUCPkg "github.com/fekuna/omnipos-catalog-service/internal/characteristic/usecase"

	linkH "github.com/fekuna/omnipos-catalog-service/internal/charlink/handler"
	linkRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/charlink/repository"
	linkUCPkg "github.com/fekuna/omnipos-catalog-service/internal/charlink/usecase"

	filterH "github.com/fekuna/omnipos-catalog-service/internal/filter/handler"
	filterRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/filter/repository"
	filterUCPkg "github.com/fekuna/omnipos-catalog-service/internal/filter/usecase"

	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodListenerPkg "github.com/fekuna/omnipos-catalog-service/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	statsH "github.com/fekuna/omnipos-catalog-service/internal/stats/handler"
	statsRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/stats/repository"
	statsUCPkg "github.com/fekuna/omnipos-catalog-service/internal/stats/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		ServiceName:       cfg.Server.ServiceName,
	})
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(cfg.Metrics.Prefix, registry)

	// 5. Initialize Redis. The tree is served uncached when Redis is down.
	var treeCache category.TreeCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, category tree cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			treeCache = catCache.NewRedisTreeCache(redisClient, time.Duration(cfg.Redis.TreeTTL)*time.Second, appMetrics, appLogger)
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	charRepo := charRepoPkg.NewPGRepository(db)
	linkRepo := linkRepoPkg.NewPGRepository(db)
	filterRepo := filterRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	statsRepo := statsRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, treeCache, appLogger)
	charUC := charUCPkg.NewCharacteristicUseCase(charRepo, appLogger)
	linkUC := linkUCPkg.NewLinkUseCase(linkRepo, charUC, treeCache, appLogger)
	filterUC := filterUCPkg.NewFilterUseCase(filterRepo, charUC, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, linkRepo, appLogger)
	statsUC := statsUCPkg.NewStatsUseCase(statsRepo, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Spec-sync listener
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		specListener := prodListenerPkg.NewSpecListener(kafkaConsumer, prodUC, appMetrics, appLogger)
		go specListener.Start(ctx)
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 9. HTTP server
	resp := httpapi.NewResponder(locale.NewTranslator(), appLogger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(appLogger))
	e.Use(appMetrics.Middleware)

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	catH.NewCategoryHandler(catUC, resp, appMetrics, appLogger).Register(api)
	charH.NewCharacteristicHandler(charUC, resp, appMetrics, appLogger).Register(api)
	linkH.NewLinkHandler(linkUC, resp, appMetrics, appLogger).Register(api)
	filterH.NewFilterHandler(filterUC, resp, appMetrics, appLogger).Register(api)
	prodH.NewProductHandler(prodUC, resp, appMetrics, appLogger).Register(api)
	statsH.NewStatsHandler(statsUC).Register(api)

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := e.Start(listenAddr(cfg.Server.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 10. gRPC health server
	lis, err := net.Listen("tcp", listenAddr(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus(cfg.Server.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.Server.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
