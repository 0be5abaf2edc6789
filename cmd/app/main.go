package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderdesk/cmd"
	httpin "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/postgres/menucatalog"
	"orderdesk/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	shutdownTimeout       = 10 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("No .env file found, relying on process environment")
	}

	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := mustOpenDatabase(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	server := httpin.NewServer(
		root.CreatePlaceOrderCommandHandler(),
		root.CreateSetOrderStatusCommandHandler(),
		root.CreateAdvanceOrderProgressCommandHandler(),
		root.CreateDeleteOrderCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateListOrdersQueryHandler(),
		root.Hub(),
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpin.RequestTimeout(requestTimeout(configs)))
	server.RegisterRoutes(e)

	jobManager := root.CreateJobManager(configs)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Web server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		RequestTimeout:   os.Getenv("REQUEST_TIMEOUT"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           envOrDefault("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        envOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		MenuCacheTTL:     os.Getenv("MENU_CACHE_TTL"),
		SimulateProgress: os.Getenv("SIMULATE_PROGRESS"),
		ProgressInterval: os.Getenv("PROGRESS_INTERVAL"),
	}
}

func requestTimeout(configs cmd.Config) time.Duration {
	if d, err := time.ParseDuration(configs.RequestTimeout); err == nil && d > 0 {
		return d
	}
	return defaultRequestTimeout
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// mustOpenDatabase opens the connection through lib/pq and hands it to GORM,
// then migrates the schema.
func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to initialize ORM: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &menucatalog.MenuItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	return gormDB
}
