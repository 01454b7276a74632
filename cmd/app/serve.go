package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelagency/api"
	"github.com/Domenick1991/travelagency/config"
	"github.com/Domenick1991/travelagency/internal/auth"
	"github.com/Domenick1991/travelagency/internal/bootstrap"
	"github.com/Domenick1991/travelagency/internal/cache"
	"github.com/Domenick1991/travelagency/internal/database"
	"github.com/Domenick1991/travelagency/internal/kafka"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/Domenick1991/travelagency/internal/observability/tracing"
	"github.com/Domenick1991/travelagency/internal/repository"
	"github.com/Domenick1991/travelagency/internal/service/customers"
	"github.com/Domenick1991/travelagency/internal/service/orders"
	"github.com/Domenick1991/travelagency/internal/service/staff"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(log)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.Environment)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateOnStart {
		if _, err := database.NewMigrator(db, log).Up(ctx); err != nil {
			return err
		}
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return err
	}

	staffRepo := repository.NewStaffRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	var customerOpts []customers.CustomerServiceOption
	var orderOpts []orders.OrderServiceOption

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis,
			time.Duration(cfg.Cache.CustomerTTLSeconds)*time.Second,
			time.Duration(cfg.Cache.RevenueTTLSeconds)*time.Second,
		)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unreachable, reads will fall through to postgres", slog.String("error", err.Error()))
		}
		customerOpts = append(customerOpts, customers.WithCache(redisCache))
		orderOpts = append(orderOpts, orders.WithCache(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, log)
		defer producer.Close()
		customerOpts = append(customerOpts, customers.WithProducer(producer))
		orderOpts = append(orderOpts, orders.WithProducer(producer))
	}

	router := api.NewRouter(api.RouterDeps{
		Staff:          staff.NewStaffService(staffRepo, hasher, tokens),
		Customers:      customers.NewCustomerService(customerRepo, customerOpts...),
		Orders:         orders.NewOrderService(orderRepo, customerRepo, orderOpts...),
		Tokens:         tokens,
		DBPing:         func(ctx context.Context) error { return database.Health(ctx, db) },
		Logger:         log,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	return bootstrap.Run(ctx, cfg.HTTP, router, log)
}
