package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/yasminalves16/restaurante/config"
	"github.com/yasminalves16/restaurante/internal/cache"
	"github.com/yasminalves16/restaurante/internal/database"
	"github.com/yasminalves16/restaurante/internal/handlers"
	"github.com/yasminalves16/restaurante/internal/logger"
	"github.com/yasminalves16/restaurante/internal/maintenance"
	"github.com/yasminalves16/restaurante/internal/producer"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/router"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var menuCache service.MenuCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		menuCache = redisClient
		log.Info("Redis menu cache enabled")
	} else {
		log.Info("Redis menu cache disabled")
	}

	var events service.EventBus
	if cfg.Kafka.Enabled() {
		orderProducer := producer.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer orderProducer.Close()
		events = orderProducer
		log.Info("Kafka order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))
	}

	menuSvc := service.NewMenuService(repos, menuCache, log)
	customerSvc := service.NewCustomerService(repos, log)
	orderSvc := service.NewOrderService(repos, events, log, service.OrderOptions{
		InvalidMesa: service.InvalidMesaPolicy(cfg.Comanda.InvalidMesaPolicy),
	})
	maintenanceSvc := maintenance.NewService(repos, customerSvc, log)

	var scheduler *maintenance.Scheduler
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	if cfg.StatsReconcileInterval > 0 {
		scheduler = maintenance.NewScheduler(maintenanceSvc, cfg.StatsReconcileInterval, log)
		scheduler.Start(schedCtx)
	}

	r := router.Router(router.Handlers{
		Menu:        handlers.NewMenuHandler(menuSvc, log),
		Orders:      handlers.NewOrderHandler(orderSvc, log),
		Customers:   handlers.NewCustomerHandler(customerSvc, log),
		Maintenance: handlers.NewMaintenanceHandler(maintenanceSvc, log),
	}, cfg.CORS.AllowOrigins, log)

	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	if scheduler != nil {
		scheduler.Stop()
	}
	schedCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
		return
	}
	log.Info("HTTP server stopped gracefully")
}
