package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yasminalves16/restaurante/config"
	"github.com/yasminalves16/restaurante/internal/database"
	"github.com/yasminalves16/restaurante/internal/logger"
	"github.com/yasminalves16/restaurante/internal/maintenance"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func usage() {
	fmt.Println("Usage: go run ./cmd/maintenance [stats|backfill|dedupe|all]")
	fmt.Println("  stats    - recompute every customer's total_orders and total_spent")
	fmt.Println("  backfill - link orders without a customer to the customer owning their phone")
	fmt.Println("  dedupe   - merge customers sharing a phone (run before migrating an old database)")
	fmt.Println("  all      - dedupe, backfill, then stats")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	dbCfg := config.LoadDB(log)

	db := database.ConnectDB(&dbCfg.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	svc := maintenance.NewService(repos, service.NewCustomerService(repos, log), log)

	ctx := context.Background()

	switch os.Args[1] {
	case "stats":
		if _, err := svc.RecomputeAllStats(ctx); err != nil {
			log.Fatal("failed to recompute stats", zap.Error(err))
		}
	case "backfill":
		if _, _, err := svc.BackfillOrderCustomers(ctx); err != nil {
			log.Fatal("failed to backfill order customers", zap.Error(err))
		}
		if _, err := svc.RecomputeAllStats(ctx); err != nil {
			log.Fatal("failed to recompute stats", zap.Error(err))
		}
	case "dedupe":
		if _, err := svc.DedupePhones(ctx); err != nil {
			log.Fatal("failed to dedupe phones", zap.Error(err))
		}
	case "all":
		rep, err := svc.RunAll(ctx)
		if err != nil {
			log.Fatal("failed to run maintenance", zap.Error(err))
		}
		log.Info("maintenance report",
			zap.Int64("duplicates_merged", rep.DuplicatesMerged),
			zap.Int64("orders_linked", rep.OrdersLinked),
			zap.Int64("orders_skipped", rep.OrdersSkipped),
			zap.Int64("customers_recomputed", rep.CustomersRecomputed),
		)
	default:
		usage()
		os.Exit(1)
	}

	log.Info("maintenance completed successfully")
}
