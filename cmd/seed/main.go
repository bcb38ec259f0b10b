package main

import (
	"context"
	"flag"
	"os"

	"github.com/yasminalves16/restaurante/config"
	"github.com/yasminalves16/restaurante/internal/database"
	"github.com/yasminalves16/restaurante/internal/logger"
	"github.com/yasminalves16/restaurante/internal/repository"
	"github.com/yasminalves16/restaurante/internal/seed"
	"github.com/yasminalves16/restaurante/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	menuFile = flag.String("file", "", "YAML menu file (defaults to the bundled sample menu)")
	force    = flag.Bool("force", false, "seed even when the menu already has items")
)

func main() {
	flag.Parse()
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

	f, err := seed.Load(*menuFile)
	if err != nil {
		log.Fatal("failed to load menu file", zap.Error(err))
	}

	repos := repository.New(db)
	menu := service.NewMenuService(repos, nil, log)

	if _, err := seed.Apply(context.Background(), f, menu, repos, *force, log); err != nil {
		log.Fatal("failed to seed menu", zap.Error(err))
	}
}
