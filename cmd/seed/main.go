package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"zafago-storefront/internal/config"
	"zafago-storefront/internal/db"
	productrepo "zafago-storefront/internal/repository/product"
	publisherrepo "zafago-storefront/internal/repository/publisher"
	"zafago-storefront/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.DBConnString == "" {
		logger.Fatal("DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	products := productrepo.NewPostgres(pool, logger)
	publishers := publisherrepo.NewPostgres(pool, logger)

	if err := seed.Apply(ctx, products, publishers, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
