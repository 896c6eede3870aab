package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	accountrepo "storefront/internal/repository/account"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	"storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	_, err = seed.Apply(ctx, seed.Writers{
		Products: productrepo.NewPostgres(pool, logger),
		Reviews:  reviewrepo.NewPostgres(pool, logger),
		Accounts: accountrepo.NewPostgres(pool),
	}, logger)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
