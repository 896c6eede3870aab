package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/migrate"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	if *down > 0 {
		if err := migrate.Rollback(ctx, cfg.DBConnString, *down); err != nil {
			logger.Fatalf("rollback migrations: %v", err)
		}
		logger.Printf("rolled back %d migration(s)", *down)
	} else {
		if err := migrate.Apply(ctx, cfg.DBConnString); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Println("migrations applied")
	}

	version, dirty, err := migrate.Version(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("read schema version: %v", err)
	}
	logger.Printf("schema version=%d dirty=%t", version, dirty)
}
