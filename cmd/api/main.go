package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/kvstore"
	"storefront/internal/metrics"
	"storefront/internal/payment"
	accountrepo "storefront/internal/repository/account"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	checkoutsvc "storefront/internal/service/checkout"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
	shippingsvc "storefront/internal/service/shipping"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var store kvstore.Store = kvstore.NewMemory()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		rs := kvstore.NewRedis(client, "storefront:")
		if err := rs.Ping(ctx); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		store = rs
		logger.Printf("key/value records stored in redis at %s", cfg.RedisAddr)
	}

	var provider checkoutsvc.Provider
	if p := payment.NewStripe(cfg.StripeSecretKey, "", logger); p != nil {
		provider = p
	} else {
		logger.Printf("STRIPE_SECRET_KEY not set, checkout requests will fail")
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	reviewRepo := reviewrepo.NewPostgres(dbpool, logger)
	accountRepo := accountrepo.NewPostgres(dbpool)

	reviewService := reviewsvc.New(store, reviewRepo, logger)
	productService := productsvc.New(productRepo, reviewService, logger)
	checkoutService := checkoutsvc.New(provider, accountRepo, cfg.ShippingCountry, logger)
	shippingService := shippingsvc.New(store, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:  productService,
		ReviewSvc:   reviewService,
		CheckoutSvc: checkoutService,
		ShippingSvc: shippingService,
		Metrics:     metrics.NewServerMetrics("api"),
		PublicURL:   cfg.PublicURL,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
