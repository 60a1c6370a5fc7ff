package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"zafago-storefront/internal/config"
	"zafago-storefront/internal/db"
	"zafago-storefront/internal/fixture"
	"zafago-storefront/internal/httpserver"
	"zafago-storefront/internal/promo"
	cartrepo "zafago-storefront/internal/repository/cart"
	productrepo "zafago-storefront/internal/repository/product"
	publisherrepo "zafago-storefront/internal/repository/publisher"
	cartsvc "zafago-storefront/internal/service/cart"
	catalogsvc "zafago-storefront/internal/service/catalog"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := fixture.Load()
	if err != nil {
		logger.Fatalf("load catalog fixture: %v", err)
	}

	var (
		products   productrepo.Repository   = productrepo.NewStatic(cat.Products)
		publishers publisherrepo.Repository = publisherrepo.NewStatic(cat.Publishers)
		dbpool     *pgxpool.Pool
	)
	if cfg.DBConnString != "" {
		dbpool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer dbpool.Close()
		products = productrepo.NewPostgres(dbpool, logger)
		publishers = publisherrepo.NewPostgres(dbpool, logger)
		logger.Printf("catalog source: postgres")
	} else {
		logger.Printf("catalog source: embedded fixture (%d products)", len(cat.Products))
	}

	var (
		cartStorage cartrepo.Repository = cartrepo.NewMemory()
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		cartStorage = cartrepo.NewRedis(redisClient, logger)
		logger.Printf("cart storage: redis at %s", cfg.RedisAddr)
	} else {
		logger.Printf("cart storage: in-memory")
	}

	catalogService := catalogsvc.New(products, publishers)
	cartService := cartsvc.New(cartStorage, products, logger)

	if redisClient != nil {
		go func() {
			if err := cartService.WatchStorage(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("cart change watcher stopped: %v", err)
			}
		}()
	}

	promoService, err := promo.NewService(cat.Promo)
	if err != nil {
		logger.Fatalf("init promo widgets: %v", err)
	}
	promoService.Start(ctx)
	defer promoService.Stop()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CatalogSvc: catalogService,
		CartSvc:    cartService,
		PromoSvc:   promoService,
		Ready:      readiness(dbpool, redisClient),
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// readiness pings whichever optional backing stores were configured.
func readiness(dbpool *pgxpool.Pool, redisClient *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if dbpool != nil {
			if err := dbpool.Ping(ctx); err != nil {
				return errors.New("db not reachable")
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return errors.New("redis not reachable")
			}
		}
		return nil
	}
}
