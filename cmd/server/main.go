package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bistroboss/server/internal/cache"
	"github.com/bistroboss/server/internal/config"
	"github.com/bistroboss/server/internal/es"
	"github.com/bistroboss/server/internal/events"
	"github.com/bistroboss/server/internal/handlers"
	"github.com/bistroboss/server/internal/handlers/cart"
	"github.com/bistroboss/server/internal/logging"
	authmw "github.com/bistroboss/server/internal/middleware/auth"
	loggingmw "github.com/bistroboss/server/internal/middleware/logging"
	"github.com/bistroboss/server/internal/payments"
	"github.com/bistroboss/server/internal/token"
	httpserver "github.com/bistroboss/server/internal/transport/http"
)

const menuIndex = "menu"

func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	tokens := &token.TokenService{JWTSecret: []byte(configuration.JWT_SECRET)}

	prod, err := events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := cache.NewRedisClient(ctx, configuration.REDIS_URL)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:          &authmw.Middleware{Tokens: tokens, DB: db},
		UserHandler:   &handlers.UserHandler{DB: db, Tokens: tokens, Producer: prod},
		MenuHandler:   &handlers.MenuHandler{DB: db, Indexer: &es.Indexer{Client: esClient, IndexName: menuIndex}},
		ReviewHandler: &handlers.ReviewHandler{DB: db},
		CartHandler:   &cart.CartHandler{DB: db, Producer: prod},
		PaymentHandler: &handlers.PaymentHandler{
			DB:       db,
			Producer: prod,
			Intents:  payments.NewStripeClient(configuration.STRIPE_SECRET),
		},
		StatsHandler:  &handlers.StatsHandler{DB: db, Cache: cache.New(redisClient, time.Minute)},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: menuIndex},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("redis close error: %v", err)
	}

	log.Println("shutdown complete")
}
