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

	"github.com/togongs/goods-shop/internal/config"
	"github.com/togongs/goods-shop/internal/es"
	"github.com/togongs/goods-shop/internal/handlers"
	"github.com/togongs/goods-shop/internal/logging"
	"github.com/togongs/goods-shop/internal/middleware/auth"
	loggingmw "github.com/togongs/goods-shop/internal/middleware/logging"
	"github.com/togongs/goods-shop/internal/mykafka"
	"github.com/togongs/goods-shop/internal/service"
	httpserver "github.com/togongs/goods-shop/internal/transport/http"
	"github.com/togongs/goods-shop/internal/ws"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	tokens := &service.TokenService{Secret: []byte(cfg.JWT_SECRET)}

	var prod *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}

	var searchHandler *handlers.SearchHandler
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler = handlers.NewSearchHandler(esClient, "goods")
	}

	hub := ws.NewHub(logger, prod)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:   &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod},
		GoodsHandler:  &handlers.GoodsHandler{DB: db},
		CartHandler:   &handlers.CartHandler{DB: db},
		SearchHandler: searchHandler,
		Hub:           hub,
		RequireLogin:  auth.RequireLogin(db, tokens),
		AssetsDir:     cfg.ASSETS_DIR,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	hub.Close()

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
