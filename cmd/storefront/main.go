package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/cart"
	"github.com/GenaM19021977/teplomarket/internal/catalog"
	"github.com/GenaM19021977/teplomarket/internal/config"
	"github.com/GenaM19021977/teplomarket/internal/currency"
	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/favorites"
	"github.com/GenaM19021977/teplomarket/internal/handlers"
	"github.com/GenaM19021977/teplomarket/internal/kvstore"
	"github.com/GenaM19021977/teplomarket/internal/logging"
	loggingmw "github.com/GenaM19021977/teplomarket/internal/middleware/logging"
	"github.com/GenaM19021977/teplomarket/internal/search"
	"github.com/GenaM19021977/teplomarket/internal/session"
	httpserver "github.com/GenaM19021977/teplomarket/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "storefront")
	slog.SetDefault(logger)

	db, err := cfg.OpenDB()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	kv, err := kvstore.OpenGorm(db)
	if err != nil {
		log.Fatalf("profile store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	if cfg.KAFKA_ADDRESS != "" {
		relay := events.NewRelay(cfg.KAFKA_ADDRESS, logger)
		defer relay.Close()
		go relay.Run(ctx, bus)
	}

	sess := session.New(kv, logger)
	go sess.Watch(ctx, 30*time.Second, bus)

	api := backend.NewClient(cfg.API_BASE_URL, sess, sess.Clear)

	cartStore := cart.New(kv, bus, sess, logger)
	favStore := favorites.New(kv, bus, sess, logger)
	selection := currency.NewSelection(kv, bus)

	// курсы валют загружаются один раз за сессию
	ratesCtx, ratesCancel := context.WithTimeout(ctx, 10*time.Second)
	rates := currency.New(cfg.NBRB_URL, logger).FetchRates(ratesCtx)
	ratesCancel()

	var es *elasticsearch.Client
	var indexer catalog.Indexer
	if cfg.ES_URL != "" {
		es, err = search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			logger.Warn("elasticsearch disabled", "error", err)
			es = nil
		} else {
			indexer = &search.Index{ES: es, Name: cfg.ES_INDEX}
		}
	}

	cache := catalog.New(api, indexer, bus, logger, time.Duration(cfg.REFRESH_SECONDS)*time.Second)
	if err := cache.Refresh(ctx); err != nil {
		logger.Warn("начальная загрузка каталога не удалась", "error", err)
	}
	go cache.Run(ctx)

	pricing := &handlers.Pricing{Rates: rates, Selection: selection}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Session:          sess,
		AuthHandler:      &handlers.AuthHandler{Backend: api, Session: sess},
		CatalogHandler:   &handlers.CatalogHandler{Catalog: cache, Favorites: favStore, Pricing: pricing, ES: es, ESIndex: cfg.ES_INDEX},
		CartHandler:      &handlers.CartHandler{Cart: cartStore, Catalog: cache, Backend: api, Pricing: pricing},
		FavoritesHandler: &handlers.FavoritesHandler{Favorites: favStore, Catalog: cache, Backend: api, Pricing: pricing},
		CheckoutHandler:  &handlers.CheckoutHandler{Cart: cartStore, Backend: api, Pricing: pricing},
		CabinetHandler:   &handlers.CabinetHandler{Backend: api, Session: sess},
		CurrencyHandler:  &handlers.CurrencyHandler{Selection: selection},
		HeaderHandler:    &handlers.HeaderHandler{Cart: cartStore, Favorites: favStore, Session: sess},
		InfoHandler:      &handlers.InfoHandler{Backend: api},
	})

	srv := &http.Server{
		Addr:              cfg.LISTEN_ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
