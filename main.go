package main

import (
	stdlog "log"
	"net/http"
	"time"

	"github.com/username/bugetto/backend/src/config"
	"github.com/username/bugetto/backend/src/database"
	"github.com/username/bugetto/backend/src/handlers"
	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/model"
	"github.com/username/bugetto/backend/src/processors"
	"github.com/username/bugetto/backend/src/services"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Bugetto backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	db, err := database.InitDB(config.Cfg.DatabasePath)
	if err != nil {
		stdlog.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		stdlog.Fatalf("Failed to run migrations: %v", err)
	}

	store := model.NewStore(db)

	rateService := services.NewFrankfurterRateService(config.Cfg.RateBaseURL, config.Cfg.RateTimeout)
	quoteService := services.NewYahooQuoteService(services.QuoteConfig{
		BaseURL:           config.Cfg.QuoteBaseURL,
		SessionURL:        config.Cfg.QuoteSessionURL,
		CrumbURL:          config.Cfg.QuoteCrumbURL,
		Timeout:           config.Cfg.QuoteTimeout,
		RequestsPerSecond: config.Cfg.QuoteRequestsPerSecond,
	})

	rateCache := processors.NewRateCache(rateService)
	priceResolver := processors.NewPriceResolver(quoteService)
	operationBuilder := processors.NewOperationBuilder(store, priceResolver, rateCache)

	operationService := services.NewOperationService(store, operationBuilder, rateCache)
	assetService := services.NewAssetService(store, quoteService)
	portfolioService := services.NewPortfolioService(store, priceResolver, rateCache)

	router := handlers.NewRouter(handlers.RouterConfig{
		Operations:     operationService,
		Assets:         assetService,
		Portfolio:      portfolioService,
		AllowedOrigins: config.Cfg.AllowedOrigins,
		Limiter:        rate.NewLimiter(rate.Limit(config.Cfg.APIRateLimitPerSecond), config.Cfg.APIRateLimitBurst),
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
