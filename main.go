package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"debt-planner/config"
	httpLayer "debt-planner/http"
	"debt-planner/repository"
	"debt-planner/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Local persistence: SQLite file when configured, memory otherwise
	var debtRepo repository.DebtRepository
	if cfg.DBPath != "" {
		sqliteRepo, err := repository.NewDebtRepositorySQLite(cfg.DBPath)
		if err != nil {
			logger.Fatalf("Failed to open debt database: %v", err)
		}
		defer sqliteRepo.Close()
		debtRepo = sqliteRepo
	} else {
		debtRepo = repository.NewDebtRepositoryMemory()
	}

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache()
	}

	projectionService := service.NewProjectionService(cache, logger)
	strategyService := service.NewStrategyService(projectionService, logger)
	calculatorService := service.NewCalculatorService(logger)

	debtHandler := httpLayer.NewDebtHandler(debtRepo, logger)
	projectionHandler := httpLayer.NewProjectionHandler(debtRepo, projectionService, strategyService, logger)
	calculatorHandler := httpLayer.NewCalculatorHandler(calculatorService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	defer rateLimiter.Stop()

	r := mux.NewRouter()
	r.Use(httpLayer.RateLimitMiddleware(rateLimiter))

	r.HandleFunc("/debts", debtHandler.Create).Methods("POST")
	r.HandleFunc("/debts", debtHandler.List).Methods("GET")
	r.HandleFunc("/debts/{id}", debtHandler.Get).Methods("GET")
	r.HandleFunc("/debts/{id}", debtHandler.Update).Methods("PUT")
	r.HandleFunc("/debts/{id}", debtHandler.Delete).Methods("DELETE")

	r.HandleFunc("/debts/{id}/projection", projectionHandler.ProjectDebt).Methods("GET")
	r.HandleFunc("/debts/{id}/balance", projectionHandler.Balance).Methods("GET")
	r.HandleFunc("/projections/aggregate", projectionHandler.Aggregate).Methods("GET")
	r.HandleFunc("/projections/simulate", projectionHandler.Simulate).Methods("POST")

	r.HandleFunc("/calculator/payment", calculatorHandler.SolvePayment).Methods("POST")
	r.HandleFunc("/calculator/rate", calculatorHandler.SolveRate).Methods("POST")

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Server failed: %v", err)
		return
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	logger.Info("Server exited")
}
