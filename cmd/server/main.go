package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"MarketLens/internal/cache"
	"MarketLens/internal/config"
	"MarketLens/internal/fetcher"
	"MarketLens/internal/market"
	"MarketLens/internal/portfolio"
	"MarketLens/internal/scheduler"
	"MarketLens/internal/server"
	"MarketLens/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketLens starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher with TTL cache
	yahoo := fetcher.NewYahooFetcher(cfg.Proxy)
	cached := cache.New(yahoo,
		time.Duration(cfg.Market.HistoryTTL)*time.Second,
		time.Duration(cfg.Market.InfoTTL)*time.Second)
	log.Printf("[INFO] data source: %s", yahoo.Name())

	svc := market.NewService(cached)

	// Init portfolio manager
	pm, err := portfolio.NewManager(cfg.Portfolio.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init portfolio manager: %v", err)
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(svc, pm, st, cached, cfg.Market.TrendingStocks, cfg.Portfolio.RiskFreeRate)
	if err := sched.RegisterAll(cfg.Schedule.SnapshotCron, cfg.Schedule.ValuationCron, cfg.Schedule.SweepCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, recording snapshot now")
		go sched.RunSnapshotNow()
	}

	// Init HTTP server
	handler := server.NewHandler(svc, pm, st,
		cfg.Market.TrendingStocks, cfg.Market.TrendingCrypto, cfg.Portfolio.RiskFreeRate)
	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] MarketLens stopped")
}
