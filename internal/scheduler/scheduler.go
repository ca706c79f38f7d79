// Package scheduler runs the periodic background tasks: trending quote
// snapshots, end-of-day portfolio valuations, and cache sweeps.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"MarketLens/internal/cache"
	"MarketLens/internal/fetcher"
	"MarketLens/internal/market"
	"MarketLens/internal/portfolio"
	"MarketLens/internal/store"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron         *cron.Cron
	Market       *market.Service
	Portfolios   *portfolio.Manager
	Store        store.Store
	Cache        *cache.CachingFetcher
	Symbols      []string
	RiskFreeRate float64
}

// NewScheduler creates a new Scheduler. cache may be nil when the fetcher
// is not wrapped.
func NewScheduler(svc *market.Service, pm *portfolio.Manager, st store.Store, c *cache.CachingFetcher, symbols []string, riskFreeRate float64) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Market:       svc,
		Portfolios:   pm,
		Store:        st,
		Cache:        c,
		Symbols:      symbols,
		RiskFreeRate: riskFreeRate,
	}
}

// RegisterAll registers the snapshot, valuation, and sweep tasks.
func (s *Scheduler) RegisterAll(snapshotCron, valuationCron, sweepCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	if _, err := s.Cron.AddFunc(valuationCron, s.valuationTask); err != nil {
		return fmt.Errorf("register valuation task: %w", err)
	}
	if s.Cache != nil {
		if _, err := s.Cron.AddFunc(sweepCron, s.sweepTask); err != nil {
			return fmt.Errorf("register sweep task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately (for manual trigger).
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	log.Println("[INFO] recording trending quotes")
	quotes := s.Market.Trending(s.Symbols)
	now := time.Now()
	for _, q := range quotes {
		err := s.Store.RecordQuote(&store.QuoteSnapshot{
			Symbol:    q.Symbol,
			Price:     q.Price,
			ChangePct: q.ChangePct,
			At:        now,
		})
		if err != nil {
			log.Printf("[ERROR] record quote %s: %v", q.Symbol, err)
		}
	}
}

func (s *Scheduler) valuationTask() {
	log.Println("[INFO] recording portfolio valuations")
	now := time.Now()
	for _, p := range s.Portfolios.List() {
		symbols := make([]string, 0, len(p.Holdings))
		for symbol := range p.Holdings {
			symbols = append(symbols, symbol)
		}
		data := fetcher.FetchMany(s.Market.Fetcher, symbols, "3mo")
		perf, err := portfolio.Performance(p, data, s.RiskFreeRate)
		if err != nil {
			log.Printf("[ERROR] valuation %s: %v", p.Name, err)
			continue
		}
		err = s.Store.RecordValuation(&store.PortfolioValuation{
			Name:       p.Name,
			Investment: perf.TotalInvestment,
			Value:      perf.CurrentValue,
			At:         now,
		})
		if err != nil {
			log.Printf("[ERROR] record valuation %s: %v", p.Name, err)
		}
	}
}

func (s *Scheduler) sweepTask() {
	if n := s.Cache.Sweep(); n > 0 {
		log.Printf("[INFO] cache sweep evicted %d entries", n)
	}
}
