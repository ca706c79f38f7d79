package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Market struct {
		TrendingStocks []string `yaml:"trending_stocks"`
		TrendingCrypto []string `yaml:"trending_crypto"`
		HistoryTTL     int      `yaml:"history_ttl_seconds"`
		InfoTTL        int      `yaml:"info_ttl_seconds"`
	} `yaml:"market"`
	Portfolio struct {
		StateFile    string  `yaml:"state_file"`
		RiskFreeRate float64 `yaml:"risk_free_rate"`
	} `yaml:"portfolio"`
	Schedule struct {
		SnapshotCron  string `yaml:"snapshot_cron"`
		ValuationCron string `yaml:"valuation_cron"`
		SweepCron     string `yaml:"sweep_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.ListenAddr = ":" + v
	}
	if v := os.Getenv("TRENDING_STOCKS"); v != "" {
		cfg.Market.TrendingStocks = splitSymbols(v)
	}
	if v := os.Getenv("TRENDING_CRYPTO"); v != "" {
		cfg.Market.TrendingCrypto = splitSymbols(v)
	}
	if v := os.Getenv("PORTFOLIO_STATE_FILE"); v != "" {
		cfg.Portfolio.StateFile = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Portfolio.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8000"
	}
	if len(cfg.Market.TrendingStocks) == 0 {
		cfg.Market.TrendingStocks = []string{"AAPL", "TSLA", "NVDA", "MSFT", "GOOGL"}
	}
	if len(cfg.Market.TrendingCrypto) == 0 {
		cfg.Market.TrendingCrypto = []string{"BTC-USD", "ETH-USD", "SOL-USD"}
	}
	if cfg.Market.HistoryTTL == 0 {
		cfg.Market.HistoryTTL = 300
	}
	if cfg.Market.InfoTTL == 0 {
		cfg.Market.InfoTTL = 3600
	}
	if cfg.Portfolio.StateFile == "" {
		cfg.Portfolio.StateFile = "data/portfolios.json"
	}
	if cfg.Portfolio.RiskFreeRate == 0 {
		cfg.Portfolio.RiskFreeRate = 0.02
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 */15 * * * *"
	}
	if cfg.Schedule.ValuationCron == "" {
		cfg.Schedule.ValuationCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.SweepCron == "" {
		cfg.Schedule.SweepCron = "0 */5 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/marketlens.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if c.Market.HistoryTTL < 0 || c.Market.InfoTTL < 0 {
		return fmt.Errorf("market TTLs must be non-negative")
	}
	if c.Portfolio.RiskFreeRate < 0 || c.Portfolio.RiskFreeRate >= 1 {
		return fmt.Errorf("portfolio.risk_free_rate must be in [0, 1)")
	}
	if c.Portfolio.StateFile == "" {
		return fmt.Errorf("portfolio.state_file is required")
	}
	return nil
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
