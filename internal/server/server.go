// Package server exposes the market data and portfolio services over a
// JSON HTTP API.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"MarketLens/internal/export"
	"MarketLens/internal/fetcher"
	"MarketLens/internal/market"
	"MarketLens/internal/model"
	"MarketLens/internal/portfolio"
	"MarketLens/internal/store"
)

const (
	defaultHistoryLimit = 10
	defaultQuoteLimit   = 20
)

var (
	errMissingSymbol   = errors.New("symbol required")
	errMissingHoldings = errors.New("at least one holding required")
)

type Handler struct {
	router          *gin.Engine
	market          *market.Service
	portfolios      *portfolio.Manager
	store           store.Store
	trendingStocks  []string
	trendingCryptos []string
	riskFreeRate    float64
}

func NewHandler(svc *market.Service, pm *portfolio.Manager, st store.Store, trendingStocks, trendingCryptos []string, riskFreeRate float64) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:          router,
		market:          svc,
		portfolios:      pm,
		store:           st,
		trendingStocks:  trendingStocks,
		trendingCryptos: trendingCryptos,
		riskFreeRate:    riskFreeRate,
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	api := h.router.Group("/api")
	{
		api.GET("/health", h.health)

		api.GET("/stock/:symbol", h.getStock)
		api.GET("/crypto/:symbol", h.getCrypto)

		api.GET("/trending/stocks", h.trendingStockQuotes)
		api.GET("/trending/crypto", h.trendingCryptoQuotes)

		api.GET("/quotes/:symbol", h.quoteHistory)

		api.GET("/search/history", h.searchHistory)
		api.DELETE("/search/history", h.clearSearchHistory)

		api.POST("/portfolio/calculate", h.calculatePerformance)
		api.GET("/portfolios", h.listPortfolios)
		api.POST("/portfolios", h.savePortfolio)
		api.GET("/portfolios/:name", h.getPortfolio)
		api.DELETE("/portfolios/:name", h.deletePortfolio)

		api.GET("/export/:symbol", h.exportCSV)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"source": h.market.Fetcher.Name(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) getStock(c *gin.Context) {
	symbol, period, err := symbolAndPeriod(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	snap, err := h.market.StockSnapshot(symbol, period)
	if err != nil {
		writeError(c, http.StatusBadGateway, err)
		return
	}
	h.recordSearch(symbol)
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) getCrypto(c *gin.Context) {
	symbol, period, err := symbolAndPeriod(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	snap, err := h.market.CryptoSnapshot(symbol, period)
	if err != nil {
		writeError(c, http.StatusBadGateway, err)
		return
	}
	h.recordSearch(snap.Symbol)
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) trendingStockQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.Trending(h.trendingStocks))
}

func (h *Handler) trendingCryptoQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.Trending(h.trendingCryptos))
}

// quoteHistory serves the snapshots the scheduler has recorded for a symbol.
func (h *Handler) quoteHistory(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	limit := defaultQuoteLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer"))
			return
		}
		limit = n
	}
	quotes, err := h.store.RecentQuotes(symbol, limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if quotes == nil {
		quotes = []store.QuoteSnapshot{}
	}
	c.JSON(http.StatusOK, quotes)
}

func (h *Handler) searchHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer"))
			return
		}
		limit = n
	}
	symbols, err := h.store.RecentSearches(limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

func (h *Handler) clearSearchHistory(c *gin.Context) {
	if err := h.store.ClearSearches(); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type performanceRequest struct {
	Holdings     map[string]model.Holding `json:"holdings"`
	Period       string                   `json:"period"`
	RiskFreeRate *float64                 `json:"risk_free_rate"`
}

func (h *Handler) calculatePerformance(c *gin.Context) {
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Holdings) == 0 {
		writeError(c, http.StatusBadRequest, errMissingHoldings)
		return
	}
	period := req.Period
	if period == "" {
		period = "1y"
	}
	if !fetcher.ValidPeriod(period) {
		writeError(c, http.StatusBadRequest, fmt.Errorf("unsupported period %q", period))
		return
	}
	riskFree := h.riskFreeRate
	if req.RiskFreeRate != nil {
		riskFree = *req.RiskFreeRate
	}

	p := &model.Portfolio{Name: "ad-hoc", Holdings: req.Holdings}
	perf, err := h.performance(p, period, riskFree)
	if err != nil {
		writeError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

func (h *Handler) performance(p *model.Portfolio, period string, riskFree float64) (*model.PortfolioPerformance, error) {
	symbols := make([]string, 0, len(p.Holdings))
	for symbol := range p.Holdings {
		symbols = append(symbols, symbol)
	}
	data := fetcher.FetchMany(h.market.Fetcher, symbols, period)
	return portfolio.Performance(p, data, riskFree)
}

type savePortfolioRequest struct {
	Name     string                   `json:"name"`
	Holdings map[string]model.Holding `json:"holdings"`
}

func (h *Handler) savePortfolio(c *gin.Context) {
	var req savePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	p, err := h.portfolios.Save(req.Name, req.Holdings)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) listPortfolios(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolios.List())
}

func (h *Handler) getPortfolio(c *gin.Context) {
	name := c.Param("name")
	p, ok := h.portfolios.Get(name)
	if !ok {
		writeError(c, http.StatusNotFound, fmt.Errorf("portfolio %q not found", name))
		return
	}

	// ?performance=true enriches the response with live valuation.
	if c.Query("performance") != "true" {
		c.JSON(http.StatusOK, p)
		return
	}
	period := c.DefaultQuery("period", "1y")
	if !fetcher.ValidPeriod(period) {
		writeError(c, http.StatusBadRequest, fmt.Errorf("unsupported period %q", period))
		return
	}
	perf, err := h.performance(p, period, h.riskFreeRate)
	if err != nil {
		writeError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": p, "performance": perf})
}

func (h *Handler) deletePortfolio(c *gin.Context) {
	name := c.Param("name")
	if !h.portfolios.Delete(name) {
		writeError(c, http.StatusNotFound, fmt.Errorf("portfolio %q not found", name))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportCSV(c *gin.Context) {
	symbol, period, err := symbolAndPeriod(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	series, err := h.market.Fetcher.FetchHistory(symbol, period)
	if err != nil {
		writeError(c, http.StatusBadGateway, err)
		return
	}
	info, err := h.market.Fetcher.FetchQuoteInfo(symbol)
	if err != nil {
		log.Printf("[WARN] export quote info %s: %v", symbol, err)
		info = nil
	}

	filename := fmt.Sprintf("%s_%s_%s.csv", symbol, period, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.HistoricalCSV(c.Writer, series, info); err != nil {
		// Headers are out by now; all we can do is log.
		log.Printf("[ERROR] export %s: %v", symbol, err)
	}
}

func (h *Handler) recordSearch(symbol string) {
	if err := h.store.RecordSearch(symbol); err != nil {
		log.Printf("[WARN] record search %s: %v", symbol, err)
	}
}

func symbolAndPeriod(c *gin.Context) (string, string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		return "", "", errMissingSymbol
	}
	period := c.DefaultQuery("period", "1y")
	if !fetcher.ValidPeriod(period) {
		return "", "", fmt.Errorf("unsupported period %q", period)
	}
	return symbol, period, nil
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
