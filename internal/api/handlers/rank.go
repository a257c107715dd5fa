package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invest-sim/internal/analysis"
	"invest-sim/internal/api/models"
	"invest-sim/internal/config"
	"invest-sim/internal/data"
)

// RankHandler ranks watchlist tickers by trailing 2-month return.
type RankHandler struct {
	Provider  HistoryProvider
	Cfg       *config.Config
	Watchlist *data.Watchlist
}

func NewRankHandler(provider HistoryProvider, cfg *config.Config, w *data.Watchlist) *RankHandler {
	return &RankHandler{Provider: provider, Cfg: cfg, Watchlist: w}
}

// Rank handles GET /api/v1/rank?period=2y.
func (h *RankHandler) Rank(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		period = h.Cfg.Defaults.Period
	}

	tickers := h.Watchlist.List()
	if len(tickers) == 0 {
		writeError(c, http.StatusUnprocessableEntity, "EMPTY_WATCHLIST",
			"the watchlist is empty; add tickers before ranking")
		return
	}

	closes := make(map[string][]float64, len(tickers))
	for _, t := range tickers {
		hist, err := h.Provider.FetchMonthly(t, period)
		if err != nil {
			writeProviderError(c, err)
			return
		}
		closes[t] = closesOf(hist.Bars)
	}

	ranked := analysis.RankByTrailingReturn(tickers, closes)
	resp := models.RankResponse{Period: period}
	for _, r := range ranked {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:         r.Rank,
			Ticker:       r.Ticker,
			LastClose:    money(r.LastClose),
			TrailingPct:  money(r.TrailingPct),
			MonthsOfData: r.MonthsOfData,
		})
	}
	c.JSON(http.StatusOK, resp)
}
