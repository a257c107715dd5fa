package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"invest-sim/internal/analysis"
	"invest-sim/internal/api/models"
	"invest-sim/internal/config"
	"invest-sim/internal/data"
	"invest-sim/internal/model"
	"invest-sim/internal/sim"
)

// HistoryProvider is the slice of the data client the handlers need; tests
// substitute a stub.
type HistoryProvider interface {
	FetchHistory(ticker, period string) (*model.History, error)
	FetchMonthly(ticker, period string) (*model.History, error)
}

// SimulateHandler serves the five strategy endpoints plus ledger retrieval.
type SimulateHandler struct {
	Provider HistoryProvider
	Cfg      *config.Config
	Store    *ResultStore
}

func NewSimulateHandler(provider HistoryProvider, cfg *config.Config, store *ResultStore) *SimulateHandler {
	return &SimulateHandler{Provider: provider, Cfg: cfg, Store: store}
}

// RunPassive handles POST /api/v1/simulate/passive.
func (h *SimulateHandler) RunPassive(c *gin.Context) {
	var req models.PassiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	balances, err := sim.SimulatePassive(req.Initial, req.Monthly, req.Years, req.AnnualRatePct)
	if err != nil {
		writeSimError(c, err)
		return
	}
	s := analysis.SummarizePassive(balances, req.Initial, req.Monthly)
	c.JSON(http.StatusOK, models.PassiveResponse{
		Balances:         balances,
		FinalBalance:     money(s.FinalBalance),
		TotalContributed: money(s.TotalContributed),
		NetGain:          money(s.NetGain),
		ReturnPct:        money(s.ReturnPct),
	})
}

// RunCrossover handles POST /api/v1/simulate/crossover.
func (h *SimulateHandler) RunCrossover(c *gin.Context) {
	var req models.CrossoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	period := h.periodOrDefault(req.Period)
	capital := req.InitialCapital
	if capital == 0 {
		capital = h.Cfg.Defaults.InitialCapital
	}

	hist, err := h.Provider.FetchHistory(req.Ticker, period)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	res, err := sim.SimulateCrossover(hist.Bars, capital)
	if err != nil {
		writeSimError(c, err)
		return
	}

	summary := analysis.SummarizeCrossover(res.Ledger, capital, res.FinalCapital)
	resp := models.CrossoverResponse{
		ID:       h.Store.Put("crossover", convertCrossoverLedger(res.Ledger)),
		Status:   "completed",
		Ticker:   hist.Ticker,
		Currency: hist.Currency,
		Summary: models.CrossoverSummary{
			Operations:   summary.Operations,
			Wins:         summary.Wins,
			Losses:       summary.Losses,
			FinalCapital: money(summary.FinalCapital),
			NetGain:      money(summary.NetGain),
			ReturnPct:    money(summary.ReturnPct),
		},
	}
	if req.Options.IncludeLedger {
		resp.Ledger = convertCrossoverLedger(res.Ledger)
	}
	if req.Options.IncludeSeries {
		resp.Series = convertCrossoverSeries(res.Annotated)
	}
	c.JSON(http.StatusOK, resp)
}

// RunMomentum handles POST /api/v1/simulate/momentum.
func (h *SimulateHandler) RunMomentum(c *gin.Context) {
	var req models.MomentumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.Tickers) < 3 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "at least 3 tickers are required")
		return
	}
	period := h.periodOrDefault(req.Period)
	initial := req.InitialCapital
	if initial == 0 {
		initial = h.Cfg.Defaults.InitialCapital
	}
	monthly := req.MonthlyContribution
	if monthly == 0 {
		monthly = h.Cfg.Defaults.MonthlyContribution
	}

	in, currency, err := h.fetchAligned(req.Tickers, period)
	if err != nil {
		writeProviderError(c, err)
		return
	}
	in.InitialCapital = initial
	in.MonthlyContribution = monthly

	res, err := sim.SimulateMomentum(*in)
	if err != nil {
		writeSimError(c, err)
		return
	}

	ledger := convertMomentumLedger(res.Ledger)
	resp := models.MomentumResponse{
		ID:       h.Store.Put("momentum", ledger),
		Status:   "completed",
		Currency: currency,
		Summary:  convertMomentumSummary(analysis.SummarizeMomentum(res)),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = ledger
	}
	if res.Recommendation != nil {
		resp.Recommendation = &models.Recommendation{
			Date:    res.Recommendation.Date.Format("2006-01-02"),
			Tickers: res.Recommendation.Tickers,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// RunProtectivePut handles POST /api/v1/simulate/protective-put.
func (h *SimulateHandler) RunProtectivePut(c *gin.Context) {
	var req models.ProtectivePutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	period := h.periodOrDefault(req.Period)
	monthly := req.MonthlyContribution
	if monthly == 0 {
		monthly = h.Cfg.Defaults.MonthlyContribution
	}
	strikePct := req.StrikePct
	if strikePct == 0 {
		strikePct = h.Cfg.Defaults.ProtectivePut.StrikePct
	}
	premiumPct := req.PremiumPct
	if premiumPct == 0 {
		premiumPct = h.Cfg.Defaults.ProtectivePut.PremiumPct
	}

	hist, err := h.Provider.FetchMonthly(req.Ticker, period)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	rows, err := sim.SimulateProtectivePut(hist.Bars, monthly, strikePct, premiumPct)
	if err != nil {
		writeSimError(c, err)
		return
	}

	ledger := convertProtectivePutLedger(rows)
	s := analysis.SummarizeProtectivePut(rows)
	resp := models.OverlayResponse{
		ID:       h.Store.Put("protective-put", ledger),
		Status:   "completed",
		Ticker:   hist.Ticker,
		Currency: hist.Currency,
		Summary:  convertOverlaySummary(s),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = ledger
	}
	c.JSON(http.StatusOK, resp)
}

// RunBullCall handles POST /api/v1/simulate/bull-call.
func (h *SimulateHandler) RunBullCall(c *gin.Context) {
	var req models.BullCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	period := h.periodOrDefault(req.Period)
	monthly := req.MonthlyContribution
	if monthly == 0 {
		monthly = h.Cfg.Defaults.MonthlyContribution
	}
	d := h.Cfg.Defaults.BullCall
	params := sim.BullCallParams{
		OTMPct:        orDefault(req.OTMPct, d.OTMPct),
		ITMPct:        orDefault(req.ITMPct, d.ITMPct),
		PremiumITMPct: orDefault(req.PremiumITMPct, d.PremiumITMPct),
		PremiumOTMPct: orDefault(req.PremiumOTMPct, d.PremiumOTMPct),
	}

	hist, err := h.Provider.FetchMonthly(req.Ticker, period)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	rows, err := sim.SimulateBullCall(hist.Bars, monthly, params)
	if err != nil {
		writeSimError(c, err)
		return
	}

	ledger := convertBullCallLedger(rows)
	resp := models.OverlayResponse{
		ID:       h.Store.Put("bull-call", ledger),
		Status:   "completed",
		Ticker:   hist.Ticker,
		Currency: hist.Currency,
		Summary:  convertOverlaySummary(analysis.SummarizeBullCall(rows)),
	}
	if req.Options.IncludeLedger {
		resp.Spread = ledger
	}
	c.JSON(http.StatusOK, resp)
}

// GetLedger handles GET /api/v1/simulations/:id/ledger.
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	strategy, ledger, createdAt, ok := h.Store.Get(id)
	if !ok {
		writeError(c, http.StatusNotFound, "RESULT_NOT_FOUND",
			"no stored result for that id; it may have expired")
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:        id,
		Strategy:  strategy,
		CreatedAt: createdAt,
		Ledger:    ledger,
	})
}

// fetchAligned fetches monthly closes for every ticker and trims all series
// to the shortest shared tail, so the momentum engine sees one aligned
// matrix. Currencies must match across tickers.
func (h *SimulateHandler) fetchAligned(tickers []string, period string) (*sim.MomentumInput, string, error) {
	type fetched struct {
		ticker string
		hist   *model.History
	}
	all := make([]fetched, 0, len(tickers))
	currency := ""
	shortest := -1
	for _, t := range tickers {
		hist, err := h.Provider.FetchMonthly(t, period)
		if err != nil {
			return nil, "", err
		}
		if currency == "" {
			currency = hist.Currency
		} else if hist.Currency != currency {
			return nil, "", &data.ProviderError{
				Code: "CURRENCY_MISMATCH",
				Message: "tickers quote in different currencies (" + currency + " vs " +
					hist.Currency + "); they must match",
			}
		}
		if shortest < 0 || len(hist.Bars) < shortest {
			shortest = len(hist.Bars)
		}
		all = append(all, fetched{ticker: hist.Ticker, hist: hist})
	}

	in := &sim.MomentumInput{
		Closes: make(map[string][]float64, len(all)),
	}
	for _, f := range all {
		bars := f.hist.Bars[len(f.hist.Bars)-shortest:]
		in.Tickers = append(in.Tickers, f.ticker)
		in.Closes[f.ticker] = closesOf(bars)
		if in.Dates == nil {
			in.Dates = datesOf(bars)
		}
	}
	return in, currency, nil
}

func (h *SimulateHandler) periodOrDefault(p string) string {
	if p == "" {
		return h.Cfg.Defaults.Period
	}
	return p
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func closesOf(bars []model.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func datesOf(bars []model.PriceBar) []time.Time {
	out := make([]time.Time, len(bars))
	for i, b := range bars {
		out[i] = b.Date
	}
	return out
}

// money rounds a monetary amount to 2 decimals for display. Engine values
// keep full precision; this is the presentation boundary.
func money(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}

// writeSimError maps the engine's error taxonomy onto HTTP statuses:
// InputError is the caller's fault (400), DataError means the series cannot
// support the strategy (422). Nothing is swallowed or partially returned.
func writeSimError(c *gin.Context, err error) {
	var inputErr *sim.InputError
	if errors.As(err, &inputErr) {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", inputErr.Msg)
		return
	}
	var dataErr *sim.DataError
	if errors.As(err, &dataErr) {
		writeError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", dataErr.Msg)
		return
	}
	writeError(c, http.StatusInternalServerError, "SIMULATION_ERROR", err.Error())
}

// writeProviderError propagates provider failures unchanged, mapped to the
// closest HTTP status.
func writeProviderError(c *gin.Context, err error) {
	var provErr *data.ProviderError
	if errors.As(err, &provErr) {
		status := http.StatusBadGateway
		switch provErr.Code {
		case data.CodeTickerNotFound:
			status = http.StatusNotFound
		case data.CodeNoData, "CURRENCY_MISMATCH":
			status = http.StatusUnprocessableEntity
		case data.CodeRateLimited:
			status = http.StatusTooManyRequests
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    provErr.Code,
				Message: provErr.Message,
				Details: map[string]any{
					"status_code": provErr.StatusCode,
					"retry_after": provErr.RetryAfter,
				},
			},
		})
		return
	}
	writeError(c, http.StatusBadRequest, "DATA_FETCH_ERROR", err.Error())
}
