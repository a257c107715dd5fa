package models

// PassiveRequest runs the buy-and-hold compounding simulation.
type PassiveRequest struct {
	Initial       float64 `json:"initial"`
	Monthly       float64 `json:"monthly"`
	Years         int     `json:"years"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
}

// CrossoverRequest runs the moving-average crossover simulation.
type CrossoverRequest struct {
	Ticker         string            `json:"ticker" binding:"required"`
	Period         string            `json:"period,omitempty"` // default from config
	InitialCapital float64           `json:"initial_capital,omitempty"`
	Options        SimulationOptions `json:"options,omitempty"`
}

// MomentumRequest runs the momentum rotation simulation.
type MomentumRequest struct {
	Tickers             []string          `json:"tickers" binding:"required"`
	Period              string            `json:"period,omitempty"`
	InitialCapital      float64           `json:"initial_capital,omitempty"`
	MonthlyContribution float64           `json:"monthly_contribution,omitempty"`
	Options             SimulationOptions `json:"options,omitempty"`
}

// ProtectivePutRequest runs the protective-put overlay.
type ProtectivePutRequest struct {
	Ticker              string            `json:"ticker" binding:"required"`
	Period              string            `json:"period,omitempty"`
	MonthlyContribution float64           `json:"monthly_contribution,omitempty"`
	StrikePct           int               `json:"strike_pct,omitempty"`
	PremiumPct          int               `json:"premium_pct,omitempty"`
	Options             SimulationOptions `json:"options,omitempty"`
}

// BullCallRequest runs the bull-call-spread overlay.
type BullCallRequest struct {
	Ticker              string            `json:"ticker" binding:"required"`
	Period              string            `json:"period,omitempty"`
	MonthlyContribution float64           `json:"monthly_contribution,omitempty"`
	OTMPct              int               `json:"otm_pct,omitempty"`
	ITMPct              int               `json:"itm_pct,omitempty"`
	PremiumITMPct       int               `json:"premium_itm_pct,omitempty"`
	PremiumOTMPct       int               `json:"premium_otm_pct,omitempty"`
	Options             SimulationOptions `json:"options,omitempty"`
}

// SimulationOptions trims the response payload.
type SimulationOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"`
	IncludeSeries bool `json:"include_series,omitempty"`
}

// WatchlistAddRequest adds one ticker to the session watchlist.
type WatchlistAddRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}
