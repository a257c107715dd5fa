package models

import "time"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PassiveResponse returns the full balance trajectory plus derived totals.
type PassiveResponse struct {
	Balances         []float64 `json:"balances"`
	FinalBalance     float64   `json:"final_balance"`
	TotalContributed float64   `json:"total_contributed"`
	NetGain          float64   `json:"net_gain"`
	ReturnPct        float64   `json:"return_pct"`
}

// CrossoverResponse returns the crossover run. Ledger and series are
// included only when requested.
type CrossoverResponse struct {
	ID       string           `json:"id"`
	Status   string           `json:"status"`
	Ticker   string           `json:"ticker"`
	Currency string           `json:"currency"`
	Summary  CrossoverSummary `json:"summary"`
	Ledger   []CrossoverTrade `json:"ledger,omitempty"`
	Series   []CrossoverPoint `json:"series,omitempty"`
}

type CrossoverSummary struct {
	Operations   int     `json:"operations"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	FinalCapital float64 `json:"final_capital"`
	NetGain      float64 `json:"net_gain"`
	ReturnPct    float64 `json:"return_pct"`
}

type CrossoverTrade struct {
	Date     string  `json:"date"`
	Action   string  `json:"action"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Capital  float64 `json:"capital"`
}

type CrossoverPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
	MM20  float64 `json:"mm20"`
	MM50  float64 `json:"mm50"`
}

// MomentumResponse returns the rotation run; the recommendation covers the
// final month, which has no forward price to trade against.
type MomentumResponse struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Currency       string          `json:"currency"`
	Summary        MomentumSummary `json:"summary"`
	Ledger         []MomentumEntry `json:"ledger,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

type MomentumSummary struct {
	Cycles         int           `json:"cycles"`
	TotalAllocated float64       `json:"total_allocated"`
	FinalBalance   float64       `json:"final_balance"`
	NetGain        float64       `json:"net_gain"`
	ReturnPct      float64       `json:"return_pct"`
	Best           CycleOutcome  `json:"best"`
	Worst          CycleOutcome  `json:"worst"`
	PerTicker      []TickerStats `json:"per_ticker,omitempty"`
}

type CycleOutcome struct {
	Ticker    string  `json:"ticker"`
	Date      string  `json:"date"`
	ReturnPct float64 `json:"return_pct"`
}

type TickerStats struct {
	Ticker         string  `json:"ticker"`
	TimesChosen    int     `json:"times_chosen"`
	PositiveCycles int     `json:"positive_cycles"`
	NegativeCycles int     `json:"negative_cycles"`
	MeanReturnPct  float64 `json:"mean_return_pct"`
	MaxReturnPct   float64 `json:"max_return_pct"`
	MinReturnPct   float64 `json:"min_return_pct"`
}

type MomentumEntry struct {
	Date       string  `json:"date"`
	Ticker     string  `json:"ticker"`
	Allocation float64 `json:"allocation"`
	BuyPrice   float64 `json:"buy_price"`
	Invested   float64 `json:"invested"`
	Quantity   int64   `json:"quantity"`
	Residual   float64 `json:"residual"`
	SellPrice  float64 `json:"sell_price"`
	Proceeds   float64 `json:"proceeds"`
	ReturnPct  float64 `json:"return_pct"`
	EndValue   float64 `json:"end_value"`
}

type Recommendation struct {
	Date    string   `json:"date"`
	Tickers []string `json:"tickers"`
}

// OverlayResponse covers both options strategies; the rows differ.
type OverlayResponse struct {
	ID       string             `json:"id"`
	Status   string             `json:"status"`
	Ticker   string             `json:"ticker"`
	Currency string             `json:"currency"`
	Summary  OverlaySummary     `json:"summary"`
	Ledger   []ProtectivePutRow `json:"ledger,omitempty"`
	Spread   []BullCallRow      `json:"spread_ledger,omitempty"`
}

type OverlaySummary struct {
	Months           int     `json:"months"`
	TotalCost        float64 `json:"total_cost"`
	TotalFinalValue  float64 `json:"total_final_value"`
	NetProfit        float64 `json:"net_profit"`
	ProfitableMonths int     `json:"profitable_months"`
	LosingMonths     int     `json:"losing_months"`
	ProtectedMonths  int     `json:"protected_months,omitempty"`
}

type ProtectivePutRow struct {
	Date       string  `json:"date"`
	BuyPrice   float64 `json:"buy_price"`
	Strike     float64 `json:"strike"`
	Premium    float64 `json:"premium"`
	Quantity   int64   `json:"quantity"`
	StockCost  float64 `json:"stock_cost"`
	PutCost    float64 `json:"put_cost"`
	TotalCost  float64 `json:"total_cost"`
	SellPrice  float64 `json:"sell_price"`
	PutPayoff  float64 `json:"put_payoff"`
	FinalValue float64 `json:"final_value"`
	NetProfit  float64 `json:"net_profit"`
}

type BullCallRow struct {
	Date        string  `json:"date"`
	BuyPrice    float64 `json:"buy_price"`
	StrikeOTM   float64 `json:"strike_otm"`
	StrikeITM   float64 `json:"strike_itm"`
	Spread      float64 `json:"spread"`
	PremiumITM  float64 `json:"premium_itm"`
	PremiumOTM  float64 `json:"premium_otm"`
	NetDebit    float64 `json:"net_debit"`
	Contracts   int64   `json:"contracts"`
	TotalCost   float64 `json:"total_cost"`
	SellPrice   float64 `json:"sell_price"`
	GrossPayoff float64 `json:"gross_payoff"`
	NetProfit   float64 `json:"net_profit"`
}

// RankResponse ranks watchlist tickers by trailing 2-month return.
type RankResponse struct {
	Period   string    `json:"period"`
	Rankings []Ranking `json:"rankings"`
}

type Ranking struct {
	Rank         int     `json:"rank"`
	Ticker       string  `json:"ticker"`
	LastClose    float64 `json:"last_close"`
	TrailingPct  float64 `json:"trailing_pct"`
	MonthsOfData int     `json:"months_of_data"`
}

// WatchlistResponse lists the session watchlist.
type WatchlistResponse struct {
	Tickers []string `json:"tickers"`
}

// StrategyInfo describes one simulator for the strategy catalog endpoint.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default"`
}

// LedgerResponse returns a stored simulation ledger by id.
type LedgerResponse struct {
	ID        string    `json:"id"`
	Strategy  string    `json:"strategy"`
	CreatedAt time.Time `json:"created_at"`
	Ledger    any       `json:"ledger"`
}
