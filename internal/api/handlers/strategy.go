package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invest-sim/internal/api/models"
)

// StrategyHandler handles strategy catalog requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "passive",
			Description: "Buy-and-hold compounding. A fixed monthly contribution grows at the effective monthly rate derived from the annual rate.",
			Parameters: []models.ParameterInfo{
				{Name: "initial", Type: "float", Description: "Initial contribution", Default: 500.0},
				{Name: "monthly", Type: "float", Description: "Monthly contribution", Default: 500.0},
				{Name: "years", Type: "int", Description: "Simulation horizon in years", Default: 10},
				{Name: "annual_rate_pct", Type: "float", Description: "Nominal annual return percentage (negative allowed)", Default: 12.0},
			},
		},
		{
			Name:        "crossover",
			Description: "Moving-average crossover. Buys when the 20-bar average crosses above the 50-bar average, sells when it crosses back below; any open position is liquidated at the last bar.",
			Parameters: []models.ParameterInfo{
				{Name: "ticker", Type: "string", Description: "Instrument to simulate", Default: nil},
				{Name: "period", Type: "string", Description: "History span (6mo, 1y, 2y, 5y, 10y, ytd, max)", Default: "2y"},
				{Name: "initial_capital", Type: "float", Description: "Starting capital", Default: 500.0},
			},
		},
		{
			Name:        "momentum",
			Description: "Monthly momentum rotation. Each month the two tickers with the best trailing 2-month return receive half the capital each, held for one month.",
			Parameters: []models.ParameterInfo{
				{Name: "tickers", Type: "[]string", Description: "At least 3 tickers quoting in one currency", Default: nil},
				{Name: "period", Type: "string", Description: "History span", Default: "2y"},
				{Name: "initial_capital", Type: "float", Description: "First-cycle capital", Default: 500.0},
				{Name: "monthly_contribution", Type: "float", Description: "Added to each cycle after the first", Default: 500.0},
			},
		},
		{
			Name:        "protective-put",
			Description: "Protective put overlay. Each month buys shares with the fixed contribution plus a put struck below the price; realized against the next month's close.",
			Parameters: []models.ParameterInfo{
				{Name: "ticker", Type: "string", Description: "Instrument to simulate", Default: nil},
				{Name: "period", Type: "string", Description: "History span", Default: "2y"},
				{Name: "monthly_contribution", Type: "float", Description: "Fixed monthly contribution", Default: 500.0},
				{Name: "strike_pct", Type: "int", Description: "Put strike, percent below the purchase price (1-10)", Default: 5},
				{Name: "premium_pct", Type: "int", Description: "Put premium, percent of the purchase price (1-10)", Default: 2},
			},
		},
		{
			Name:        "bull-call",
			Description: "Bull call spread overlay. Each month buys an ITM call and sells an OTM call; payoff is capped at the spread, loss at the debit paid.",
			Parameters: []models.ParameterInfo{
				{Name: "ticker", Type: "string", Description: "Instrument to simulate", Default: nil},
				{Name: "period", Type: "string", Description: "History span", Default: "2y"},
				{Name: "monthly_contribution", Type: "float", Description: "Fixed monthly contribution", Default: 500.0},
				{Name: "otm_pct", Type: "int", Description: "Sold strike, percent above the price (1-10)", Default: 5},
				{Name: "itm_pct", Type: "int", Description: "Bought strike, percent below the price (1-10)", Default: 5},
				{Name: "premium_itm_pct", Type: "int", Description: "Premium paid, percent of the ITM strike (1-10)", Default: 8},
				{Name: "premium_otm_pct", Type: "int", Description: "Premium received, percent of the OTM strike (1-10)", Default: 3},
			},
		},
	}

	log.Printf("StrategyHandler: returning %d strategies", len(strategies))
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
