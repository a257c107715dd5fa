package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"invest-sim/internal/analysis"
	"invest-sim/internal/model"
	"invest-sim/internal/sim"
)

// Demo:
// - Build deterministic synthetic price series (no network)
// - Run all five simulators over them
// - Print each ledger head and summary to show how the pieces fit together
func main() {
	fmt.Println("=== Passive compounding ===")
	balances, err := sim.SimulatePassive(500, 500, 10, 12)
	if err != nil {
		panic(err)
	}
	s := analysis.SummarizePassive(balances, 500, 500)
	fmt.Printf("120 months at 12%%/yr: contributed $%.2f, final $%.2f (%.1f%%)\n\n",
		s.TotalContributed, s.FinalBalance, s.ReturnPct)

	fmt.Println("=== MM20/MM50 crossover ===")
	daily := syntheticDaily(180)
	cross, err := sim.SimulateCrossover(daily, 10000)
	if err != nil {
		panic(err)
	}
	for _, t := range cross.Ledger {
		fmt.Printf("%s %-10s price=%8.2f qty=%5d capital=%10.2f\n",
			t.Date.Format("2006-01-02"), string(t.Action), t.Price, t.Quantity, t.Capital)
	}
	cs := analysis.SummarizeCrossover(cross.Ledger, 10000, cross.FinalCapital)
	fmt.Printf("Operations=%d final=$%.2f (%.1f%%)\n\n", cs.Operations, cs.FinalCapital, cs.ReturnPct)

	fmt.Println("=== Momentum rotation ===")
	mom, err := sim.SimulateMomentum(syntheticMomentum())
	if err != nil {
		panic(err)
	}
	for i := 0; i < minInt(8, len(mom.Ledger)); i++ {
		e := mom.Ledger[i]
		fmt.Printf("%s %-6s buy=%7.2f qty=%4d sell=%7.2f ret=%6.2f%% end=%9.2f\n",
			e.Date.Format("2006-01"), e.Ticker, e.BuyPrice, e.Quantity, e.SellPrice, e.ReturnPct, e.EndValue)
	}
	if mom.Recommendation != nil {
		fmt.Printf("Next month pick: %s\n", strings.Join(mom.Recommendation.Tickers, ", "))
	}
	fmt.Printf("Final balance: $%.2f\n\n", mom.FinalBalance)

	monthly := syntheticMonthly(14)

	fmt.Println("=== Protective put ===")
	putRows, err := sim.SimulateProtectivePut(monthly, 500, 5, 2)
	if err != nil {
		panic(err)
	}
	ps := analysis.SummarizeProtectivePut(putRows)
	fmt.Printf("%d months: cost $%.2f, final $%.2f, net $%.2f (put exercised %d times)\n\n",
		ps.Months, ps.TotalCost, ps.TotalFinalValue, ps.NetProfit, ps.ProtectedMonths)

	fmt.Println("=== Bull call spread ===")
	bullRows, err := sim.SimulateBullCall(monthly, 500, sim.BullCallParams{
		OTMPct: 5, ITMPct: 5, PremiumITMPct: 8, PremiumOTMPct: 3,
	})
	if err != nil {
		panic(err)
	}
	bs := analysis.SummarizeBullCall(bullRows)
	fmt.Printf("%d months: cost $%.2f, payoff $%.2f, net $%.2f\n", bs.Months, bs.TotalCost, bs.TotalFinalValue, bs.NetProfit)
}

// syntheticDaily produces a sine-on-trend daily series long enough to cover
// the 50-bar warm-up and force at least one full crossover cycle.
func syntheticDaily(n int) []model.PriceBar {
	bars := make([]model.PriceBar, n)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 50 + 0.05*float64(i) + 8*math.Sin(float64(i)/18)
		bars[i] = model.PriceBar{
			Date:  start.AddDate(0, 0, i),
			Open:  price * 0.995,
			High:  price * 1.01,
			Low:   price * 0.99,
			Close: price,
		}
	}
	return bars
}

// syntheticMonthly produces a choppy month-end close series so both overlays
// see winning and losing months.
func syntheticMonthly(n int) []model.PriceBar {
	bars := make([]model.PriceBar, n)
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 40 + 6*math.Sin(float64(i)/1.5)
		bars[i] = model.PriceBar{
			Date:  start.AddDate(0, i, 0),
			Open:  price,
			High:  price * 1.02,
			Low:   price * 0.98,
			Close: price,
		}
	}
	return bars
}

func linearCloses(n int, base, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = base + step*float64(i)
	}
	return closes
}

func syntheticMomentum() sim.MomentumInput {
	const n = 10
	dates := make([]time.Time, n)
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, i, 0)
	}
	return sim.MomentumInput{
		Dates:   dates,
		Tickers: []string{"AAA", "BBB", "CCC"},
		Closes: map[string][]float64{
			"AAA": linearCloses(n, 10, 1.5),
			"BBB": linearCloses(n, 20, 0.4),
			"CCC": linearCloses(n, 30, -0.6),
		},
		InitialCapital:      500,
		MonthlyContribution: 500,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
