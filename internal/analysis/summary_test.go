package analysis

import (
	"math"
	"testing"
	"time"

	"invest-sim/internal/sim"
)

func day(i int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func TestSummarizePassive(t *testing.T) {
	balances := []float64{1000, 1110, 1221.1}
	s := SummarizePassive(balances, 1000, 100)
	if s.TotalContributed != 1200 {
		t.Errorf("contributed should be 1200, got %.2f", s.TotalContributed)
	}
	if s.FinalBalance != 1221.1 {
		t.Errorf("final should be 1221.1, got %.2f", s.FinalBalance)
	}
	if math.Abs(s.NetGain-21.1) > 1e-9 {
		t.Errorf("net gain should be 21.1, got %.4f", s.NetGain)
	}
	if math.Abs(s.ReturnPct-21.1/1200*100) > 1e-9 {
		t.Errorf("unexpected return pct %.4f", s.ReturnPct)
	}

	if s := SummarizePassive(nil, 0, 0); s.FinalBalance != 0 {
		t.Errorf("empty run should summarize to zero, got %+v", s)
	}
}

func TestSummarizeCrossover_WinLoss(t *testing.T) {
	ledger := []sim.CrossoverTrade{
		{Date: day(0), Action: sim.ActionBuy, Price: 10, Quantity: 100, Capital: 0},
		{Date: day(1), Action: sim.ActionSell, Price: 12, Quantity: 100, Capital: 1200},
		{Date: day(2), Action: sim.ActionBuy, Price: 12, Quantity: 100, Capital: 0},
		{Date: day(3), Action: sim.ActionFinalSell, Price: 11, Quantity: 100, Capital: 1100},
	}
	s := SummarizeCrossover(ledger, 1000, 1100)
	if s.Operations != 4 {
		t.Errorf("expected 4 operations, got %d", s.Operations)
	}
	if s.Wins != 1 || s.Losses != 1 {
		t.Errorf("expected 1 win / 1 loss, got %d / %d", s.Wins, s.Losses)
	}
	if math.Abs(s.NetGain-100) > 1e-9 {
		t.Errorf("net gain should be 100, got %.4f", s.NetGain)
	}
	if math.Abs(s.ReturnPct-10) > 1e-9 {
		t.Errorf("return should be 10%%, got %.4f", s.ReturnPct)
	}
}

func TestSummarizeMomentum(t *testing.T) {
	res := &sim.MomentumResult{
		Ledger: []sim.MomentumEntry{
			{Date: day(0), Ticker: "AAA", Allocation: 250, ReturnPct: 10, EndValue: 275},
			{Date: day(0), Ticker: "BBB", Allocation: 250, ReturnPct: -4, EndValue: 240},
			{Date: day(30), Ticker: "AAA", Allocation: 500, ReturnPct: 20, EndValue: 600},
			{Date: day(30), Ticker: "CCC", Allocation: 500, ReturnPct: 0, EndValue: 500},
		},
		FinalBalance: 1100,
	}
	s := SummarizeMomentum(res)
	if s.Cycles != 2 {
		t.Errorf("expected 2 cycles, got %d", s.Cycles)
	}
	if s.BestTicker != "AAA" || s.BestReturnPct != 20 {
		t.Errorf("best should be AAA at 20%%, got %s at %.1f", s.BestTicker, s.BestReturnPct)
	}
	if s.WorstTicker != "BBB" || s.WorstReturnPct != -4 {
		t.Errorf("worst should be BBB at -4%%, got %s at %.1f", s.WorstTicker, s.WorstReturnPct)
	}

	if len(s.PerTicker) != 3 {
		t.Fatalf("expected 3 per-ticker rows, got %d", len(s.PerTicker))
	}
	// First-seen order.
	if s.PerTicker[0].Ticker != "AAA" || s.PerTicker[1].Ticker != "BBB" || s.PerTicker[2].Ticker != "CCC" {
		t.Errorf("per-ticker order should be first-seen, got %+v", s.PerTicker)
	}
	aaa := s.PerTicker[0]
	if aaa.TimesChosen != 2 || aaa.PositiveCycles != 2 {
		t.Errorf("AAA stats off: %+v", aaa)
	}
	if math.Abs(aaa.MeanReturnPct-15) > 1e-9 {
		t.Errorf("AAA mean should be 15, got %.4f", aaa.MeanReturnPct)
	}
	if aaa.MaxReturnPct != 20 || aaa.MinReturnPct != 10 {
		t.Errorf("AAA min/max off: %+v", aaa)
	}
}

func TestSummarizeMomentum_Empty(t *testing.T) {
	s := SummarizeMomentum(&sim.MomentumResult{FinalBalance: 500})
	if s.Cycles != 0 || len(s.PerTicker) != 0 {
		t.Errorf("empty ledger should give empty summary, got %+v", s)
	}
}

func TestSummarizeProtectivePut(t *testing.T) {
	rows := []sim.ProtectivePutRow{
		{TotalCost: 100, FinalValue: 120, NetProfit: 20},
		{TotalCost: 100, FinalValue: 80, NetProfit: -20, PutPayoff: 30},
		{TotalCost: 100, FinalValue: 100, NetProfit: 0},
	}
	s := SummarizeProtectivePut(rows)
	if s.Months != 3 {
		t.Errorf("expected 3 months, got %d", s.Months)
	}
	if s.ProfitableMonths != 1 || s.LosingMonths != 1 {
		t.Errorf("expected 1 profitable / 1 losing, got %d / %d", s.ProfitableMonths, s.LosingMonths)
	}
	if s.ProtectedMonths != 1 {
		t.Errorf("expected 1 protected month, got %d", s.ProtectedMonths)
	}
	if s.TotalCost != 300 || s.TotalFinalValue != 300 || s.NetProfit != 0 {
		t.Errorf("totals off: %+v", s)
	}
}

func TestSummarizeBullCall(t *testing.T) {
	rows := []sim.BullCallRow{
		{TotalCost: 890, GrossPayoff: 2000, NetProfit: 1110},
		{TotalCost: 890, GrossPayoff: 0, NetProfit: -890},
	}
	s := SummarizeBullCall(rows)
	if s.Months != 2 || s.ProfitableMonths != 1 || s.LosingMonths != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.ProtectedMonths != 0 {
		t.Errorf("bull call has no protection leg, got %d", s.ProtectedMonths)
	}
	if math.Abs(s.NetProfit-220) > 1e-9 {
		t.Errorf("net should be 220, got %.4f", s.NetProfit)
	}
}
