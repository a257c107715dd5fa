package analysis

import (
	"time"

	"invest-sim/internal/sim"
)

// Display aggregates derived from simulation ledgers. The engine never
// computes these; they belong to the presentation side of the boundary.

// PassiveSummary explains a compounding run against the money put in.
type PassiveSummary struct {
	TotalContributed float64
	FinalBalance     float64
	NetGain          float64
	ReturnPct        float64
}

func SummarizePassive(balances []float64, initial, monthly float64) PassiveSummary {
	if len(balances) == 0 {
		return PassiveSummary{}
	}
	months := len(balances) - 1
	contributed := initial + monthly*float64(months)
	final := balances[len(balances)-1]
	s := PassiveSummary{
		TotalContributed: contributed,
		FinalBalance:     final,
		NetGain:          final - contributed,
	}
	if contributed > 0 {
		s.ReturnPct = s.NetGain / contributed * 100
	}
	return s
}

// CrossoverSummary counts operations and nets out the run.
type CrossoverSummary struct {
	Operations   int
	Wins         int
	Losses       int
	FinalCapital float64
	NetGain      float64
	ReturnPct    float64
}

// SummarizeCrossover classifies each sale by whether it grew capital over
// the matching buy (the buy row holds only residual cash, so wins are judged
// sale proceeds vs invested amount).
func SummarizeCrossover(ledger []sim.CrossoverTrade, initialCapital, finalCapital float64) CrossoverSummary {
	s := CrossoverSummary{
		Operations:   len(ledger),
		FinalCapital: finalCapital,
		NetGain:      finalCapital - initialCapital,
	}
	if initialCapital > 0 {
		s.ReturnPct = s.NetGain / initialCapital * 100
	}
	var buyPrice float64
	for _, row := range ledger {
		switch row.Action {
		case sim.ActionBuy:
			buyPrice = row.Price
		case sim.ActionSell, sim.ActionFinalSell:
			if row.Price > buyPrice {
				s.Wins++
			} else {
				s.Losses++
			}
		}
	}
	return s
}

// TickerStats aggregates one ticker's showing across momentum cycles.
type TickerStats struct {
	Ticker         string
	TimesChosen    int
	PositiveCycles int
	NegativeCycles int
	MeanReturnPct  float64
	MaxReturnPct   float64
	MinReturnPct   float64
}

// MomentumSummary nets out a rotation run, with best/worst individual
// allocations and per-ticker stats.
type MomentumSummary struct {
	Cycles         int
	TotalAllocated float64
	FinalBalance   float64
	NetGain        float64
	ReturnPct      float64

	BestTicker    string
	BestDate      time.Time
	BestReturnPct float64

	WorstTicker    string
	WorstDate      time.Time
	WorstReturnPct float64

	PerTicker []TickerStats
}

func SummarizeMomentum(res *sim.MomentumResult) MomentumSummary {
	s := MomentumSummary{
		Cycles:       len(res.Ledger) / 2,
		FinalBalance: res.FinalBalance,
	}
	if len(res.Ledger) == 0 {
		return s
	}

	byTicker := map[string]*TickerStats{}
	order := []string{}
	best, worst := res.Ledger[0], res.Ledger[0]

	for _, e := range res.Ledger {
		s.TotalAllocated += e.Allocation
		if e.ReturnPct > best.ReturnPct {
			best = e
		}
		if e.ReturnPct < worst.ReturnPct {
			worst = e
		}

		st, ok := byTicker[e.Ticker]
		if !ok {
			st = &TickerStats{Ticker: e.Ticker, MaxReturnPct: e.ReturnPct, MinReturnPct: e.ReturnPct}
			byTicker[e.Ticker] = st
			order = append(order, e.Ticker)
		}
		st.TimesChosen++
		if e.ReturnPct > 0 {
			st.PositiveCycles++
		} else if e.ReturnPct < 0 {
			st.NegativeCycles++
		}
		st.MeanReturnPct += e.ReturnPct
		if e.ReturnPct > st.MaxReturnPct {
			st.MaxReturnPct = e.ReturnPct
		}
		if e.ReturnPct < st.MinReturnPct {
			st.MinReturnPct = e.ReturnPct
		}
	}

	s.NetGain = s.FinalBalance - s.TotalAllocated
	if s.TotalAllocated > 0 {
		s.ReturnPct = s.NetGain / s.TotalAllocated * 100
	}
	s.BestTicker, s.BestDate, s.BestReturnPct = best.Ticker, best.Date, best.ReturnPct
	s.WorstTicker, s.WorstDate, s.WorstReturnPct = worst.Ticker, worst.Date, worst.ReturnPct

	for _, t := range order {
		st := byTicker[t]
		st.MeanReturnPct /= float64(st.TimesChosen)
		s.PerTicker = append(s.PerTicker, *st)
	}
	return s
}

// OverlaySummary nets out an options overlay (protective put or bull call
// spread) where each month stands alone.
type OverlaySummary struct {
	Months           int
	TotalCost        float64
	TotalFinalValue  float64
	NetProfit        float64
	ProfitableMonths int
	LosingMonths     int
	// ProtectedMonths counts months where the put paid; always 0 for the
	// bull call spread.
	ProtectedMonths int
}

func SummarizeProtectivePut(rows []sim.ProtectivePutRow) OverlaySummary {
	s := OverlaySummary{Months: len(rows)}
	for _, r := range rows {
		s.TotalCost += r.TotalCost
		s.TotalFinalValue += r.FinalValue
		s.NetProfit += r.NetProfit
		if r.NetProfit > 0 {
			s.ProfitableMonths++
		} else if r.NetProfit < 0 {
			s.LosingMonths++
		}
		if r.PutPayoff > 0 {
			s.ProtectedMonths++
		}
	}
	return s
}

func SummarizeBullCall(rows []sim.BullCallRow) OverlaySummary {
	s := OverlaySummary{Months: len(rows)}
	for _, r := range rows {
		s.TotalCost += r.TotalCost
		s.TotalFinalValue += r.GrossPayoff
		s.NetProfit += r.NetProfit
		if r.NetProfit > 0 {
			s.ProfitableMonths++
		} else if r.NetProfit < 0 {
			s.LosingMonths++
		}
	}
	return s
}
