package handlers

import (
	"invest-sim/internal/analysis"
	"invest-sim/internal/api/models"
	"invest-sim/internal/sim"
)

// Ledger-to-response conversions. Dates become YYYY-MM-DD strings and
// amounts are rounded to 2 decimals here, never earlier.

func convertCrossoverLedger(ledger []sim.CrossoverTrade) []models.CrossoverTrade {
	out := make([]models.CrossoverTrade, len(ledger))
	for i, r := range ledger {
		out[i] = models.CrossoverTrade{
			Date:     r.Date.Format("2006-01-02"),
			Action:   string(r.Action),
			Price:    money(r.Price),
			Quantity: r.Quantity,
			Capital:  money(r.Capital),
		}
	}
	return out
}

func convertCrossoverSeries(series []sim.CrossoverPoint) []models.CrossoverPoint {
	out := make([]models.CrossoverPoint, len(series))
	for i, p := range series {
		out[i] = models.CrossoverPoint{
			Date:  p.Date.Format("2006-01-02"),
			Close: money(p.Close),
			MM20:  money(p.MM20),
			MM50:  money(p.MM50),
		}
	}
	return out
}

func convertMomentumLedger(ledger []sim.MomentumEntry) []models.MomentumEntry {
	out := make([]models.MomentumEntry, len(ledger))
	for i, e := range ledger {
		out[i] = models.MomentumEntry{
			Date:       e.Date.Format("2006-01-02"),
			Ticker:     e.Ticker,
			Allocation: money(e.Allocation),
			BuyPrice:   money(e.BuyPrice),
			Invested:   money(e.Invested),
			Quantity:   e.Quantity,
			Residual:   money(e.Residual),
			SellPrice:  money(e.SellPrice),
			Proceeds:   money(e.Proceeds),
			ReturnPct:  money(e.ReturnPct),
			EndValue:   money(e.EndValue),
		}
	}
	return out
}

func convertMomentumSummary(s analysis.MomentumSummary) models.MomentumSummary {
	out := models.MomentumSummary{
		Cycles:         s.Cycles,
		TotalAllocated: money(s.TotalAllocated),
		FinalBalance:   money(s.FinalBalance),
		NetGain:        money(s.NetGain),
		ReturnPct:      money(s.ReturnPct),
		Best: models.CycleOutcome{
			Ticker:    s.BestTicker,
			Date:      s.BestDate.Format("2006-01-02"),
			ReturnPct: money(s.BestReturnPct),
		},
		Worst: models.CycleOutcome{
			Ticker:    s.WorstTicker,
			Date:      s.WorstDate.Format("2006-01-02"),
			ReturnPct: money(s.WorstReturnPct),
		},
	}
	for _, t := range s.PerTicker {
		out.PerTicker = append(out.PerTicker, models.TickerStats{
			Ticker:         t.Ticker,
			TimesChosen:    t.TimesChosen,
			PositiveCycles: t.PositiveCycles,
			NegativeCycles: t.NegativeCycles,
			MeanReturnPct:  money(t.MeanReturnPct),
			MaxReturnPct:   money(t.MaxReturnPct),
			MinReturnPct:   money(t.MinReturnPct),
		})
	}
	return out
}

func convertOverlaySummary(s analysis.OverlaySummary) models.OverlaySummary {
	return models.OverlaySummary{
		Months:           s.Months,
		TotalCost:        money(s.TotalCost),
		TotalFinalValue:  money(s.TotalFinalValue),
		NetProfit:        money(s.NetProfit),
		ProfitableMonths: s.ProfitableMonths,
		LosingMonths:     s.LosingMonths,
		ProtectedMonths:  s.ProtectedMonths,
	}
}

func convertProtectivePutLedger(rows []sim.ProtectivePutRow) []models.ProtectivePutRow {
	out := make([]models.ProtectivePutRow, len(rows))
	for i, r := range rows {
		out[i] = models.ProtectivePutRow{
			Date:       r.Date.Format("2006-01-02"),
			BuyPrice:   money(r.BuyPrice),
			Strike:     money(r.Strike),
			Premium:    money(r.Premium),
			Quantity:   r.Quantity,
			StockCost:  money(r.StockCost),
			PutCost:    money(r.PutCost),
			TotalCost:  money(r.TotalCost),
			SellPrice:  money(r.SellPrice),
			PutPayoff:  money(r.PutPayoff),
			FinalValue: money(r.FinalValue),
			NetProfit:  money(r.NetProfit),
		}
	}
	return out
}

func convertBullCallLedger(rows []sim.BullCallRow) []models.BullCallRow {
	out := make([]models.BullCallRow, len(rows))
	for i, r := range rows {
		out[i] = models.BullCallRow{
			Date:        r.Date.Format("2006-01-02"),
			BuyPrice:    money(r.BuyPrice),
			StrikeOTM:   money(r.StrikeOTM),
			StrikeITM:   money(r.StrikeITM),
			Spread:      money(r.Spread),
			PremiumITM:  money(r.PremiumITM),
			PremiumOTM:  money(r.PremiumOTM),
			NetDebit:    money(r.NetDebit),
			Contracts:   r.Contracts,
			TotalCost:   money(r.TotalCost),
			SellPrice:   money(r.SellPrice),
			GrossPayoff: money(r.GrossPayoff),
			NetProfit:   money(r.NetProfit),
		}
	}
	return out
}
