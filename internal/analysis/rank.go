package analysis

import (
	"sort"

	"invest-sim/internal/sim"
)

// RankedTicker is one row of a watchlist momentum ranking.
type RankedTicker struct {
	Rank         int
	Ticker       string
	LastClose    float64
	TrailingPct  float64
	MonthsOfData int
}

// RankByTrailingReturn orders tickers by their trailing 2-month compounded
// return, descending. The sort is stable: ties keep the input order. Tickers
// with fewer than 2 monthly closes are excluded (no defined return).
func RankByTrailingReturn(tickers []string, closes map[string][]float64) []RankedTicker {
	out := make([]RankedTicker, 0, len(tickers))
	for _, t := range tickers {
		series := closes[t]
		if len(series) < 2 {
			continue
		}
		out = append(out, RankedTicker{
			Ticker:       t,
			LastClose:    series[len(series)-1],
			TrailingPct:  sim.TrailingReturn(series, len(series)) * 100,
			MonthsOfData: len(series),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TrailingPct > out[j].TrailingPct
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
