package sim

import (
	"sort"
	"time"
)

// MomentumInput is the aligned monthly close matrix for a rotation run.
// Tickers carries the caller's ordering; it is the tie-break for equal
// trailing returns, so it must be deterministic.
type MomentumInput struct {
	Dates   []time.Time
	Tickers []string
	Closes  map[string][]float64

	InitialCapital      float64
	MonthlyContribution float64
}

// MomentumEntry is one ledger row: one asset of one monthly rotation cycle,
// bought at month i and liquidated at month i+1.
type MomentumEntry struct {
	Date       time.Time
	Ticker     string
	Allocation float64
	BuyPrice   float64
	Invested   float64
	Quantity   int64
	Residual   float64
	SellPrice  float64
	Proceeds   float64
	ReturnPct  float64
	EndValue   float64
}

// Recommendation is the informational pick for the final month, which has no
// forward price to realize a sale against. It is not a ledger row.
type Recommendation struct {
	Date    time.Time
	Tickers []string
}

type MomentumResult struct {
	Ledger         []MomentumEntry
	FinalBalance   float64
	Recommendation *Recommendation
}

// momentumLookback is the number of trailing monthly closes the ranking
// return is compounded over.
const momentumLookback = 2

// SimulateMomentum runs the monthly rotation: each month rank every ticker by
// trailing 2-month compounded return, split the investable capital 50/50
// across the top 2, hold one month, liquidate, and chain the proceeds into
// the next cycle.
//
// The first rotation month invests only the initial capital; every later
// cycle adds the monthly contribution on top of the prior balance. The last
// month has no forward price, so it yields a recommendation instead of a
// trade.
func SimulateMomentum(in MomentumInput) (*MomentumResult, error) {
	if len(in.Tickers) < 3 {
		return nil, inputErrorf("momentum needs at least 3 tickers, got %d", len(in.Tickers))
	}
	if in.InitialCapital <= 0 {
		return nil, inputErrorf("initial capital must be > 0, got %.2f", in.InitialCapital)
	}
	if in.MonthlyContribution < 0 {
		return nil, inputErrorf("monthly contribution must be >= 0, got %.2f", in.MonthlyContribution)
	}
	n := len(in.Dates)
	for _, t := range in.Tickers {
		closes, ok := in.Closes[t]
		if !ok {
			return nil, inputErrorf("no price series for ticker %s", t)
		}
		if len(closes) != n {
			return nil, inputErrorf("ticker %s has %d monthly closes, expected %d (series must be aligned)",
				t, len(closes), n)
		}
		for i, p := range closes {
			if p <= 0 {
				return nil, inputErrorf("ticker %s has non-positive close %.4f at month %d", t, p, i)
			}
		}
	}
	// i runs from momentumLookback; the first iteration must still have a
	// forward month to sell into.
	if n < momentumLookback+2 {
		return nil, dataErrorf("momentum needs at least %d aligned monthly closes, got %d", momentumLookback+2, n)
	}

	balance := in.InitialCapital
	ledger := make([]MomentumEntry, 0, 2*(n-momentumLookback))
	var rec *Recommendation

	for i := momentumLookback; i < n; i++ {
		top := topTickers(in, i, 2)

		if i+1 >= n {
			rec = &Recommendation{Date: in.Dates[i], Tickers: top}
			break
		}

		capital := balance
		if i > momentumLookback {
			capital += in.MonthlyContribution
		}

		balance = 0
		for _, ticker := range top {
			alloc := capital / 2
			buy := in.Closes[ticker][i]
			qty := int64(alloc / buy)
			invested := float64(qty) * buy
			residual := alloc - invested
			sell := in.Closes[ticker][i+1]
			proceeds := float64(qty) * sell
			end := residual + proceeds

			ledger = append(ledger, MomentumEntry{
				Date:       in.Dates[i],
				Ticker:     ticker,
				Allocation: alloc,
				BuyPrice:   buy,
				Invested:   invested,
				Quantity:   qty,
				Residual:   residual,
				SellPrice:  sell,
				Proceeds:   proceeds,
				ReturnPct:  (sell - buy) / buy * 100,
				EndValue:   end,
			})
			balance += end
		}
	}

	return &MomentumResult{
		Ledger:         ledger,
		FinalBalance:   balance,
		Recommendation: rec,
	}, nil
}

// TrailingReturn is the compounded return over the momentumLookback most
// recent monthly closes ending just before index i. With a lookback of 2 this
// reduces to closes[i-1]/closes[i-2] - 1.
func TrailingReturn(closes []float64, i int) float64 {
	ret := 1.0
	for k := i - momentumLookback + 1; k < i; k++ {
		ret *= closes[k] / closes[k-1]
	}
	return ret - 1
}

// topTickers ranks by trailing return, descending. The sort is stable, so
// ties keep the caller's ticker order; no further tie-break is applied.
func topTickers(in MomentumInput, i, k int) []string {
	ranked := make([]string, len(in.Tickers))
	copy(ranked, in.Tickers)
	sort.SliceStable(ranked, func(a, b int) bool {
		return TrailingReturn(in.Closes[ranked[a]], i) > TrailingReturn(in.Closes[ranked[b]], i)
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
