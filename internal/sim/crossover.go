package sim

import (
	"time"

	"invest-sim/internal/model"
)

// Moving-average windows of the crossover strategy.
const (
	shortWindow = 20
	longWindow  = 50
)

// TradeAction labels one ledger row. Keep these values stable; they go to
// CSV and JSON output.
type TradeAction string

const (
	ActionBuy       TradeAction = "BUY"
	ActionSell      TradeAction = "SELL"
	ActionFinalSell TradeAction = "FINAL_SELL"
)

// CrossoverPoint is one bar of the annotated series returned for charting:
// the close plus both moving averages, defined only after warm-up.
type CrossoverPoint struct {
	Date  time.Time
	Close float64
	MM20  float64
	MM50  float64
}

// CrossoverTrade is one row of the crossover ledger.
type CrossoverTrade struct {
	Date     time.Time
	Action   TradeAction
	Price    float64
	Quantity int64
	// Capital is the cash balance after the trade: residual cash while
	// holding, full proceeds after a sale.
	Capital float64
}

type CrossoverResult struct {
	// Annotated is the input series restricted to bars where both averages
	// are defined, with MM20/MM50 attached. Read-only once returned.
	Annotated    []CrossoverPoint
	Ledger       []CrossoverTrade
	FinalCapital float64
}

// SimulateCrossover runs the MM20/MM50 crossover state machine over a daily
// price series.
//
// The engine is Flat or Holding, never short, never more than one open
// position. An upward strict cross (MM20 moves from <=MM50 to >MM50 against
// the prior bar) buys floor(capital/close) whole shares; a downward strict
// cross sells the entire position. A position still open at the last bar is
// force-liquidated at the final close.
//
// The bar entering average coverage counts as crossed when MM20 is already
// above MM50 there: the prior, undefined bar is treated as MM20 == MM50.
func SimulateCrossover(bars []model.PriceBar, initialCapital float64) (*CrossoverResult, error) {
	if initialCapital <= 0 {
		return nil, inputErrorf("initial capital must be > 0, got %.2f", initialCapital)
	}
	if err := model.ValidateSeries(bars); err != nil {
		return nil, inputErrorf("invalid price series: %v", err)
	}
	if len(bars) < longWindow+1 {
		return nil, dataErrorf("crossover needs at least %d bars after the %d-bar warm-up, got %d bars",
			2, longWindow, len(bars))
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	short := rollingMean(closes, shortWindow)
	long := rollingMean(closes, longWindow)

	// Drop warm-up: both averages are defined from longWindow-1 on.
	annotated := make([]CrossoverPoint, 0, len(bars)-longWindow+1)
	for i := longWindow - 1; i < len(bars); i++ {
		annotated = append(annotated, CrossoverPoint{
			Date:  bars[i].Date,
			Close: bars[i].Close,
			MM20:  short[i],
			MM50:  long[i],
		})
	}

	capital := initialCapital
	var qty int64
	holding := false
	ledger := make([]CrossoverTrade, 0, 8)

	// Seed the prior bar as MM20 == MM50 so an already-above first bar
	// registers as an upward cross and an already-below one does not.
	prevShort, prevLong := 0.0, 0.0

	for i, pt := range annotated {
		crossUp := pt.MM20 > pt.MM50 && prevShort <= prevLong
		crossDown := pt.MM20 < pt.MM50 && prevShort >= prevLong

		switch {
		case !holding && crossUp:
			qty = int64(capital / pt.Close)
			if qty > 0 {
				capital -= float64(qty) * pt.Close
				ledger = append(ledger, CrossoverTrade{
					Date: pt.Date, Action: ActionBuy, Price: pt.Close, Quantity: qty, Capital: capital,
				})
				holding = true
			}
		case holding && crossDown:
			capital += float64(qty) * pt.Close
			ledger = append(ledger, CrossoverTrade{
				Date: pt.Date, Action: ActionSell, Price: pt.Close, Quantity: qty, Capital: capital,
			})
			qty = 0
			holding = false
		}

		if holding && i == len(annotated)-1 {
			capital += float64(qty) * pt.Close
			ledger = append(ledger, CrossoverTrade{
				Date: pt.Date, Action: ActionFinalSell, Price: pt.Close, Quantity: qty, Capital: capital,
			})
			qty = 0
			holding = false
		}

		prevShort, prevLong = pt.MM20, pt.MM50
	}

	return &CrossoverResult{
		Annotated:    annotated,
		Ledger:       ledger,
		FinalCapital: capital,
	}, nil
}
