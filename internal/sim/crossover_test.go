package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"invest-sim/internal/model"
)

func dailyBars(closes []float64) []model.PriceBar {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func risingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func TestSimulateCrossover_RisingSeriesBuysOnce(t *testing.T) {
	res, err := SimulateCrossover(dailyBars(risingCloses(80)), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A monotonically rising series has MM20 > MM50 from the first
	// annotated bar, which counts as the entry cross. No bar ever crosses
	// back down, so the only sale is the terminal liquidation.
	if len(res.Ledger) != 2 {
		t.Fatalf("expected BUY + FINAL_SELL, got %d trades: %+v", len(res.Ledger), res.Ledger)
	}
	if res.Ledger[0].Action != ActionBuy {
		t.Errorf("first trade should be BUY, got %s", res.Ledger[0].Action)
	}
	if res.Ledger[1].Action != ActionFinalSell {
		t.Errorf("last trade should be FINAL_SELL, got %s", res.Ledger[1].Action)
	}
	if res.FinalCapital <= 10000 {
		t.Errorf("buy-and-rise should profit, final=%.2f", res.FinalCapital)
	}
}

func TestSimulateCrossover_FallingSeriesNeverBuys(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	res, err := SimulateCrossover(dailyBars(closes), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Ledger) != 0 {
		t.Errorf("falling series should never enter, got %d trades", len(res.Ledger))
	}
	if res.FinalCapital != 10000 {
		t.Errorf("capital must be untouched, got %.2f", res.FinalCapital)
	}
}

func TestSimulateCrossover_FullCycle(t *testing.T) {
	// Rise long enough to enter, then fall hard enough to drag MM20 below
	// MM50 and force an exit before the end.
	closes := make([]float64, 0, 160)
	for i := 0; i < 80; i++ {
		closes = append(closes, 100+float64(i))
	}
	for i := 0; i < 80; i++ {
		closes = append(closes, 180-2*float64(i))
	}
	res, err := SimulateCrossover(dailyBars(closes), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sells int
	for _, tr := range res.Ledger {
		if tr.Action == ActionSell {
			sells++
		}
	}
	if sells == 0 {
		t.Fatalf("expected a downward cross sale, ledger: %+v", res.Ledger)
	}
	if last := res.Ledger[len(res.Ledger)-1]; last.Action == ActionFinalSell {
		t.Errorf("position should already be flat at the end, got terminal %s", last.Action)
	}
}

func TestSimulateCrossover_NeverShortNeverDouble(t *testing.T) {
	closes := make([]float64, 0, 200)
	for i := 0; i < 200; i++ {
		closes = append(closes, 100+20*math.Sin(float64(i)/10))
	}
	res, err := SimulateCrossover(dailyBars(closes), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	holding := false
	for i, tr := range res.Ledger {
		switch tr.Action {
		case ActionBuy:
			if holding {
				t.Fatalf("trade %d: BUY while already holding", i)
			}
			holding = true
		case ActionSell, ActionFinalSell:
			if !holding {
				t.Fatalf("trade %d: %s while flat", i, tr.Action)
			}
			holding = false
		}
		if tr.Quantity <= 0 {
			t.Errorf("trade %d: non-positive quantity %d", i, tr.Quantity)
		}
	}
	if holding {
		t.Error("ledger ends with an open position")
	}
}

func TestSimulateCrossover_CapitalConserved(t *testing.T) {
	res, err := SimulateCrossover(dailyBars(risingCloses(80)), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buy, sell := res.Ledger[0], res.Ledger[1]
	// Residual after the buy plus the sale proceeds is the final capital.
	want := buy.Capital + float64(sell.Quantity)*sell.Price
	if math.Abs(res.FinalCapital-want) > 1e-9 {
		t.Errorf("final capital %.6f, expected %.6f", res.FinalCapital, want)
	}
	if sell.Quantity != buy.Quantity {
		t.Errorf("terminal sale quantity %d != bought %d", sell.Quantity, buy.Quantity)
	}
}

func TestSimulateCrossover_AnnotatedDropsWarmup(t *testing.T) {
	res, err := SimulateCrossover(dailyBars(risingCloses(80)), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Annotated) != 80-(longWindow-1) {
		t.Errorf("expected %d annotated bars, got %d", 80-(longWindow-1), len(res.Annotated))
	}
	for i, pt := range res.Annotated {
		if pt.MM20 == 0 || pt.MM50 == 0 {
			t.Fatalf("annotated bar %d has undefined average", i)
		}
	}
}

func TestSimulateCrossover_TooFewBars(t *testing.T) {
	_, err := SimulateCrossover(dailyBars(risingCloses(longWindow)), 10000)
	var de *DataError
	if !errors.As(err, &de) {
		t.Errorf("expected DataError for %d bars, got %v", longWindow, err)
	}
}

func TestSimulateCrossover_RejectsBadInputs(t *testing.T) {
	bars := dailyBars(risingCloses(80))

	_, err := SimulateCrossover(bars, 0)
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Errorf("expected InputError for zero capital, got %v", err)
	}

	// Duplicate date breaks the ordering invariant.
	bad := dailyBars(risingCloses(80))
	bad[10].Date = bad[9].Date
	_, err = SimulateCrossover(bad, 10000)
	if !errors.As(err, &ie) {
		t.Errorf("expected InputError for unordered series, got %v", err)
	}
}

func TestRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := rollingMean(values, 3)
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("warm-up positions should be zero, got %v", out[:2])
	}
	want := []float64{0, 0, 2, 3, 4}
	for i := 2; i < len(values); i++ {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: expected %.1f, got %.6f", i, want[i], out[i])
		}
	}
	if got := rollingMean([]float64{1, 2}, 3); got[0] != 0 || got[1] != 0 {
		t.Errorf("window longer than input should yield zeros, got %v", got)
	}
}
