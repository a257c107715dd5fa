package sim

import (
	"errors"
	"math"
	"testing"
	"time"
)

func monthDates(n int) []time.Time {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, i, 0)
	}
	return out
}

func constSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func doublingSeries(n int) []float64 {
	out := make([]float64, n)
	p := 1.0
	for i := range out {
		out[i] = p
		p *= 2
	}
	return out
}

func momentumInput(n int) MomentumInput {
	return MomentumInput{
		Dates:   monthDates(n),
		Tickers: []string{"AAA", "BBB", "CCC"},
		Closes: map[string][]float64{
			"AAA": doublingSeries(n),
			"BBB": constSeries(n, 10),
			"CCC": constSeries(n, 20),
		},
		InitialCapital:      500,
		MonthlyContribution: 500,
	}
}

func TestSimulateMomentum_PicksHighestTrailingReturn(t *testing.T) {
	res, err := SimulateMomentum(momentumInput(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// AAA doubles every month and must lead every cycle's pair.
	for i := 0; i < len(res.Ledger); i += 2 {
		if res.Ledger[i].Ticker != "AAA" {
			t.Errorf("cycle at %s: expected AAA first, got %s",
				res.Ledger[i].Date.Format("2006-01"), res.Ledger[i].Ticker)
		}
	}
}

func TestSimulateMomentum_TwoEntriesPerCycle(t *testing.T) {
	n := 8
	res, err := SimulateMomentum(momentumInput(n))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Cycles run from month 2 to month n-2 inclusive; the last month only
	// yields a recommendation.
	wantCycles := n - momentumLookback - 1
	if len(res.Ledger) != 2*wantCycles {
		t.Fatalf("expected %d ledger rows, got %d", 2*wantCycles, len(res.Ledger))
	}
	for i := 0; i < len(res.Ledger); i += 2 {
		if !res.Ledger[i].Date.Equal(res.Ledger[i+1].Date) {
			t.Errorf("rows %d,%d should share a cycle date", i, i+1)
		}
		if res.Ledger[i].Ticker == res.Ledger[i+1].Ticker {
			t.Errorf("cycle at %s picked the same ticker twice", res.Ledger[i].Date.Format("2006-01"))
		}
	}
}

func TestSimulateMomentum_TieBreakKeepsInputOrder(t *testing.T) {
	n := 6
	in := MomentumInput{
		Dates:   monthDates(n),
		Tickers: []string{"ZZZ", "MMM", "AAA"},
		Closes: map[string][]float64{
			"ZZZ": constSeries(n, 10),
			"MMM": constSeries(n, 20),
			"AAA": constSeries(n, 30),
		},
		InitialCapital: 500,
	}
	res, err := SimulateMomentum(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All trailing returns are 0; the stable sort must keep ZZZ then MMM.
	if res.Ledger[0].Ticker != "ZZZ" || res.Ledger[1].Ticker != "MMM" {
		t.Errorf("tie should keep input order, got %s, %s", res.Ledger[0].Ticker, res.Ledger[1].Ticker)
	}
}

func TestSimulateMomentum_CapitalChain(t *testing.T) {
	in := momentumInput(6)
	res, err := SimulateMomentum(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First cycle invests only the initial capital.
	firstAlloc := res.Ledger[0].Allocation + res.Ledger[1].Allocation
	if math.Abs(firstAlloc-in.InitialCapital) > 1e-9 {
		t.Errorf("first cycle should allocate %.2f, got %.2f", in.InitialCapital, firstAlloc)
	}

	// Every later cycle allocates the prior cycle's end value plus the
	// contribution.
	for i := 2; i < len(res.Ledger); i += 2 {
		prevEnd := res.Ledger[i-2].EndValue + res.Ledger[i-1].EndValue
		alloc := res.Ledger[i].Allocation + res.Ledger[i+1].Allocation
		want := prevEnd + in.MonthlyContribution
		if math.Abs(alloc-want) > 1e-9 {
			t.Errorf("cycle at row %d: allocated %.4f, expected %.4f", i, alloc, want)
		}
	}

	last := len(res.Ledger)
	wantFinal := res.Ledger[last-2].EndValue + res.Ledger[last-1].EndValue
	if math.Abs(res.FinalBalance-wantFinal) > 1e-9 {
		t.Errorf("final balance %.4f, expected %.4f", res.FinalBalance, wantFinal)
	}
}

func TestSimulateMomentum_RecommendationAtFinalMonth(t *testing.T) {
	n := 8
	in := momentumInput(n)
	res, err := SimulateMomentum(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recommendation == nil {
		t.Fatal("expected a recommendation for the final month")
	}
	if !res.Recommendation.Date.Equal(in.Dates[n-1]) {
		t.Errorf("recommendation dated %s, expected final month %s",
			res.Recommendation.Date.Format("2006-01"), in.Dates[n-1].Format("2006-01"))
	}
	if len(res.Recommendation.Tickers) != 2 {
		t.Errorf("expected 2 recommended tickers, got %v", res.Recommendation.Tickers)
	}
	if res.Recommendation.Tickers[0] != "AAA" {
		t.Errorf("doubling ticker should lead the recommendation, got %v", res.Recommendation.Tickers)
	}
}

func TestSimulateMomentum_Validation(t *testing.T) {
	t.Run("too few tickers", func(t *testing.T) {
		in := momentumInput(8)
		in.Tickers = in.Tickers[:2]
		_, err := SimulateMomentum(in)
		var ie *InputError
		if !errors.As(err, &ie) {
			t.Errorf("expected InputError, got %v", err)
		}
	})

	t.Run("misaligned series", func(t *testing.T) {
		in := momentumInput(8)
		in.Closes["BBB"] = in.Closes["BBB"][:5]
		_, err := SimulateMomentum(in)
		var ie *InputError
		if !errors.As(err, &ie) {
			t.Errorf("expected InputError, got %v", err)
		}
	})

	t.Run("non-positive close", func(t *testing.T) {
		in := momentumInput(8)
		in.Closes["CCC"][3] = 0
		_, err := SimulateMomentum(in)
		var ie *InputError
		if !errors.As(err, &ie) {
			t.Errorf("expected InputError, got %v", err)
		}
	})

	t.Run("too few months", func(t *testing.T) {
		_, err := SimulateMomentum(momentumInput(3))
		var de *DataError
		if !errors.As(err, &de) {
			t.Errorf("expected DataError, got %v", err)
		}
	})
}

func TestTrailingReturn(t *testing.T) {
	closes := []float64{10, 20, 30, 15}
	// Window ending at index 2: 20 -> 30 is +50%.
	if got := TrailingReturn(closes, 3); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %.6f", got)
	}
	// Latest window: 30 -> 15 is -50%.
	if got := TrailingReturn(closes, len(closes)); math.Abs(got-(-0.5)) > 1e-12 {
		t.Errorf("expected -0.5, got %.6f", got)
	}
}
