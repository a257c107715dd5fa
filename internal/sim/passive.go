package sim

import "math"

// SimulatePassive runs the buy-and-hold compounding recurrence: a fixed
// monthly contribution compounding at the effective monthly rate derived from
// the nominal annual rate.
//
// The returned sequence has years*12+1 points; index 0 is the initial
// balance. Appended balances are rounded to 2 decimals, matching the ledger
// granularity of this strategy. Negative rates are allowed (the balance can
// shrink); negative amounts or years are not.
func SimulatePassive(initial, monthly float64, years int, annualRatePct float64) ([]float64, error) {
	if years < 0 {
		return nil, inputErrorf("years must be >= 0, got %d", years)
	}
	if initial < 0 {
		return nil, inputErrorf("initial contribution must be >= 0, got %.2f", initial)
	}
	if monthly < 0 {
		return nil, inputErrorf("monthly contribution must be >= 0, got %.2f", monthly)
	}

	monthlyRate := math.Pow(1+annualRatePct/100, 1.0/12) - 1

	balances := make([]float64, 0, years*12+1)
	balances = append(balances, initial)
	balance := initial
	for m := 0; m < years*12; m++ {
		balance = balance*(1+monthlyRate) + monthly
		balances = append(balances, round2(balance))
	}
	return balances, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
