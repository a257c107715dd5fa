package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"invest-sim/internal/model"
)

func monthlyBars(closes []float64) []model.PriceBar {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: start.AddDate(0, i, 0), Close: c}
	}
	return bars
}

func TestSimulateProtectivePut_RowCountDropsLastTwo(t *testing.T) {
	bars := monthlyBars([]float64{50, 52, 48, 55, 53})
	rows, err := SimulateProtectivePut(bars, 500, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != len(bars)-2 {
		t.Errorf("expected %d rows, got %d", len(bars)-2, len(rows))
	}
}

func TestSimulateProtectivePut_RowEconomics(t *testing.T) {
	bars := monthlyBars([]float64{100, 90, 95})
	rows, err := SimulateProtectivePut(bars, 1000, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := rows[0]

	if r.Quantity != 10 {
		t.Errorf("expected 10 shares at 100 for 1000, got %d", r.Quantity)
	}
	if math.Abs(r.Strike-95) > 1e-9 {
		t.Errorf("strike should be 95, got %.4f", r.Strike)
	}
	if math.Abs(r.Premium-2) > 1e-9 {
		t.Errorf("premium should be 2, got %.4f", r.Premium)
	}
	if math.Abs(r.TotalCost-(1000+20)) > 1e-9 {
		t.Errorf("total cost should be 1020, got %.4f", r.TotalCost)
	}
	// Sale at 90 is below the 95 strike: the put pays (95-90)*10.
	if math.Abs(r.PutPayoff-50) > 1e-9 {
		t.Errorf("put payoff should be 50, got %.4f", r.PutPayoff)
	}
	if math.Abs(r.FinalValue-(900+50)) > 1e-9 {
		t.Errorf("final value should be 950, got %.4f", r.FinalValue)
	}
	if math.Abs(r.NetProfit-(950-1020)) > 1e-9 {
		t.Errorf("net profit should be -70, got %.4f", r.NetProfit)
	}
}

func TestSimulateProtectivePut_PayoffOnlyBelowStrike(t *testing.T) {
	closes := []float64{40, 36, 44, 41, 40, 39, 45}
	rows, err := SimulateProtectivePut(monthlyBars(closes), 500, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range rows {
		if r.PutPayoff < 0 {
			t.Errorf("row %d: negative payoff %.4f", i, r.PutPayoff)
		}
		if r.SellPrice < r.Strike && r.PutPayoff == 0 && r.Quantity > 0 {
			t.Errorf("row %d: sale %.2f below strike %.2f but put paid nothing", i, r.SellPrice, r.Strike)
		}
		if r.SellPrice >= r.Strike && r.PutPayoff != 0 {
			t.Errorf("row %d: sale %.2f at or above strike %.2f but put paid %.4f",
				i, r.SellPrice, r.Strike, r.PutPayoff)
		}
	}
}

func TestSimulateProtectivePut_LossBoundedByStrike(t *testing.T) {
	// Crash month: the put floors the stock leg at the strike, so the
	// worst case loss is strike distance plus the premium.
	bars := monthlyBars([]float64{100, 10, 10})
	rows, err := SimulateProtectivePut(bars, 1000, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := rows[0]
	maxLoss := (100-95)*float64(r.Quantity) + r.PutCost
	if r.NetProfit < -maxLoss-1e-9 {
		t.Errorf("loss %.4f exceeds protected bound %.4f", -r.NetProfit, maxLoss)
	}
}

func TestSimulateProtectivePut_Validation(t *testing.T) {
	bars := monthlyBars([]float64{50, 52, 48, 55})

	var ie *InputError
	if _, err := SimulateProtectivePut(bars, 0, 5, 2); !errors.As(err, &ie) {
		t.Errorf("expected InputError for zero contribution, got %v", err)
	}
	if _, err := SimulateProtectivePut(bars, 500, 0, 2); !errors.As(err, &ie) {
		t.Errorf("expected InputError for strike pct 0, got %v", err)
	}
	if _, err := SimulateProtectivePut(bars, 500, 5, 11); !errors.As(err, &ie) {
		t.Errorf("expected InputError for premium pct 11, got %v", err)
	}

	var de *DataError
	if _, err := SimulateProtectivePut(monthlyBars([]float64{50, 52}), 500, 5, 2); !errors.As(err, &de) {
		t.Errorf("expected DataError for 2 bars, got %v", err)
	}
}
