package sim

import (
	"time"

	"invest-sim/internal/model"
)

// ProtectivePutRow is one month of the protective-put overlay: buy shares
// with the fixed contribution, buy a put per share, realize one month later.
// Months are independent; proceeds are never reinvested.
type ProtectivePutRow struct {
	Date      time.Time
	BuyPrice  float64
	Strike    float64
	Premium   float64
	Quantity  int64
	StockCost float64
	PutCost   float64
	TotalCost float64
	SellPrice float64
	// PutPayoff is max(0, Strike-SellPrice)*Quantity: the put pays exactly
	// when the price closes below the strike.
	PutPayoff  float64
	FinalValue float64
	NetProfit  float64
}

// SimulateProtectivePut runs the protective-put overlay over a monthly close
// series. The strike sits strikePct below the purchase price and the premium
// is premiumPct of it, both whole percentages in [1,10]. The last two bars
// have no forward close to realize against and are dropped.
func SimulateProtectivePut(bars []model.PriceBar, monthly float64, strikePct, premiumPct int) ([]ProtectivePutRow, error) {
	if monthly <= 0 {
		return nil, inputErrorf("monthly contribution must be > 0, got %.2f", monthly)
	}
	if err := validatePct("strike", strikePct); err != nil {
		return nil, err
	}
	if err := validatePct("premium", premiumPct); err != nil {
		return nil, err
	}
	if err := model.ValidateSeries(bars); err != nil {
		return nil, inputErrorf("invalid price series: %v", err)
	}
	if len(bars) < 3 {
		return nil, dataErrorf("protective put needs at least 3 monthly bars, got %d", len(bars))
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return nil, inputErrorf("non-positive close %.4f at month %d", b.Close, i)
		}
	}

	rows := make([]ProtectivePutRow, 0, len(bars)-2)
	for i := 0; i < len(bars)-2; i++ {
		buy := bars[i].Close
		strike := buy * (1 - float64(strikePct)/100)
		premium := buy * float64(premiumPct) / 100
		qty := int64(monthly / buy)
		stockCost := float64(qty) * buy
		putCost := float64(qty) * premium

		sell := bars[i+1].Close
		payoff := 0.0
		if strike > sell {
			payoff = (strike - sell) * float64(qty)
		}
		finalValue := sell*float64(qty) + payoff

		rows = append(rows, ProtectivePutRow{
			Date:       bars[i].Date,
			BuyPrice:   buy,
			Strike:     strike,
			Premium:    premium,
			Quantity:   qty,
			StockCost:  stockCost,
			PutCost:    putCost,
			TotalCost:  stockCost + putCost,
			SellPrice:  sell,
			PutPayoff:  payoff,
			FinalValue: finalValue,
			NetProfit:  finalValue - (stockCost + putCost),
		})
	}
	return rows, nil
}

func validatePct(name string, v int) error {
	if v < 1 || v > 10 {
		return inputErrorf("%s percentage must be in [1,10], got %d", name, v)
	}
	return nil
}
