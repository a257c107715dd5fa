package sim

import (
	"time"

	"invest-sim/internal/model"
)

// Option contracts cover 100 units of the underlying.
const contractMultiplier = 100

// BullCallParams are the percentage heuristics of the spread: strikes placed
// around the current price and premiums estimated from the strikes. All whole
// percentages in [1,10].
type BullCallParams struct {
	OTMPct        int // sold upper leg, above the price
	ITMPct        int // bought lower leg, below the price
	PremiumITMPct int
	PremiumOTMPct int
}

// BullCallRow is one month of the bull-call-spread overlay. Like the
// protective put, months are independent and funded by the fixed
// contribution alone.
type BullCallRow struct {
	Date        time.Time
	BuyPrice    float64
	StrikeOTM   float64
	StrikeITM   float64
	Spread      float64
	PremiumITM  float64
	PremiumOTM  float64
	NetDebit    float64
	Contracts   int64
	TotalCost   float64
	SellPrice   float64
	GrossPayoff float64
	NetProfit   float64
}

// SimulateBullCall runs the bull-call-spread overlay over a monthly close
// series: buy the ITM call, sell the OTM call, realize against the next
// month's close. Payoff is capped at the spread (both legs exercised), linear
// between the strikes, and zero at or below the ITM strike, so the maximum
// loss is the debit paid. The last two bars are dropped.
func SimulateBullCall(bars []model.PriceBar, monthly float64, p BullCallParams) ([]BullCallRow, error) {
	if monthly <= 0 {
		return nil, inputErrorf("monthly contribution must be > 0, got %.2f", monthly)
	}
	if err := validatePct("otm strike", p.OTMPct); err != nil {
		return nil, err
	}
	if err := validatePct("itm strike", p.ITMPct); err != nil {
		return nil, err
	}
	if err := validatePct("itm premium", p.PremiumITMPct); err != nil {
		return nil, err
	}
	if err := validatePct("otm premium", p.PremiumOTMPct); err != nil {
		return nil, err
	}
	if err := model.ValidateSeries(bars); err != nil {
		return nil, inputErrorf("invalid price series: %v", err)
	}
	if len(bars) < 3 {
		return nil, dataErrorf("bull call spread needs at least 3 monthly bars, got %d", len(bars))
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return nil, inputErrorf("non-positive close %.4f at month %d", b.Close, i)
		}
	}

	rows := make([]BullCallRow, 0, len(bars)-2)
	for i := 0; i < len(bars)-2; i++ {
		buy := bars[i].Close
		strikeOTM := buy * (1 + float64(p.OTMPct)/100)
		strikeITM := buy * (1 - float64(p.ITMPct)/100)
		spread := strikeOTM - strikeITM
		premITM := strikeITM * float64(p.PremiumITMPct) / 100
		premOTM := strikeOTM * float64(p.PremiumOTMPct) / 100
		netDebit := premITM - premOTM
		if netDebit <= 0 {
			return nil, inputErrorf(
				"net debit per unit is %.4f at month %d; the bought leg must cost more than the sold leg yields",
				netDebit, i)
		}
		contracts := int64(monthly / (netDebit * contractMultiplier))
		totalCost := float64(contracts) * netDebit * contractMultiplier

		sell := bars[i+1].Close
		var gross float64
		switch {
		case sell >= strikeOTM:
			gross = spread * contractMultiplier * float64(contracts)
		case sell > strikeITM:
			gross = (sell - strikeITM) * contractMultiplier * float64(contracts)
		default:
			gross = 0
		}

		rows = append(rows, BullCallRow{
			Date:        bars[i].Date,
			BuyPrice:    buy,
			StrikeOTM:   strikeOTM,
			StrikeITM:   strikeITM,
			Spread:      spread,
			PremiumITM:  premITM,
			PremiumOTM:  premOTM,
			NetDebit:    netDebit,
			Contracts:   contracts,
			TotalCost:   totalCost,
			SellPrice:   sell,
			GrossPayoff: gross,
			NetProfit:   gross - totalCost,
		})
	}
	return rows, nil
}
