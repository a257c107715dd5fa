package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger CSV writers. Monetary fields are rounded to 2 decimals here, at the
// presentation boundary; the ledgers themselves keep full precision.

func WriteCrossoverCSV(path string, ledger []CrossoverTrade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "action", "price", "quantity", "capital"}); err != nil {
		return err
	}
	for _, r := range ledger {
		row := []string{
			fmtDate(r.Date),
			string(r.Action),
			fmtMoney(r.Price),
			strconv.FormatInt(r.Quantity, 10),
			fmtMoney(r.Capital),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func WriteMomentumCSV(path string, ledger []MomentumEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date", "ticker", "allocation", "buy_price", "invested", "quantity",
		"residual", "sell_price", "proceeds", "return_pct", "end_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range ledger {
		row := []string{
			fmtDate(r.Date),
			r.Ticker,
			fmtMoney(r.Allocation),
			fmtMoney(r.BuyPrice),
			fmtMoney(r.Invested),
			strconv.FormatInt(r.Quantity, 10),
			fmtMoney(r.Residual),
			fmtMoney(r.SellPrice),
			fmtMoney(r.Proceeds),
			fmtMoney(r.ReturnPct),
			fmtMoney(r.EndValue),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func WriteProtectivePutCSV(path string, rows []ProtectivePutRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date", "buy_price", "strike", "premium", "quantity", "stock_cost",
		"put_cost", "total_cost", "sell_price", "put_payoff", "final_value", "net_profit",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			fmtDate(r.Date),
			fmtMoney(r.BuyPrice),
			fmtMoney(r.Strike),
			fmtMoney(r.Premium),
			strconv.FormatInt(r.Quantity, 10),
			fmtMoney(r.StockCost),
			fmtMoney(r.PutCost),
			fmtMoney(r.TotalCost),
			fmtMoney(r.SellPrice),
			fmtMoney(r.PutPayoff),
			fmtMoney(r.FinalValue),
			fmtMoney(r.NetProfit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func WriteBullCallCSV(path string, rows []BullCallRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date", "buy_price", "strike_otm", "strike_itm", "spread", "premium_itm",
		"premium_otm", "net_debit", "contracts", "total_cost", "sell_price",
		"gross_payoff", "net_profit",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			fmtDate(r.Date),
			fmtMoney(r.BuyPrice),
			fmtMoney(r.StrikeOTM),
			fmtMoney(r.StrikeITM),
			fmtMoney(r.Spread),
			fmtMoney(r.PremiumITM),
			fmtMoney(r.PremiumOTM),
			fmtMoney(r.NetDebit),
			strconv.FormatInt(r.Contracts, 10),
			fmtMoney(r.TotalCost),
			fmtMoney(r.SellPrice),
			fmtMoney(r.GrossPayoff),
			fmtMoney(r.NetProfit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtMoney(x float64) string {
	return decimal.NewFromFloat(x).Round(2).String()
}
