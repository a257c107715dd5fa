package model

import (
	"fmt"
	"time"
)

// PriceBar is one bar of a price series: a trading day when fetched daily, or
// a month-end close after resampling.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// History is the full provider output for one ticker: an ordered price series
// plus the instrument currency. Currency always comes from the provider; the
// engine never infers it.
type History struct {
	Ticker   string     `json:"ticker"`
	Currency string     `json:"currency"`
	Bars     []PriceBar `json:"bars"`
}

// Closes projects the closing prices, preserving order.
func (h *History) Closes() []float64 {
	out := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		out[i] = b.Close
	}
	return out
}

// ValidateSeries checks the ordering invariant: strictly increasing dates.
// Gaps are fine (the series is whatever the provider returned), duplicates
// and reordering are not, because every windowed computation assumes
// chronological order.
func ValidateSeries(bars []PriceBar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return fmt.Errorf("series not strictly increasing at index %d: %s followed by %s",
				i, bars[i-1].Date.Format("2006-01-02"), bars[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// ResampleMonthly keeps the last bar of each calendar month. Bars must be in
// chronological order. The final month is kept even if partial; callers that
// need complete months only (the monthly strategies) drop it themselves.
func ResampleMonthly(bars []PriceBar) []PriceBar {
	if len(bars) == 0 {
		return nil
	}
	out := make([]PriceBar, 0, len(bars)/20+1)
	for i, b := range bars {
		if i+1 < len(bars) {
			next := bars[i+1].Date
			if next.Year() == b.Date.Year() && next.Month() == b.Date.Month() {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// Periods supported by the provider, mirroring the range tokens the chart API
// accepts.
var Periods = []string{"6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

func ValidPeriod(p string) bool {
	for _, v := range Periods {
		if v == p {
			return true
		}
	}
	return false
}
