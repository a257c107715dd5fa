package data

import (
	"fmt"
	"strings"
	"sync"
)

// Watchlist is an explicit, session-owned mutable ticker list. It replaces
// what the original UI kept as ambient page state; nothing else in the
// system holds it, and the engine never sees it — callers pass plain ticker
// slices into simulations.
type Watchlist struct {
	mu      sync.RWMutex
	tickers []string
}

// NewWatchlist seeds a watchlist. Duplicates in the seed are dropped,
// order preserved.
func NewWatchlist(seed []string) *Watchlist {
	w := &Watchlist{}
	for _, t := range seed {
		_ = w.Add(t)
	}
	return w
}

// Add appends a ticker, upper-cased. Adding an existing ticker is an error
// so the caller can tell the user, as the original did.
func (w *Watchlist) Add(ticker string) error {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return fmt.Errorf("ticker is empty")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.tickers {
		if existing == t {
			return fmt.Errorf("%s is already on the watchlist", t)
		}
	}
	w.tickers = append(w.tickers, t)
	return nil
}

// Remove deletes a ticker, preserving the order of the rest.
func (w *Watchlist) Remove(ticker string) error {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.tickers {
		if existing == t {
			w.tickers = append(w.tickers[:i], w.tickers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s is not on the watchlist", t)
}

// List returns a copy in insertion order.
func (w *Watchlist) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.tickers))
	copy(out, w.tickers)
	return out
}
