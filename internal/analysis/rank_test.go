package analysis

import (
	"math"
	"testing"
)

func TestRankByTrailingReturn_Ordering(t *testing.T) {
	closes := map[string][]float64{
		"UP":   {10, 10, 12}, // +20%
		"FLAT": {10, 10, 10}, // 0%
		"DOWN": {10, 10, 9},  // -10%
	}
	ranked := RankByTrailingReturn([]string{"FLAT", "DOWN", "UP"}, closes)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ranked))
	}
	want := []string{"UP", "FLAT", "DOWN"}
	for i, r := range ranked {
		if r.Ticker != want[i] {
			t.Errorf("rank %d: expected %s, got %s", i+1, want[i], r.Ticker)
		}
		if r.Rank != i+1 {
			t.Errorf("rank field should be %d, got %d", i+1, r.Rank)
		}
	}
	if math.Abs(ranked[0].TrailingPct-20) > 1e-9 {
		t.Errorf("UP should rank at +20%%, got %.4f", ranked[0].TrailingPct)
	}
	if ranked[0].LastClose != 12 {
		t.Errorf("last close should be 12, got %.2f", ranked[0].LastClose)
	}
}

func TestRankByTrailingReturn_TiesKeepInputOrder(t *testing.T) {
	closes := map[string][]float64{
		"BBB": {10, 11},
		"AAA": {20, 22},
	}
	ranked := RankByTrailingReturn([]string{"BBB", "AAA"}, closes)
	if ranked[0].Ticker != "BBB" || ranked[1].Ticker != "AAA" {
		t.Errorf("equal returns should keep input order, got %s then %s",
			ranked[0].Ticker, ranked[1].Ticker)
	}
}

func TestRankByTrailingReturn_SkipsShortSeries(t *testing.T) {
	closes := map[string][]float64{
		"OK":    {10, 11},
		"SHORT": {10},
		"NONE":  nil,
	}
	ranked := RankByTrailingReturn([]string{"OK", "SHORT", "NONE"}, closes)
	if len(ranked) != 1 || ranked[0].Ticker != "OK" {
		t.Errorf("only OK has a defined return, got %+v", ranked)
	}
}
