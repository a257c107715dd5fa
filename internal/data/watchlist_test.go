package data

import (
	"reflect"
	"testing"
)

func TestWatchlist_AddNormalizesAndDeduplicates(t *testing.T) {
	w := NewWatchlist(nil)
	if err := w.Add("petr4.sa"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Add(" PETR4.SA "); err == nil {
		t.Error("duplicate add should fail")
	}
	if err := w.Add(""); err == nil {
		t.Error("empty ticker should fail")
	}
	if got := w.List(); !reflect.DeepEqual(got, []string{"PETR4.SA"}) {
		t.Errorf("unexpected list: %v", got)
	}
}

func TestWatchlist_SeedDropsDuplicates(t *testing.T) {
	w := NewWatchlist([]string{"VALE3.SA", "vale3.sa", "ITUB4.SA"})
	want := []string{"VALE3.SA", "ITUB4.SA"}
	if got := w.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWatchlist_RemovePreservesOrder(t *testing.T) {
	w := NewWatchlist([]string{"AAA", "BBB", "CCC"})
	if err := w.Remove("bbb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.List(); !reflect.DeepEqual(got, []string{"AAA", "CCC"}) {
		t.Errorf("unexpected list after remove: %v", got)
	}
	if err := w.Remove("BBB"); err == nil {
		t.Error("removing a missing ticker should fail")
	}
}

func TestWatchlist_ListReturnsCopy(t *testing.T) {
	w := NewWatchlist([]string{"AAA", "BBB"})
	got := w.List()
	got[0] = "MUTATED"
	if w.List()[0] != "AAA" {
		t.Error("List must return a copy, not the backing slice")
	}
}
