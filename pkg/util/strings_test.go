package util

import (
	"reflect"
	"testing"
)

func TestNormalizeTicker(t *testing.T) {
	got, ok := NormalizeTicker("  aapl ")
	if !ok || got != "AAPL" {
		t.Fatalf("got %q ok=%v", got, ok)
	}

	if _, ok := NormalizeTicker("not a ticker"); ok {
		t.Fatalf("expected rejection for symbol with spaces")
	}

	got, ok = NormalizeTicker("btc-usd")
	if !ok || got != "BTC-USD" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestNormalizeTickersDedupesKeepingOrder(t *testing.T) {
	got := NormalizeTickers([]string{"msft", "AAPL", "Msft", "", "googl"})
	want := []string{"MSFT", "AAPL", "GOOGL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("empty: got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("invalid: got %d", got)
	}
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("valid: got %d", got)
	}
}
