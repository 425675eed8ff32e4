package series

import (
	"testing"

	"SmartAllocator/internal/domain/models"
)

func path(label string, values ...float64) models.MonteCarloPath {
	return models.MonteCarloPath{Percentile: label, Values: values}
}

func TestMonteCarloBandSelectsByFinalValue(t *testing.T) {
	paths := []models.MonteCarloPath{
		path("a", 100, 10),
		path("b", 100, 30),
		path("c", 100, 20),
		path("d", 100, 50),
		path("e", 100, 40),
	}

	band := MonteCarloBand(paths)
	if len(band) != 2 {
		t.Fatalf("expected 2 points, got %d", len(band))
	}

	// ranked finals: 10 20 30 40 50; floor(5/2)=2 -> 30
	last := band[1]
	if last.P5 != 10 {
		t.Fatalf("pessimistic final = %v, want 10", last.P5)
	}
	if last.Median != 30 {
		t.Fatalf("median final = %v, want 30", last.Median)
	}
	if last.P95 != 50 {
		t.Fatalf("optimistic final = %v, want 50", last.P95)
	}
	if band[0].Day != 0 || band[1].Day != 1 {
		t.Fatalf("day indices wrong: %+v", band)
	}
}

func TestMonteCarloBandMinimumPathCount(t *testing.T) {
	two := []models.MonteCarloPath{path("a", 1, 2), path("b", 1, 3)}
	if got := MonteCarloBand(two); got != nil {
		t.Fatalf("expected no chart for 2 paths, got %d points", len(got))
	}

	three := []models.MonteCarloPath{path("a", 1, 2), path("b", 1, 3), path("c", 1, 4)}
	got := MonteCarloBand(three)
	if len(got) != 2 {
		t.Fatalf("expected chart for 3 paths, got %v", got)
	}
	if got[1].P5 != 2 || got[1].Median != 3 || got[1].P95 != 4 {
		t.Fatalf("unexpected band %+v", got[1])
	}
}

func TestMonteCarloBandDoesNotMutateInput(t *testing.T) {
	paths := []models.MonteCarloPath{path("a", 9), path("b", 1), path("c", 5)}
	MonteCarloBand(paths)
	if paths[0].Values[0] != 9 || paths[1].Values[0] != 1 {
		t.Fatalf("input reordered: %+v", paths)
	}
}

func TestMonteCarloBandTruncatesToShortestSelected(t *testing.T) {
	paths := []models.MonteCarloPath{
		path("a", 1, 2, 3),
		path("b", 4, 5),
		path("c", 6, 7, 8),
	}
	got := MonteCarloBand(paths)
	if len(got) != 2 {
		t.Fatalf("expected truncation to 2 steps, got %d", len(got))
	}
}

func TestSortFrontierAscendingByVolatility(t *testing.T) {
	points := []models.FrontierPoint{
		{Return: 1, Volatility: 12},
		{Return: 2, Volatility: 5},
		{Return: 3, Volatility: 9},
	}

	got := SortFrontier(points)
	want := []float64{5, 9, 12}
	for i, w := range want {
		if got[i].Volatility != w {
			t.Fatalf("position %d: volatility %v, want %v", i, got[i].Volatility, w)
		}
	}
	// input untouched
	if points[0].Volatility != 12 {
		t.Fatalf("input mutated: %+v", points)
	}
}

func TestSortFrontierKeepsDuplicatesStable(t *testing.T) {
	points := []models.FrontierPoint{
		{Return: 1, Volatility: 9},
		{Return: 2, Volatility: 5},
		{Return: 3, Volatility: 9},
	}

	got := SortFrontier(points)
	if len(got) != 3 {
		t.Fatalf("duplicate removed: %+v", got)
	}
	if got[1].Return != 1 || got[2].Return != 3 {
		t.Fatalf("equal-volatility order not stable: %+v", got)
	}
}

func TestSortFrontierEmpty(t *testing.T) {
	if got := SortFrontier(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestRankRiskContribution(t *testing.T) {
	contrib := map[string]float64{"AAPL": 10, "MSFT": 40, "GOOGL": 25}
	got := RankRiskContribution(contrib, []string{"AAPL", "MSFT", "GOOGL"})

	want := []models.ContributionEntry{
		{Ticker: "MSFT", Contribution: 40},
		{Ticker: "GOOGL", Contribution: 25},
		{Ticker: "AAPL", Contribution: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRankRiskContributionTiesKeepOriginalOrder(t *testing.T) {
	contrib := map[string]float64{"AAPL": 20, "MSFT": 20, "GOOGL": 60}
	got := RankRiskContribution(contrib, []string{"MSFT", "AAPL", "GOOGL"})

	if got[0].Ticker != "GOOGL" {
		t.Fatalf("expected GOOGL first, got %+v", got)
	}
	if got[1].Ticker != "MSFT" || got[2].Ticker != "AAPL" {
		t.Fatalf("tie order wrong: %+v", got)
	}
}

func TestRankRiskContributionUnknownTickersAppended(t *testing.T) {
	contrib := map[string]float64{"ZZZ": 5, "AAA": 5}
	got := RankRiskContribution(contrib, nil)
	if len(got) != 2 {
		t.Fatalf("got %d entries", len(got))
	}
	if got[0].Ticker != "AAA" || got[1].Ticker != "ZZZ" {
		t.Fatalf("fallback order not alphabetical: %+v", got)
	}
}

func TestFilterAllocationsDropsZeroWeights(t *testing.T) {
	allocs := []models.Allocation{
		{Ticker: "AAPL", Weight: 0.6},
		{Ticker: "MSFT", Weight: 0},
		{Ticker: "GOOGL", Weight: 0.4},
	}

	got := FilterAllocations(allocs)
	if len(got) != 2 {
		t.Fatalf("got %d allocations, want 2", len(got))
	}
	if got[0].Ticker != "AAPL" || got[1].Ticker != "GOOGL" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if len(allocs) != 3 {
		t.Fatalf("input mutated")
	}
}
