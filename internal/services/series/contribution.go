package series

import (
	"sort"

	"SmartAllocator/internal/domain/models"
)

// RankRiskContribution orders the ticker→percentage mapping descending by
// contribution. Map iteration order is not a usable tie-break, so the caller
// passes the original ticker order and ties keep that order; tickers missing
// from it are appended alphabetically so the result stays deterministic.
func RankRiskContribution(contrib map[string]float64, order []string) []models.ContributionEntry {
	if len(contrib) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(contrib))
	entries := make([]models.ContributionEntry, 0, len(contrib))
	for _, t := range order {
		v, ok := contrib[t]
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		entries = append(entries, models.ContributionEntry{Ticker: t, Contribution: v})
	}

	rest := make([]string, 0)
	for t := range contrib {
		if !seen[t] {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)
	for _, t := range rest {
		entries = append(entries, models.ContributionEntry{Ticker: t, Contribution: contrib[t]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Contribution > entries[j].Contribution
	})
	return entries
}

// FilterAllocations drops zero-weight rows for display. The input slice is
// left untouched; other consumers (frontier annotation) read the full set.
func FilterAllocations(allocs []models.Allocation) []models.Allocation {
	out := make([]models.Allocation, 0, len(allocs))
	for _, a := range allocs {
		if a.Weight > 0 {
			out = append(out, a)
		}
	}
	return out
}
