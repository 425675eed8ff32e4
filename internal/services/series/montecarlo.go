// Package series turns raw allocator payloads into chart-ready series.
// Everything here is a pure function of its input; sparse or short input
// yields an empty series, never an error.
package series

import (
	"sort"

	"SmartAllocator/internal/domain/models"
)

// minPaths is the smallest trajectory count that still yields a band chart.
const minPaths = 3

// MonteCarloBand selects three whole trajectories ranked by final-step value
// and emits one point per time step: pessimistic = minimum final value,
// median = middle of the ranking, optimistic = maximum final value.
//
// Selecting whole paths by final-value rank is not the same as per-step
// percentiles; it keeps each band a single self-consistent trajectory, which
// the chart consumers rely on. Fewer than minPaths trajectories yields nil.
func MonteCarloBand(paths []models.MonteCarloPath) []models.BandPoint {
	if len(paths) < minPaths {
		return nil
	}

	ranked := make([]models.MonteCarloPath, len(paths))
	copy(ranked, paths)
	sort.SliceStable(ranked, func(i, j int) bool {
		return finalValue(ranked[i]) < finalValue(ranked[j])
	})

	pessimistic := ranked[0]
	median := ranked[len(ranked)/2]
	optimistic := ranked[len(ranked)-1]

	steps := len(pessimistic.Values)
	if len(median.Values) < steps {
		steps = len(median.Values)
	}
	if len(optimistic.Values) < steps {
		steps = len(optimistic.Values)
	}

	band := make([]models.BandPoint, 0, steps)
	for i := 0; i < steps; i++ {
		band = append(band, models.BandPoint{
			Day:    i,
			P5:     pessimistic.Values[i],
			Median: median.Values[i],
			P95:    optimistic.Values[i],
		})
	}
	return band
}

func finalValue(p models.MonteCarloPath) float64 {
	if len(p.Values) == 0 {
		return 0
	}
	return p.Values[len(p.Values)-1]
}
