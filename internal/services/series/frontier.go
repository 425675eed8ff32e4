package series

import (
	"sort"

	"SmartAllocator/internal/domain/models"
)

// SortFrontier returns a copy of the frontier points ordered ascending by
// volatility so the plotted curve is monotonic in the risk axis. The sort is
// stable and equal-volatility points are all kept.
func SortFrontier(points []models.FrontierPoint) []models.FrontierPoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]models.FrontierPoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Volatility < out[j].Volatility
	})
	return out
}
