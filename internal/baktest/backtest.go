package baktest

import (
	"github.com/Alias1177/WinGo-Predictor/internal/analyze"
	"github.com/Alias1177/WinGo-Predictor/models"
)

// minReplayHistory mirrors the engine's cold-start threshold: positions
// with fewer prior rounds are not worth replaying.
const minReplayHistory = 10

// KindStats accumulates replay performance for one rationale kind.
type KindStats struct {
	Total int
	Wins  int
}

// WinPercentage returns the hit rate of this kind, 0 when empty.
func (k KindStats) WinPercentage() float64 {
	if k.Total == 0 {
		return 0
	}
	return float64(k.Wins) / float64(k.Total) * 100
}

// Results summarizes an engine replay over recorded history.
type Results struct {
	Total       int
	Wins        int
	Skipped     int
	ByRationale map[models.RationaleKind]KindStats
}

// WinPercentage returns the overall category hit rate, 0 when empty.
func (r *Results) WinPercentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total) * 100
}

// Run replays the prediction engine over a newest-first observation log:
// for every position with enough prior rounds it predicts the next round
// from the prefix alone and compares the called category with the actual
// draw. Prior prediction outcomes are not replayed, so the loss-rate
// penalty and the dragon gate stay inert here.
func Run(observations []models.Observation) *Results {
	results := &Results{
		ByRationale: make(map[models.RationaleKind]KindStats),
	}

	// observations[i:] is everything known before observations[i-1].
	for i := len(observations) - minReplayHistory; i >= 1; i-- {
		draft := analyze.Predict(observations[i:], nil)
		if draft.Category == models.CategorySkip {
			results.Skipped++
			continue
		}

		actual := observations[i-1].Category
		won := draft.Category == actual

		results.Total++
		if won {
			results.Wins++
		}

		stats := results.ByRationale[draft.Rationale.Kind]
		stats.Total++
		if won {
			stats.Wins++
		}
		results.ByRationale[draft.Rationale.Kind] = stats
	}

	return results
}
