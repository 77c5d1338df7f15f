package analyze

import (
	"github.com/Alias1177/WinGo-Predictor/internal/calculate"
	"github.com/Alias1177/WinGo-Predictor/internal/patterns"
	"github.com/Alias1177/WinGo-Predictor/models"
)

const (
	minHistory = 10 // below this the engine only does the statistical fallback

	dragonStreakLen  = 6 // streak length that opens the risk-skip gate
	dragonFlipLosses = 2 // flip-losses among recent losses that force a skip

	shortStreakMin = 4
	shortStreakMax = 6 // exclusive

	dominanceHigh = 0.72
	dominanceLow  = 0.28

	confFloor = 55
	confCap   = 98

	lossRateWindow    = 10
	lossRateThreshold = 0.6
	lossRatePenalty   = 15

	freqWindow   = 60 // draws scanned for number frequency
	recentWindow = 10 // draws scanned for recency and parity bias
)

// Predict produces one prediction draft from the rolling history and the
// past prediction outcomes. Both inputs are newest-first; Predict never
// mutates them.
func Predict(history []models.Observation, predictions []models.Prediction) models.Draft {
	// Cold start: not enough rounds for pattern work.
	if len(history) < minHistory {
		return statisticalFallback(history)
	}

	natural := naturalOrder(history)
	streakValue, streakCount := calculate.CountStreak(natural)

	// Dragon risk skip: a long streak the system has recently bet against
	// and lost. Short-circuits everything else.
	if streakCount >= dragonStreakLen && countFlipLosses(predictions, streakValue) >= dragonFlipLosses {
		return models.Draft{
			Category:   models.CategorySkip,
			Number:     -1,
			Confidence: 0,
			Rationale:  models.Rationale{Kind: models.RationaleDragonSkip, StreakCount: streakCount},
			Bias:       models.BiasDragonRisk,
		}
	}

	var category models.Category
	var rationale models.Rationale

	if predicted, length, sequence, ok := patterns.Match(natural); ok {
		category = predicted
		rationale = models.Rationale{
			Kind:            models.RationalePatternMatch,
			PatternLength:   length,
			PatternSequence: sequence,
		}
	} else {
		category, rationale = fallback(natural, streakValue, streakCount)
	}

	confidence := clampConfidence(adjustForLosses(baseConfidence(rationale), predictions))

	return models.Draft{
		Category:   category,
		Number:     pickNumber(category, history, predictions),
		Confidence: confidence,
		Rationale:  rationale,
		Bias:       biasFor(rationale.Kind),
	}
}

// statisticalFallback is the cold-start verdict: the mean drawn number
// decides the side, the suggested number is fixed.
func statisticalFallback(history []models.Observation) models.Draft {
	avg := 5.0
	if len(history) > 0 {
		sum := 0
		for _, o := range history {
			sum += o.Number
		}
		avg = float64(sum) / float64(len(history))
	}

	category := models.CategoryLow
	if avg >= 5 {
		category = models.CategoryHigh
	}

	return models.Draft{
		Category:   category,
		Number:     5,
		Confidence: confFloor,
		Rationale:  models.Rationale{Kind: models.RationaleStatisticalFallback},
		Bias:       models.BiasNeutral,
	}
}

// naturalOrder reverses the newest-first history into an oldest-first
// category sequence. All streak and pattern analysis runs on this view.
func naturalOrder(history []models.Observation) []models.Category {
	natural := make([]models.Category, len(history))
	for i, o := range history {
		natural[len(history)-1-i] = o.Category
	}
	return natural
}

// countFlipLosses counts, among the 3 most recent graded Lose predictions,
// those that bet against the current streak.
func countFlipLosses(predictions []models.Prediction, streakValue models.Category) int {
	flips := 0
	seen := 0
	for _, p := range predictions {
		if p.Result != models.ResultLose {
			continue
		}
		if p.Category == streakValue.Opposite() {
			flips++
		}
		seen++
		if seen == 3 {
			break
		}
	}
	return flips
}

// fallback is the ladder that runs when no catalogue pattern matched:
// short-streak reversal, then alternation, then dominance, then momentum.
func fallback(natural []models.Category, streakValue models.Category, streakCount int) (models.Category, models.Rationale) {
	if streakCount >= shortStreakMin && streakCount < shortStreakMax {
		return streakValue.Opposite(), models.Rationale{
			Kind:        models.RationaleShortStreakReversal,
			StreakCount: streakCount,
		}
	}

	if alt := calculate.DetectAlternating(tail(natural, recentWindow)); alt != "" {
		return alt, models.Rationale{Kind: models.RationaleAlternating}
	}

	ratio := calculate.DominanceRatio(natural)
	if ratio >= dominanceHigh {
		return models.CategoryHigh, models.Rationale{Kind: models.RationaleDominance, DominanceRatio: ratio}
	}
	if ratio <= dominanceLow {
		return models.CategoryLow, models.Rationale{Kind: models.RationaleDominance, DominanceRatio: ratio}
	}

	return natural[len(natural)-1], models.Rationale{Kind: models.RationaleMomentum}
}

// baseConfidence keys the starting confidence off the branch that fired.
// A 5-length pattern match keeps the 60 default: only lengths 6-10 earn
// the elevated scale.
func baseConfidence(r models.Rationale) int {
	switch r.Kind {
	case models.RationalePatternMatch:
		switch r.PatternLength {
		case 10:
			return 98
		case 9:
			return 97
		case 8:
			return 96
		case 7:
			return 94
		case 6:
			return 90
		default:
			return 60
		}
	case models.RationaleDominance:
		return 85
	case models.RationaleMomentum:
		return 75
	case models.RationaleShortStreakReversal:
		return 80
	case models.RationaleAlternating:
		return 82
	case models.RationaleStatisticalFallback:
		return confFloor
	case models.RationaleDragonSkip:
		return 0
	default:
		return 60
	}
}

// adjustForLosses docks confidence when the recent graded record is poor.
func adjustForLosses(base int, predictions []models.Prediction) int {
	graded := 0
	losses := 0
	for _, p := range predictions {
		if p.Result == models.ResultPending {
			continue
		}
		if p.Result == models.ResultLose {
			losses++
		}
		graded++
		if graded == lossRateWindow {
			break
		}
	}

	if graded > 0 && float64(losses)/float64(graded) > lossRateThreshold {
		base -= lossRatePenalty
		if base < confFloor {
			base = confFloor
		}
	}
	return base
}

func clampConfidence(c int) int {
	if c < confFloor {
		return confFloor
	}
	if c > confCap {
		return confCap
	}
	return c
}

// pickNumber scores the candidate pool of the predicted side against the
// recent draw distribution. The immediately preceding prediction's number
// is excluded if it just lost, unless that would empty the pool.
func pickNumber(category models.Category, history []models.Observation, predictions []models.Prediction) int {
	pool := []int{0, 1, 2, 3, 4}
	if category == models.CategoryHigh {
		pool = []int{5, 6, 7, 8, 9}
	}

	var counts [10]int
	for _, o := range tailObs(history, freqWindow) {
		counts[o.Number]++
	}

	recent := tailObs(history, recentWindow)
	inRecent := make(map[int]bool, len(recent))
	even := 0
	for _, o := range recent {
		inRecent[o.Number] = true
		if o.Number%2 == 0 {
			even++
		}
	}
	evenBias := even*2 > len(recent)

	exclude := -1
	if len(predictions) > 0 && predictions[0].Result == models.ResultLose {
		exclude = predictions[0].Number
	}

	candidates := pool
	if exclude >= 0 {
		filtered := make([]int, 0, len(pool))
		for _, n := range pool {
			if n != exclude {
				filtered = append(filtered, n)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	best := candidates[0]
	bestScore := -1.0
	for _, n := range candidates {
		score := 1.0 + float64(counts[n])
		if inRecent[n] {
			score += 1.2
		}
		if (evenBias && n%2 == 0) || (!evenBias && n%2 == 1) {
			score += 0.7
		}
		// Strict comparison keeps ties on the lowest candidate.
		if score > bestScore {
			best = n
			bestScore = score
		}
	}
	return best
}

// biasFor maps the fired branch to its directional tendency label.
func biasFor(kind models.RationaleKind) models.Bias {
	switch kind {
	case models.RationaleDominance, models.RationaleMomentum:
		return models.BiasMomentum
	case models.RationaleShortStreakReversal:
		return models.BiasReversal
	case models.RationalePatternMatch:
		return models.BiasPattern
	case models.RationaleAlternating:
		return models.BiasChop
	case models.RationaleDragonSkip:
		return models.BiasDragonRisk
	default:
		return models.BiasNeutral
	}
}

// tail returns the last n elements of an oldest-first sequence.
func tail(seq []models.Category, n int) []models.Category {
	if len(seq) <= n {
		return seq
	}
	return seq[len(seq)-n:]
}

// tailObs returns the n most recent observations of a newest-first log.
func tailObs(history []models.Observation, n int) []models.Observation {
	if len(history) <= n {
		return history
	}
	return history[:n]
}
