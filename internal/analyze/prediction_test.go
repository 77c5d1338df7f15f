package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/WinGo-Predictor/models"
)

// histFrom builds a newest-first observation log from an oldest-first
// "H"/"L" string, using fixed numbers per side (7 for High, 2 for Low).
func histFrom(natural string) []models.Observation {
	return histFromNumbers(natural, 7, 2)
}

func histFromNumbers(natural string, highNum, lowNum int) []models.Observation {
	n := len(natural)
	out := make([]models.Observation, n)
	for i, r := range natural {
		obs := models.Observation{Period: "100", Number: lowNum, Category: models.CategoryLow}
		if r == 'H' {
			obs.Number = highNum
			obs.Category = models.CategoryHigh
		}
		out[n-1-i] = obs
	}
	return out
}

func lose(category models.Category, number int) models.Prediction {
	return models.Prediction{Category: category, Number: number, Result: models.ResultLose}
}

func TestPredictColdStart(t *testing.T) {
	tests := []struct {
		name     string
		numbers  []int
		expected models.Category
	}{
		{"no history", nil, models.CategoryHigh},
		{"high mean", []int{9, 8, 7, 9, 8}, models.CategoryHigh},
		{"low mean", []int{1, 2, 0, 3, 1, 2, 0, 1, 2}, models.CategoryLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := make([]models.Observation, len(tt.numbers))
			for i, n := range tt.numbers {
				history[i] = models.Observation{Number: n, Category: models.CategoryHigh}
			}

			draft := Predict(history, nil)

			assert.Equal(t, tt.expected, draft.Category)
			assert.Equal(t, 5, draft.Number)
			assert.Equal(t, 55, draft.Confidence)
			assert.Equal(t, models.RationaleStatisticalFallback, draft.Rationale.Kind)
			assert.Equal(t, models.BiasNeutral, draft.Bias)
		})
	}
}

func TestPredictDragonSkip(t *testing.T) {
	// Ten High rounds in a row, and the system already lost twice betting
	// Low against the run: refuse to predict.
	history := histFrom("HHHHHHHHHH")
	predictions := []models.Prediction{
		lose(models.CategoryLow, 2),
		lose(models.CategoryLow, 3),
	}

	draft := Predict(history, predictions)

	assert.Equal(t, models.CategorySkip, draft.Category)
	assert.Equal(t, -1, draft.Number)
	assert.Equal(t, 0, draft.Confidence)
	assert.Equal(t, models.RationaleDragonSkip, draft.Rationale.Kind)
	assert.Equal(t, models.BiasDragonRisk, draft.Bias)
}

func TestPredictDragonGateNeedsFlipLosses(t *testing.T) {
	// Same streak, but the recent losses were bets WITH the streak: the
	// gate stays open and the 7-length catalogue entry fires instead.
	history := histFrom("HHHHHHHHHH")
	predictions := []models.Prediction{
		lose(models.CategoryHigh, 7),
		lose(models.CategoryHigh, 8),
	}

	draft := Predict(history, predictions)

	assert.NotEqual(t, models.CategorySkip, draft.Category)
	assert.Equal(t, models.RationalePatternMatch, draft.Rationale.Kind)
}

func TestPredictEightRunMatchesSevenPattern(t *testing.T) {
	// An 8-long High run: the dragon gate passes (no flip-losses), the
	// catalogue matches "HHHHHHH" at length 7 and calls the break.
	history := histFrom("LLHHHHHHHH")

	draft := Predict(history, nil)

	require.Equal(t, models.RationalePatternMatch, draft.Rationale.Kind)
	assert.Equal(t, 7, draft.Rationale.PatternLength)
	assert.Equal(t, "HHHHHHH", draft.Rationale.PatternSequence)
	assert.Equal(t, models.CategoryLow, draft.Category)
	assert.Equal(t, 94, draft.Confidence)
	assert.Equal(t, models.BiasPattern, draft.Bias)
	assert.Contains(t, []int{0, 1, 2, 3, 4}, draft.Number)
}

func TestPredictLongestPatternWins(t *testing.T) {
	// Both "HHHLLH" (length 6) and its tail "HHLLH" (length 5) are in the
	// catalogue; the 6-length entry and its confidence must be chosen.
	history := histFrom("LLLLHHHLLH")

	draft := Predict(history, nil)

	require.Equal(t, models.RationalePatternMatch, draft.Rationale.Kind)
	assert.Equal(t, 6, draft.Rationale.PatternLength)
	assert.Equal(t, "HHHLLH", draft.Rationale.PatternSequence)
	assert.Equal(t, 90, draft.Confidence)
}

func TestPredictFiveLengthPatternKeepsDefaultConfidence(t *testing.T) {
	// "HLHHL" matches only at length 5, which earns no elevated base.
	history := histFrom("HHLLLHLHHL")

	draft := Predict(history, nil)

	require.Equal(t, models.RationalePatternMatch, draft.Rationale.Kind)
	assert.Equal(t, 5, draft.Rationale.PatternLength)
	assert.Equal(t, 60, draft.Confidence)
}

func TestPredictShortStreakReversal(t *testing.T) {
	// Four High in a row, no catalogue hit: bet on the break.
	history := histFrom("HLHLLLHHHH")

	draft := Predict(history, nil)

	require.Equal(t, models.RationaleShortStreakReversal, draft.Rationale.Kind)
	assert.Equal(t, 4, draft.Rationale.StreakCount)
	assert.Equal(t, models.CategoryLow, draft.Category)
	assert.Equal(t, 80, draft.Confidence)
	assert.Equal(t, models.BiasReversal, draft.Bias)
}

func TestPredictDominance(t *testing.T) {
	// Two High in thirty-odd rounds and no other gate fires: Low side
	// dominance.
	history := histFrom("LLLLLHLLHL")

	draft := Predict(history, nil)

	require.Equal(t, models.RationaleDominance, draft.Rationale.Kind)
	assert.Equal(t, models.CategoryLow, draft.Category)
	assert.InDelta(t, 0.2, draft.Rationale.DominanceRatio, 1e-9)
	assert.Equal(t, 85, draft.Confidence)
	assert.Equal(t, models.BiasMomentum, draft.Bias)
	assert.Equal(t, "LOW DOMINANCE (80%)", draft.Rationale.Label())
}

func TestPredictMomentum(t *testing.T) {
	// Balanced, non-alternating, streak-free, catalogue-free sequence:
	// follow the most recent side.
	history := histFrom("LLHHLHLHHH")

	draft := Predict(history, nil)

	require.Equal(t, models.RationaleMomentum, draft.Rationale.Kind)
	assert.Equal(t, models.CategoryHigh, draft.Category)
	assert.Equal(t, 75, draft.Confidence)
	assert.Equal(t, models.BiasMomentum, draft.Bias)
	assert.Contains(t, []int{5, 6, 7, 8, 9}, draft.Number)
}

func TestFallbackAlternating(t *testing.T) {
	// The alternating branch, exercised directly: a strictly alternating
	// last-10 window continues with the opposite of the newest element.
	natural := []models.Category{
		models.CategoryLow, models.CategoryHigh, models.CategoryLow, models.CategoryHigh,
		models.CategoryLow, models.CategoryHigh, models.CategoryLow, models.CategoryHigh,
		models.CategoryLow, models.CategoryHigh,
	}

	category, rationale := fallback(natural, models.CategoryHigh, 1)

	assert.Equal(t, models.CategoryLow, category)
	assert.Equal(t, models.RationaleAlternating, rationale.Kind)
	assert.Equal(t, 82, baseConfidence(rationale))
	assert.Equal(t, models.BiasChop, biasFor(rationale.Kind))
}

func TestPredictLossRatePenalty(t *testing.T) {
	history := histFrom("LLHHLHLHHH") // momentum branch, base 75

	// Seven losses among ten graded predictions: loss rate 0.7 > 0.6.
	predictions := make([]models.Prediction, 0, 10)
	for i := 0; i < 7; i++ {
		predictions = append(predictions, lose(models.CategoryLow, 0))
	}
	for i := 0; i < 3; i++ {
		predictions = append(predictions, models.Prediction{
			Category: models.CategoryHigh, Number: 7, Result: models.ResultWin,
		})
	}

	draft := Predict(history, predictions)

	assert.Equal(t, models.RationaleMomentum, draft.Rationale.Kind)
	assert.Equal(t, 60, draft.Confidence)
}

func TestPredictConfidenceFloor(t *testing.T) {
	// 5-length pattern base 60 minus the 15-point penalty would be 45;
	// the floor holds at 55.
	history := histFrom("HHLLLHLHHL")

	predictions := make([]models.Prediction, 0, 10)
	for i := 0; i < 10; i++ {
		predictions = append(predictions, lose(models.CategoryHigh, 9))
	}

	draft := Predict(history, predictions)

	require.Equal(t, models.RationalePatternMatch, draft.Rationale.Kind)
	require.Equal(t, 5, draft.Rationale.PatternLength)
	assert.Equal(t, 55, draft.Confidence)
}

func TestPredictPendingExcludedFromLossRate(t *testing.T) {
	history := histFrom("LLHHLHLHHH") // momentum branch, base 75

	// Many pending predictions around a clean graded record: no penalty.
	predictions := []models.Prediction{
		{Category: models.CategoryHigh, Number: 7, Result: models.ResultPending},
		{Category: models.CategoryHigh, Number: 7, Result: models.ResultWin},
		{Category: models.CategoryLow, Number: 2, Result: models.ResultPending},
		{Category: models.CategoryHigh, Number: 8, Result: models.ResultWin},
	}

	draft := Predict(history, predictions)

	assert.Equal(t, 75, draft.Confidence)
}

func TestPickNumberPrefersFrequentRecent(t *testing.T) {
	// 8 appears throughout the window and in the last ten rounds; with an
	// even-parity majority it outscores every other High candidate.
	history := histFromNumbers("LLHHLHLHHH", 8, 2)

	got := pickNumber(models.CategoryHigh, history, nil)

	assert.Equal(t, 8, got)
}

func TestPickNumberExcludesJustFailedNumber(t *testing.T) {
	history := histFromNumbers("LLHHLHLHHH", 8, 2)

	preds := []models.Prediction{lose(models.CategoryHigh, 8)}
	got := pickNumber(models.CategoryHigh, history, preds)

	assert.NotEqual(t, 8, got)
	assert.Contains(t, []int{5, 6, 7, 9}, got)
}

func TestPickNumberKeepsNumberAfterWin(t *testing.T) {
	history := histFromNumbers("LLHHLHLHHH", 8, 2)

	preds := []models.Prediction{
		{Category: models.CategoryHigh, Number: 8, Result: models.ResultWin},
	}
	got := pickNumber(models.CategoryHigh, history, preds)

	assert.Equal(t, 8, got)
}

func TestPickNumberStaysInPool(t *testing.T) {
	history := histFromNumbers("LLHHLHLHHH", 8, 2)

	assert.Contains(t, []int{5, 6, 7, 8, 9}, pickNumber(models.CategoryHigh, history, nil))
	assert.Contains(t, []int{0, 1, 2, 3, 4}, pickNumber(models.CategoryLow, history, nil))
}
