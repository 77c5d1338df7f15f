package calculate

import (
	"github.com/Alias1177/WinGo-Predictor/models"
)

// dominanceWindow bounds how far back the dominance ratio looks.
const dominanceWindow = 30

// Classify maps a drawn number to its category: High for 5-9, Low for 0-4.
func Classify(number int) models.Category {
	if number >= 5 {
		return models.CategoryHigh
	}
	return models.CategoryLow
}

// CountStreak walks backward from the most recent element of an
// oldest-first sequence and returns the repeated category and run length.
// An empty sequence yields ("", 0).
func CountStreak(seq []models.Category) (models.Category, int) {
	if len(seq) == 0 {
		return "", 0
	}

	last := seq[len(seq)-1]
	count := 1
	for i := len(seq) - 2; i >= 0; i-- {
		if seq[i] != last {
			break
		}
		count++
	}
	return last, count
}

// DetectAlternating returns the category that would continue a strictly
// alternating sequence, or "" if the sequence is shorter than 3 or any
// adjacent pair repeats.
func DetectAlternating(seq []models.Category) models.Category {
	if len(seq) < 3 {
		return ""
	}
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1] {
			return ""
		}
	}
	return seq[len(seq)-1].Opposite()
}

// DominanceRatio returns the fraction of High categories over the most
// recent 30 elements of an oldest-first sequence. Empty input defaults
// to 0.5.
func DominanceRatio(seq []models.Category) float64 {
	if len(seq) == 0 {
		return 0.5
	}
	if len(seq) > dominanceWindow {
		seq = seq[len(seq)-dominanceWindow:]
	}

	high := 0
	for _, c := range seq {
		if c == models.CategoryHigh {
			high++
		}
	}
	return float64(high) / float64(len(seq))
}
