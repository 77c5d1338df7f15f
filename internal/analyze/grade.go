package analyze

import (
	"github.com/Alias1177/WinGo-Predictor/models"
)

// Grade settles a pending prediction against the realized observation for
// the same period. It reports whether the prediction was graded: an
// already-graded prediction or a period mismatch leaves it untouched, so
// grading is idempotent.
func Grade(p *models.Prediction, obs models.Observation) bool {
	if p == nil || p.Result != models.ResultPending || p.Period != obs.Period {
		return false
	}

	switch {
	case p.Category == obs.Category && p.Number == obs.Number:
		p.Result = models.ResultJackpot
	case p.Category == obs.Category:
		p.Result = models.ResultWin
	default:
		p.Result = models.ResultLose
	}
	return true
}
