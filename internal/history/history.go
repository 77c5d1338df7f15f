package history

import (
	"sync"
	"time"

	"github.com/Alias1177/WinGo-Predictor/internal/analyze"
	"github.com/Alias1177/WinGo-Predictor/models"
)

// Log capacities: oldest entries are evicted once a log is full.
const (
	MaxObservations = 1000
	MaxPredictions  = 200
)

// PredictFunc computes a draft from the current logs. It must be pure:
// ApplyRound calls it while holding the state lock.
type PredictFunc func(history []models.Observation, predictions []models.Prediction) models.Draft

// State owns the bounded newest-first logs of observations and
// predictions. One writer (the cycle runner) mutates it through
// ApplyRound; readers take copies under the read lock and never see a
// half-applied cycle.
type State struct {
	mu           sync.RWMutex
	observations []models.Observation // index 0 = most recent
	predictions  []models.Prediction  // index 0 = most recent
	lastUpdated  time.Time
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// CycleResult reports what a single ApplyRound changed.
type CycleResult struct {
	Duplicate bool
	Graded    *models.Prediction
	Created   *models.Prediction
}

// ApplyRound performs the mutating half of one polling cycle atomically:
// grade the head prediction if its period matches, record the new
// observation, and store the prediction for the next period (unless one
// already exists). A round whose period is already at the head of the
// history log is a duplicate poll and changes nothing.
func (s *State) ApplyRound(obs models.Observation, predict PredictFunc) CycleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.observations) > 0 && s.observations[0].Period == obs.Period {
		return CycleResult{Duplicate: true}
	}

	var res CycleResult

	if len(s.predictions) > 0 && analyze.Grade(&s.predictions[0], obs) {
		graded := s.predictions[0]
		res.Graded = &graded
	}

	s.observations = pushObservation(s.observations, obs)

	if next, err := models.NextPeriod(obs.Period); err == nil && !s.hasPrediction(next) {
		draft := predict(s.observations, s.predictions)
		created := models.Prediction{
			Period:     next,
			Category:   draft.Category,
			Number:     draft.Number,
			Confidence: draft.Confidence,
			Rationale:  draft.Rationale,
			Bias:       draft.Bias,
			Result:     models.ResultPending,
		}
		s.predictions = pushPrediction(s.predictions, created)
		res.Created = &created
	}

	s.lastUpdated = time.Now().UTC()
	return res
}

func (s *State) hasPrediction(period string) bool {
	for _, p := range s.predictions {
		if p.Period == period {
			return true
		}
	}
	return false
}

func pushObservation(log []models.Observation, obs models.Observation) []models.Observation {
	log = append([]models.Observation{obs}, log...)
	if len(log) > MaxObservations {
		log = log[:MaxObservations]
	}
	return log
}

func pushPrediction(log []models.Prediction, p models.Prediction) []models.Prediction {
	log = append([]models.Prediction{p}, log...)
	if len(log) > MaxPredictions {
		log = log[:MaxPredictions]
	}
	return log
}

// LatestPrediction returns a copy of the most recent prediction.
func (s *State) LatestPrediction() (models.Prediction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.predictions) == 0 {
		return models.Prediction{}, false
	}
	return s.predictions[0], true
}

// Observations returns a copy of the full observation log, newest first.
func (s *State) Observations() []models.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Observation, len(s.observations))
	copy(out, s.observations)
	return out
}

// Predictions returns a copy of the full prediction log, newest first.
func (s *State) Predictions() []models.Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Prediction, len(s.predictions))
	copy(out, s.predictions)
	return out
}

// Snapshot returns copies of the most recent limit entries of both logs.
func (s *State) Snapshot(limit int) ([]models.Observation, []models.Prediction) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	no := len(s.observations)
	if no > limit {
		no = limit
	}
	np := len(s.predictions)
	if np > limit {
		np = limit
	}

	obs := make([]models.Observation, no)
	copy(obs, s.observations[:no])
	preds := make([]models.Prediction, np)
	copy(preds, s.predictions[:np])
	return obs, preds
}

// Counts returns the sizes of both logs.
func (s *State) Counts() (observations, predictions int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observations), len(s.predictions)
}

// LastUpdated reports when the last cycle was applied.
func (s *State) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
