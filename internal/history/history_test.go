package history

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/WinGo-Predictor/models"
)

func fixedDraft(category models.Category, number int) PredictFunc {
	return func([]models.Observation, []models.Prediction) models.Draft {
		return models.Draft{
			Category:   category,
			Number:     number,
			Confidence: 75,
			Rationale:  models.Rationale{Kind: models.RationaleMomentum},
			Bias:       models.BiasMomentum,
		}
	}
}

func obsAt(period string, number int) models.Observation {
	category := models.CategoryLow
	if number >= 5 {
		category = models.CategoryHigh
	}
	return models.Observation{Period: period, Number: number, Category: category}
}

func TestApplyRoundCreatesPrediction(t *testing.T) {
	s := NewState()

	res := s.ApplyRound(obsAt("100", 7), fixedDraft(models.CategoryHigh, 8))

	assert.False(t, res.Duplicate)
	assert.Nil(t, res.Graded)
	require.NotNil(t, res.Created)
	assert.Equal(t, "101", res.Created.Period)
	assert.Equal(t, models.ResultPending, res.Created.Result)

	latest, ok := s.LatestPrediction()
	require.True(t, ok)
	assert.Equal(t, "101", latest.Period)

	no, np := s.Counts()
	assert.Equal(t, 1, no)
	assert.Equal(t, 1, np)
}

func TestApplyRoundDuplicatePeriod(t *testing.T) {
	s := NewState()
	s.ApplyRound(obsAt("100", 7), fixedDraft(models.CategoryHigh, 8))

	res := s.ApplyRound(obsAt("100", 3), fixedDraft(models.CategoryLow, 2))

	assert.True(t, res.Duplicate)
	no, np := s.Counts()
	assert.Equal(t, 1, no)
	assert.Equal(t, 1, np)
}

func TestApplyRoundGradesMatchingPeriod(t *testing.T) {
	s := NewState()
	s.ApplyRound(obsAt("100", 7), fixedDraft(models.CategoryHigh, 8))

	// Round 101 draws 8: the stored High/8 call is a jackpot.
	res := s.ApplyRound(obsAt("101", 8), fixedDraft(models.CategoryLow, 2))

	require.NotNil(t, res.Graded)
	assert.Equal(t, "101", res.Graded.Period)
	assert.Equal(t, models.ResultJackpot, res.Graded.Result)

	// The stored log reflects the grade too.
	preds := s.Predictions()
	require.Len(t, preds, 2)
	assert.Equal(t, models.ResultJackpot, preds[1].Result)
	assert.Equal(t, models.ResultPending, preds[0].Result)
}

func TestApplyRoundLoseGrade(t *testing.T) {
	s := NewState()
	s.ApplyRound(obsAt("100", 7), fixedDraft(models.CategoryHigh, 8))

	res := s.ApplyRound(obsAt("101", 2), fixedDraft(models.CategoryLow, 2))

	require.NotNil(t, res.Graded)
	assert.Equal(t, models.ResultLose, res.Graded.Result)
}

func TestLogsAreBounded(t *testing.T) {
	s := NewState()
	for i := 0; i < MaxObservations+50; i++ {
		s.ApplyRound(obsAt(strconv.Itoa(1000+i), i%10), fixedDraft(models.CategoryHigh, 7))
	}

	no, np := s.Counts()
	assert.Equal(t, MaxObservations, no)
	assert.Equal(t, MaxPredictions, np)

	// Newest entries survive eviction.
	obs := s.Observations()
	assert.Equal(t, strconv.Itoa(1000+MaxObservations+49), obs[0].Period)
}

func TestSnapshotLimits(t *testing.T) {
	s := NewState()
	for i := 0; i < 80; i++ {
		s.ApplyRound(obsAt(strconv.Itoa(1000+i), i%10), fixedDraft(models.CategoryHigh, 7))
	}

	obs, preds := s.Snapshot(50)
	assert.Len(t, obs, 50)
	assert.Len(t, preds, 50)
	assert.Equal(t, "1079", obs[0].Period)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := NewState()
	for i := 0; i < 25; i++ {
		s.ApplyRound(obsAt(strconv.Itoa(2000+i), i%10), fixedDraft(models.CategoryHigh, 7))
	}
	require.NoError(t, s.Save(path))

	loaded := Load(path, zerolog.Nop())

	assert.Equal(t, s.Observations(), loaded.Observations())
	assert.Equal(t, s.Predictions(), loaded.Predictions())
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"), zerolog.Nop())

	no, np := s.Counts()
	assert.Equal(t, 0, no)
	assert.Equal(t, 0, np)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := Load(path, zerolog.Nop())

	no, np := s.Counts()
	assert.Equal(t, 0, no)
	assert.Equal(t, 0, np)
}
