package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Alias1177/WinGo-Predictor/models"
)

// snapshot is the on-disk shape of the two logs. Field names match the
// original history.json files so existing data keeps loading.
type snapshot struct {
	Trends      []models.Observation `json:"trends"`
	Predictions []models.Prediction  `json:"predictions"`
}

// Load reads a previously saved state from path. A missing file starts
// fresh; a corrupt one is logged and also starts fresh. Load never fails
// the caller.
func Load(path string, logger zerolog.Logger) *State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("path", path).Msg("History file unreadable, starting fresh")
		}
		return NewState()
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("History file corrupted, starting fresh")
		return NewState()
	}

	if len(snap.Trends) > MaxObservations {
		snap.Trends = snap.Trends[:MaxObservations]
	}
	if len(snap.Predictions) > MaxPredictions {
		snap.Predictions = snap.Predictions[:MaxPredictions]
	}

	logger.Info().
		Int("trends", len(snap.Trends)).
		Int("predictions", len(snap.Predictions)).
		Msg("Loaded history from disk")

	return &State{
		observations: snap.Trends,
		predictions:  snap.Predictions,
	}
}

// Save writes both logs to path. The write goes through a temp file and a
// rename, so a crash mid-save never corrupts the previous snapshot.
func (s *State) Save(path string) error {
	s.mu.RLock()
	snap := snapshot{
		Trends:      append([]models.Observation(nil), s.observations...),
		Predictions: append([]models.Prediction(nil), s.predictions...),
	}
	s.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}
