package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/WinGo-Predictor/internal/analyze"
	"github.com/Alias1177/WinGo-Predictor/internal/calculate"
	"github.com/Alias1177/WinGo-Predictor/internal/history"
	"github.com/Alias1177/WinGo-Predictor/models"
)

// Runner drives the polling cycles: fetch the latest round, settle the
// matching prediction, record the observation, predict the next period,
// persist. One goroutine owns all mutation, so cycles never overlap.
type Runner struct {
	client      models.RoundClient
	state       *history.State
	historyFile string
	interval    time.Duration
	archiver    models.Archiver // optional
	notifier    models.Notifier // optional
	logger      zerolog.Logger
	stopCh      chan struct{}
}

// Options configures a Runner. Archiver and Notifier may be nil.
type Options struct {
	Client      models.RoundClient
	State       *history.State
	HistoryFile string
	Interval    time.Duration
	Archiver    models.Archiver
	Notifier    models.Notifier
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{
		client:      opts.Client,
		state:       opts.State,
		historyFile: opts.HistoryFile,
		interval:    opts.Interval,
		archiver:    opts.Archiver,
		notifier:    opts.Notifier,
		logger:      log.With().Str("component", "runner").Logger(),
		stopCh:      make(chan struct{}),
	}
}

// Start runs the first cycle immediately, then keeps cycling on the
// configured interval until Stop is called. Cycle errors are logged and
// the schedule continues.
func (r *Runner) Start() {
	r.runOnce()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.runOnce()
			case <-r.stopCh:
				return
			}
		}
	}()

	r.logger.Info().Dur("interval", r.interval).Msg("Runner started")
}

// Stop halts the cycle schedule. A cycle already in flight finishes.
func (r *Runner) Stop() {
	close(r.stopCh)
}

func (r *Runner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	if err := r.Cycle(ctx); err != nil {
		r.logger.Error().Err(err).Msg("Cycle failed")
	}
}

// Cycle performs one full poll-grade-predict-persist pass. A feed error
// aborts before any state is touched; persistence problems are logged and
// never fail the cycle.
func (r *Runner) Cycle(ctx context.Context) error {
	round, err := r.client.GetLatestRound(ctx)
	if err != nil {
		return fmt.Errorf("fetching round: %w", err)
	}

	obs := models.Observation{
		Period:   round.IssueNumber,
		Number:   round.Number,
		Category: calculate.Classify(round.Number),
	}

	res := r.state.ApplyRound(obs, analyze.Predict)
	if res.Duplicate {
		r.logger.Debug().Str("period", obs.Period).Msg("Round already recorded, skipping")
		return nil
	}

	if res.Graded != nil {
		r.logger.Info().
			Str("period", res.Graded.Period).
			Str("result", string(res.Graded.Result)).
			Str("called", string(res.Graded.Category)).
			Int("drawn", obs.Number).
			Msg("Prediction graded")
		r.archive(*res.Graded, obs)
	}

	if res.Created != nil {
		r.logger.Info().
			Str("period", res.Created.Period).
			Str("category", string(res.Created.Category)).
			Int("num", res.Created.Number).
			Int("confidence", res.Created.Confidence).
			Str("logic", res.Created.Rationale.Label()).
			Msg("New prediction")
		r.notifyPrediction(*res.Created)
	}

	if err := r.state.Save(r.historyFile); err != nil {
		r.logger.Error().Err(err).Msg("Failed to save history")
	}

	return nil
}

func (r *Runner) archive(p models.Prediction, obs models.Observation) {
	if r.archiver != nil {
		if err := r.archiver.ArchiveGraded(p, obs); err != nil {
			r.logger.Error().Err(err).Str("period", p.Period).Msg("Failed to archive graded prediction")
		}
	}
	if r.notifier != nil {
		if err := r.notifier.NotifyGrade(p, obs); err != nil {
			r.logger.Error().Err(err).Msg("Failed to send grade notification")
		}
	}
}

func (r *Runner) notifyPrediction(p models.Prediction) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.NotifyPrediction(p); err != nil {
		r.logger.Error().Err(err).Msg("Failed to send prediction notification")
	}
}
