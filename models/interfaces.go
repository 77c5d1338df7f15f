package models

import "context"

// RoundClient fetches the latest round from the lottery feed.
type RoundClient interface {
	GetLatestRound(ctx context.Context) (*WinGoRound, error)
}

// Notifier pushes prediction events to an external channel.
type Notifier interface {
	NotifyPrediction(p Prediction) error
	NotifyGrade(p Prediction, obs Observation) error
}

// Archiver durably records graded predictions outside the rolling logs.
type Archiver interface {
	ArchiveGraded(p Prediction, obs Observation) error
}
