package models

import "fmt"

// RationaleKind identifies which decision branch produced a prediction.
// Confidence and bias are derived from the kind with exhaustive switches,
// never by inspecting the human-readable label.
type RationaleKind string

const (
	RationaleStatisticalFallback RationaleKind = "STATISTICAL_FALLBACK"
	RationaleDragonSkip          RationaleKind = "DRAGON_SKIP"
	RationalePatternMatch        RationaleKind = "PATTERN_MATCH"
	RationaleShortStreakReversal RationaleKind = "SHORT_STREAK_REVERSAL"
	RationaleAlternating         RationaleKind = "ALTERNATING"
	RationaleDominance           RationaleKind = "DOMINANCE"
	RationaleMomentum            RationaleKind = "MOMENTUM"
)

// Rationale carries the branch that fired plus its structured parameters.
// Only the fields relevant to Kind are set.
type Rationale struct {
	Kind            RationaleKind `json:"kind"`
	PatternLength   int           `json:"pattern_length,omitempty"`
	PatternSequence string        `json:"pattern_sequence,omitempty"`
	StreakCount     int           `json:"streak_count,omitempty"`
	DominanceRatio  float64       `json:"dominance_ratio,omitempty"`
}

// Label renders the rationale for logs, notifications and API responses.
func (r Rationale) Label() string {
	switch r.Kind {
	case RationaleStatisticalFallback:
		return "STATISTICAL_FALLBACK"
	case RationaleDragonSkip:
		return "HIGH-RISK DRAGON DETECTED! SKIP ZONE!"
	case RationalePatternMatch:
		return fmt.Sprintf("%d-digit MATCH: %s", r.PatternLength, r.PatternSequence)
	case RationaleShortStreakReversal:
		return fmt.Sprintf("SHORT_STREAK_REVERSAL (%dx)", r.StreakCount)
	case RationaleAlternating:
		return "ALTERNATING"
	case RationaleDominance:
		if r.DominanceRatio >= 0.5 {
			return fmt.Sprintf("HIGH DOMINANCE (%d%%)", int(r.DominanceRatio*100+0.5))
		}
		return fmt.Sprintf("LOW DOMINANCE (%d%%)", int((1-r.DominanceRatio)*100+0.5))
	case RationaleMomentum:
		return "MOMENTUM"
	}
	return string(r.Kind)
}

// Bias is the directional tendency label attached to a prediction.
type Bias string

const (
	BiasNeutral    Bias = "NEUTRAL"
	BiasMomentum   Bias = "MOMENTUM_BIAS"
	BiasReversal   Bias = "REVERSAL_BIAS"
	BiasPattern    Bias = "PATTERN_BIAS"
	BiasChop       Bias = "CHOP_BIAS"
	BiasDragonRisk Bias = "DRAGON_RISK"
)
