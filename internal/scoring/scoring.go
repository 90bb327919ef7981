// Package scoring implements the deterministic pipeline that turns expert
// questionnaire answers into ethical risk figures: per-question contributions
// (ERC = importance x severity), per-principle and overall aggregates, and
// the combined views reporting is built on. The package is pure: it never
// touches storage, never logs, and surfaces per-record problems as warning
// strings on its outputs.
package scoring

import "math"

// ModelVersion tags every Score produced by this pipeline. Stored Scores
// carrying an older tag are stale and get regenerated on recompute.
const ModelVersion = "erc-v2"

const (
	defaultImportance = 2 // applied when neither answer nor question carries one
	minImportance     = 1
	maxImportance     = 4
	topDriverCount    = 5
)

// round2 snaps a value to 2 decimals. Per-question contributions are stored
// rounded, aggregates accumulate those rounded values, and the final figures
// are rounded again so that overall, principle sums and breakdown entries
// add up exactly.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampImportance(v int) int {
	if v < minImportance {
		return minImportance
	}
	if v > maxImportance {
		return maxImportance
	}
	return v
}

func clampSeverity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Contribution computes the Ethical Risk Contribution of one resolved
// answer, rounded to 2 decimals. With importance in [1,4] and severity in
// [0,1] the result is always in [0,4].
func Contribution(importance int, severity float64) float64 {
	return round2(float64(importance) * severity)
}
