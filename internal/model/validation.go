package model

import "time"

// ValidityStatus is the validation gate verdict. Reporting must suppress
// all numeric risk figures whenever the status is not ValidityValid.
type ValidityStatus string

const (
	ValidityValid                  ValidityStatus = "valid"
	ValidityEvaluatorConfiguration ValidityStatus = "invalid_evaluator_configuration"
	ValidityMissingScores          ValidityStatus = "invalid_missing_scores"
	ValiditySchemaViolation        ValidityStatus = "invalid_schema_violation"
	ValidityPartialData            ValidityStatus = "invalid_partial_data"
)

// ValidationMetadata carries the counts behind a verdict
type ValidationMetadata struct {
	AssignmentCount    int     `json:"assignmentCount"`
	EthicalExpertCount int     `json:"ethicalExpertCount"`
	SubmittedUserCount int     `json:"submittedUserCount"`
	ScoreCount         int     `json:"scoreCount"`
	SeverityCoverage   float64 `json:"severityCoverage"` // 0-1 fraction of answers with resolved severity
	StaleScoreCount    int     `json:"staleScoreCount"`
}

// ValidationResult is the gate's full verdict for one project. Ephemeral:
// computed fresh per report request, never cached across recompute.
type ValidationResult struct {
	ProjectID      string             `json:"projectId"`
	ValidityStatus ValidityStatus     `json:"validityStatus"`
	Errors         []string           `json:"errors"`
	Warnings       []string           `json:"warnings"`
	Metadata       ValidationMetadata `json:"metadata"`
	CheckedAt      time.Time          `json:"checkedAt"`
}

// IsValid reports whether numeric figures may be shown.
func (v *ValidationResult) IsValid() bool {
	return v.ValidityStatus == ValidityValid
}

// RecomputeResult describes one recompute run over a single project
type RecomputeResult struct {
	ProjectID       string   `json:"projectId"`
	Recomputed      bool     `json:"recomputed"`
	Reasons         []string `json:"reasons"`
	OldCount        int      `json:"oldCount"`
	NewCount        int      `json:"newCount"`
	VersionsCorrect bool     `json:"versionsCorrect"`
}
