package model

import "time"

// SeveritySource records where a breakdown entry's severity came from
type SeveritySource string

const (
	SeverityFromOption      SeveritySource = "option"       // single choice option mapping
	SeverityFromOptionsMean SeveritySource = "options_mean" // mean over selected options
	SeverityFromReviewer    SeveritySource = "reviewer"     // human-assigned on open text
)

// QuestionScore is one scored answer inside a Score breakdown.
// ERC = importance x severity, rounded to 2 decimals.
type QuestionScore struct {
	QuestionID string         `json:"questionId" bson:"questionId"`
	Principle  Principle      `json:"principle" bson:"principle"`
	Importance int            `json:"importance" bson:"importance"`
	Severity   float64        `json:"severity" bson:"severity"`
	ERC        float64        `json:"erc" bson:"erc"`
	Source     SeveritySource `json:"source" bson:"source"`
}

// PrincipleScore aggregates the scored answers of one canonical principle
type PrincipleScore struct {
	SumERC        float64         `json:"sumERC" bson:"sumERC"`
	AnsweredCount int             `json:"answeredCount" bson:"answeredCount"`
	TopDrivers    []QuestionScore `json:"topDrivers,omitempty" bson:"topDrivers,omitempty"` // 5 highest ERC
}

// ScoreTotals carries the cumulative figures of a Score
type ScoreTotals struct {
	OverallERC    float64 `json:"overallERC" bson:"overallERC"` // sum, never an average
	AnsweredCount int     `json:"answeredCount" bson:"answeredCount"`
	MissingCount  int     `json:"missingCount" bson:"missingCount"`
}

// Score is the derived risk record for one (project, user, questionnaire).
// It is replaceable cache content: always produced by the aggregator,
// superseded wholesale on recompute, never patched in place.
type Score struct {
	ID                  string                       `json:"id" bson:"_id,omitempty"`
	ProjectID           string                       `json:"projectId" bson:"projectId"`
	UserID              string                       `json:"userId" bson:"userId"`
	Role                string                       `json:"role" bson:"role"`
	QuestionnaireKey    string                       `json:"questionnaireKey" bson:"questionnaireKey"`
	ByPrinciple         map[Principle]PrincipleScore `json:"byPrinciple" bson:"byPrinciple"`
	Totals              ScoreTotals                  `json:"totals" bson:"totals"`
	QuestionBreakdown   []QuestionScore              `json:"questionBreakdown" bson:"questionBreakdown"`
	Warnings            []string                     `json:"warnings,omitempty" bson:"warnings,omitempty"`
	ScoringModelVersion string                       `json:"scoringModelVersion" bson:"scoringModelVersion"`
	ComputedAt          time.Time                    `json:"computedAt" bson:"computedAt"`
}

// CombinedView is a user's position across several questionnaires,
// synthesized on demand for reporting. Never persisted.
type CombinedView struct {
	ProjectID         string                       `json:"projectId"`
	UserID            string                       `json:"userId"`
	QuestionnaireKeys []string                     `json:"questionnaireKeys"`
	ByPrinciple       map[Principle]PrincipleScore `json:"byPrinciple"`
	Totals            ScoreTotals                  `json:"totals"`
	QuestionBreakdown []QuestionScore              `json:"questionBreakdown"`
}

// RolePrincipleScore is one role's mean figure for a principle
type RolePrincipleScore struct {
	MeanERC       float64 `json:"meanERC"` // mean of the role's user sums
	AnsweredCount int     `json:"answeredCount"`
	UserCount     int     `json:"userCount"`
}

// RoleScore aggregates every submitted user of one role
type RoleScore struct {
	Role        string                           `json:"role"`
	UserCount   int                              `json:"userCount"`
	ByPrinciple map[Principle]RolePrincipleScore `json:"byPrinciple"`
	OverallERC  float64                          `json:"overallERC"`
}

// ProjectPrincipleScore is the cross-role figure for one principle
type ProjectPrincipleScore struct {
	RiskERC           float64 `json:"riskERC"` // mean across contributing roles
	ContributingRoles int     `json:"contributingRoles"`
	AnsweredCount     int     `json:"answeredCount"`
}

// ProjectScore merges Score records across every role that submitted.
// Cross-role combination is an average of role-level aggregates. Never
// persisted; recomputed per request.
type ProjectScore struct {
	ProjectID   string                              `json:"projectId"`
	ByPrinciple map[Principle]ProjectPrincipleScore `json:"byPrinciple"`
	OverallERC  float64                             `json:"overallERC"`
	Roles       []RoleScore                         `json:"roles"`
	ComputedAt  time.Time                           `json:"computedAt"`
}
