package model

// Principle is one of the seven canonical ethical evaluation categories.
// Scores are always keyed by canonical principles; free-form catalog labels
// are normalized before they reach any aggregate.
type Principle string

const (
	PrincipleHumanAgency           Principle = "HUMAN_AGENCY"
	PrincipleTechnicalRobustness   Principle = "TECHNICAL_ROBUSTNESS"
	PrinciplePrivacyDataGovernance Principle = "PRIVACY_DATA_GOVERNANCE"
	PrincipleTransparency          Principle = "TRANSPARENCY"
	PrincipleFairness              Principle = "FAIRNESS"
	PrincipleSocietalWellbeing     Principle = "SOCIETAL_WELLBEING"
	PrincipleAccountability        Principle = "ACCOUNTABILITY"
)

// canonicalPrinciples fixes the reporting order.
var canonicalPrinciples = []Principle{
	PrincipleHumanAgency,
	PrincipleTechnicalRobustness,
	PrinciplePrivacyDataGovernance,
	PrincipleTransparency,
	PrincipleFairness,
	PrincipleSocietalWellbeing,
	PrincipleAccountability,
}

// Principles returns the canonical principles in reporting order.
func Principles() []Principle {
	out := make([]Principle, len(canonicalPrinciples))
	copy(out, canonicalPrinciples)
	return out
}
