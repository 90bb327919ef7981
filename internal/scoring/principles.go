package scoring

import (
	"strings"

	"ethoscore/internal/model"
)

// principleAliases maps historical and long-form labels to canonical
// principles. The table is fixed at build time and never mutated.
var principleAliases = map[string]model.Principle{
	"human agency and oversight":                  model.PrincipleHumanAgency,
	"human agency & oversight":                    model.PrincipleHumanAgency,
	"human oversight":                             model.PrincipleHumanAgency,
	"technical robustness and safety":             model.PrincipleTechnicalRobustness,
	"robustness and safety":                       model.PrincipleTechnicalRobustness,
	"privacy and data governance":                 model.PrinciplePrivacyDataGovernance,
	"data governance":                             model.PrinciplePrivacyDataGovernance,
	"explainability":                              model.PrincipleTransparency,
	"diversity, non-discrimination and fairness":  model.PrincipleFairness,
	"non-discrimination":                          model.PrincipleFairness,
	"societal and environmental well-being":       model.PrincipleSocietalWellbeing,
	"societal and environmental wellbeing":        model.PrincipleSocietalWellbeing,
	"diversity, non-discrimination, and fairness": model.PrincipleFairness,
}

// principleSnake maps snake_case seed values to canonical principles.
var principleSnake = map[string]model.Principle{
	"human_agency":                              model.PrincipleHumanAgency,
	"human_agency_and_oversight":                model.PrincipleHumanAgency,
	"technical_robustness":                      model.PrincipleTechnicalRobustness,
	"technical_robustness_and_safety":           model.PrincipleTechnicalRobustness,
	"privacy_data_governance":                   model.PrinciplePrivacyDataGovernance,
	"privacy_and_data_governance":               model.PrinciplePrivacyDataGovernance,
	"transparency":                              model.PrincipleTransparency,
	"fairness":                                  model.PrincipleFairness,
	"diversity_non_discrimination_and_fairness": model.PrincipleFairness,
	"societal_wellbeing":                        model.PrincipleSocietalWellbeing,
	"societal_and_environmental_wellbeing":      model.PrincipleSocietalWellbeing,
	"accountability":                            model.PrincipleAccountability,
}

var canonicalByLower = func() map[string]model.Principle {
	m := make(map[string]model.Principle, 7)
	for _, p := range model.Principles() {
		m[strings.ToLower(string(p))] = p
	}
	return m
}()

// NormalizePrinciple maps a free-form principle label to a canonical one.
// Lookup order: exact case-insensitive canonical match, alias table,
// snake_case table. Unresolvable labels exclude the owning answer from
// scoring; they are never guessed.
func NormalizePrinciple(label string) (model.Principle, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return "", false
	}
	if p, ok := canonicalByLower[key]; ok {
		return p, true
	}
	if p, ok := principleAliases[key]; ok {
		return p, true
	}
	if p, ok := principleSnake[key]; ok {
		return p, true
	}
	return "", false
}
