package scoring

import (
	"fmt"

	"ethoscore/internal/model"
)

// Resolution carries the scoring inputs derived from one answered question.
type Resolution struct {
	Importance int
	Severity   float64
	Source     model.SeveritySource
}

// ResolveAnswer derives importance and severity for a single answered
// question. ok reports whether the answer is scoreable; warn, when non-empty,
// describes a data-shape problem the caller should surface. An unscoreable
// answer with an empty warn (pending open-text severity) is excluded
// silently: the validation gate tracks severity coverage separately.
//
// Importance resolution order: answer-level override, question default,
// fixed fallback. Severity is never guessed: a selected option missing from
// the catalog mapping or an unassigned open-text severity excludes the
// answer rather than substituting a neutral value.
func ResolveAnswer(q *model.Question, a *model.Answer) (res Resolution, ok bool, warn string) {
	res.Importance = resolveImportance(q, a)

	switch q.AnswerType {
	case model.AnswerTypeSingleChoice:
		sev, found := q.OptionSeverity(a.SelectedOption)
		if !found {
			return res, false, fmt.Sprintf("question %s: option %q has no severity mapping; answer excluded", q.ID, a.SelectedOption)
		}
		res.Severity = clampSeverity(sev)
		res.Source = model.SeverityFromOption
		return res, true, ""

	case model.AnswerTypeMultiChoice:
		if len(a.SelectedOptions) == 0 {
			return res, false, ""
		}
		var sum float64
		for _, key := range a.SelectedOptions {
			sev, found := q.OptionSeverity(key)
			if !found {
				return res, false, fmt.Sprintf("question %s: option %q has no severity mapping; answer excluded", q.ID, key)
			}
			sum += sev
		}
		res.Severity = clampSeverity(sum / float64(len(a.SelectedOptions)))
		res.Source = model.SeverityFromOptionsMean
		return res, true, ""

	case model.AnswerTypeOpenText:
		if a.Severity == nil {
			return res, false, ""
		}
		res.Severity = clampSeverity(*a.Severity)
		res.Source = model.SeverityFromReviewer
		return res, true, ""

	case model.AnswerTypeNumeric:
		return res, false, fmt.Sprintf("question %s: numeric answers are not scored; answer excluded", q.ID)

	default:
		return res, false, fmt.Sprintf("question %s: unknown answer type %q; answer excluded", q.ID, q.AnswerType)
	}
}

func resolveImportance(q *model.Question, a *model.Answer) int {
	if a.Importance != nil {
		return clampImportance(*a.Importance)
	}
	if q.Importance != 0 {
		return clampImportance(q.Importance)
	}
	return defaultImportance
}
