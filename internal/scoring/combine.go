package scoring

import "ethoscore/internal/model"

// Combine merges several Score records for one user (general plus
// role-specific questionnaires) into a single view. Principle and overall
// figures are recomputed from the concatenated breakdown entries, never from
// the inputs' already-summed totals; a question appearing in more than one
// questionnaire counts once (first occurrence wins, input order preserved).
// Returns nil for no input. The result is synthesized for reporting and is
// never persisted as a Score.
func Combine(scores []model.Score) *model.CombinedView {
	if len(scores) == 0 {
		return nil
	}

	var (
		breakdown []model.QuestionScore
		keys      []string
		missing   int
		seenQ     = make(map[string]bool)
		seenKey   = make(map[string]bool)
	)
	for i := range scores {
		s := &scores[i]
		if !seenKey[s.QuestionnaireKey] {
			seenKey[s.QuestionnaireKey] = true
			keys = append(keys, s.QuestionnaireKey)
		}
		// Overlap across questionnaires is not derivable from Score records
		// alone, so combined missing counts are additive.
		missing += s.Totals.MissingCount
		for _, e := range s.QuestionBreakdown {
			if seenQ[e.QuestionID] {
				continue
			}
			seenQ[e.QuestionID] = true
			breakdown = append(breakdown, e)
		}
	}

	byPrinciple, overall := summarize(breakdown)

	return &model.CombinedView{
		ProjectID:         scores[0].ProjectID,
		UserID:            scores[0].UserID,
		QuestionnaireKeys: keys,
		ByPrinciple:       byPrinciple,
		Totals: model.ScoreTotals{
			OverallERC:    overall,
			AnsweredCount: len(breakdown),
			MissingCount:  missing,
		},
		QuestionBreakdown: breakdown,
	}
}
