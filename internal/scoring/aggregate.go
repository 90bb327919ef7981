package scoring

import (
	"fmt"
	"sort"

	"ethoscore/internal/model"
)

// Aggregate computes the Score for one (project, user, questionnaire) key
// from its responses and the questionnaire's catalog questions. Returns nil
// when responses is empty: an empty Score is never materialized. Per-answer
// resolution failures are collected as warnings on the Score and do not
// abort aggregation of the remaining answers.
func Aggregate(responses []model.Response, questions []model.Question) *model.Score {
	if len(responses) == 0 {
		return nil
	}

	// Stable input order regardless of store ordering.
	sorted := make([]model.Response, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Role != sorted[j].Role {
			return sorted[i].Role < sorted[j].Role
		}
		return sorted[i].ID < sorted[j].ID
	})

	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var (
		breakdown []model.QuestionScore
		warnings  []string
		answered  = make(map[string]bool) // question ids with any content
	)

	for ri := range sorted {
		r := &sorted[ri]
		for ai := range r.Answers {
			a := &r.Answers[ai]
			if !a.HasContent() {
				continue
			}
			q, known := byID[a.QuestionID]
			if !known {
				warnings = append(warnings, fmt.Sprintf("answer references unknown question %s; answer excluded", a.QuestionID))
				continue
			}
			answered[q.ID] = true

			principle, ok := NormalizePrinciple(q.Principle)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("question %s: principle %q is not canonical; answer excluded", q.ID, q.Principle))
				continue
			}
			res, ok, warn := ResolveAnswer(q, a)
			if warn != "" {
				warnings = append(warnings, warn)
			}
			if !ok {
				continue
			}
			breakdown = append(breakdown, model.QuestionScore{
				QuestionID: q.ID,
				Principle:  principle,
				Importance: res.Importance,
				Severity:   res.Severity,
				ERC:        Contribution(res.Importance, res.Severity),
				Source:     res.Source,
			})
		}
	}

	missing := 0
	for i := range questions {
		if !answered[questions[i].ID] {
			missing++
		}
	}

	byPrinciple, overall := summarize(breakdown)

	first := sorted[0]
	return &model.Score{
		ProjectID:        first.ProjectID,
		UserID:           first.UserID,
		Role:             first.Role,
		QuestionnaireKey: first.QuestionnaireKey,
		ByPrinciple:      byPrinciple,
		Totals: model.ScoreTotals{
			OverallERC:    overall,
			AnsweredCount: len(breakdown),
			MissingCount:  missing,
		},
		QuestionBreakdown:   breakdown,
		Warnings:            warnings,
		ScoringModelVersion: ModelVersion,
	}
}

// summarize recomputes principle aggregates and the overall sum from
// breakdown entries. Every canonical principle appears in the result, with
// zero values when nothing of that principle was scored.
func summarize(breakdown []model.QuestionScore) (map[model.Principle]model.PrincipleScore, float64) {
	perPrinciple := make(map[model.Principle][]model.QuestionScore)
	for _, e := range breakdown {
		perPrinciple[e.Principle] = append(perPrinciple[e.Principle], e)
	}

	byPrinciple := make(map[model.Principle]model.PrincipleScore, 7)
	var overall float64
	for _, p := range model.Principles() {
		entries := perPrinciple[p]
		if len(entries) == 0 {
			byPrinciple[p] = model.PrincipleScore{}
			continue
		}
		var sum float64
		for _, e := range entries {
			sum += e.ERC
		}
		byPrinciple[p] = model.PrincipleScore{
			SumERC:        round2(sum),
			AnsweredCount: len(entries),
			TopDrivers:    topDrivers(entries),
		}
		overall += sum
	}
	return byPrinciple, round2(overall)
}

// topDrivers returns the highest-ERC entries, ties broken by input order.
func topDrivers(entries []model.QuestionScore) []model.QuestionScore {
	drivers := make([]model.QuestionScore, len(entries))
	copy(drivers, entries)
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].ERC > drivers[j].ERC
	})
	if len(drivers) > topDriverCount {
		drivers = drivers[:topDriverCount]
	}
	return drivers
}
