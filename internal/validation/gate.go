// Package validation implements the reporting gate: the fixed sequence of
// integrity checks that decides whether a project's risk figures may be
// shown in a report. The gate is pure; callers assemble its Input from the
// stores and run Evaluate per report request. Verdicts are never cached.
package validation

import (
	"fmt"
	"time"

	"ethoscore/internal/model"
	"ethoscore/internal/scoring"
)

// Input is everything the gate inspects for one project.
type Input struct {
	ProjectID   string
	Assignments []model.Assignment
	Responses   []model.Response
	Scores      []model.Score
	Questions   []model.Question

	// LegacyScoreCount is the number of stored responses still carrying the
	// retired answerScore field. The scoring path never auto-corrects these;
	// migration is a separate concern.
	LegacyScoreCount int

	// MinAssignments is the warn threshold for total expert headcount.
	MinAssignments int

	// CurrentVersion is the scoring model tag stored Scores must carry.
	CurrentVersion string
}

// Evaluate runs every check in fixed order. The first check that records an
// error fixes the verdict, but later checks still run and every finding is
// appended, so a report always sees the full problem list.
func Evaluate(in Input, at time.Time) *model.ValidationResult {
	res := &model.ValidationResult{
		ProjectID:      in.ProjectID,
		ValidityStatus: model.ValidityValid,
		Errors:         []string{},
		Warnings:       []string{},
		CheckedAt:      at,
	}
	fail := func(status model.ValidityStatus, msg string) {
		res.Errors = append(res.Errors, msg)
		if res.ValidityStatus == model.ValidityValid {
			res.ValidityStatus = status
		}
	}

	// 1. Evaluator cardinality: exactly one ethical expert, always.
	experts := 0
	for _, a := range in.Assignments {
		if a.Role == model.RoleEthicalExpert {
			experts++
		}
	}
	res.Metadata.AssignmentCount = len(in.Assignments)
	res.Metadata.EthicalExpertCount = experts
	if experts != 1 {
		fail(model.ValidityEvaluatorConfiguration,
			fmt.Sprintf("evaluator configuration requires exactly one %q assignment, found %d", model.RoleEthicalExpert, experts))
	}
	if in.MinAssignments > 0 && len(in.Assignments) < in.MinAssignments {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("only %d expert(s) assigned, fewer than the recommended minimum of %d", len(in.Assignments), in.MinAssignments))
	}

	// 2. Response/Score alignment: every submitted questionnaire needs its score.
	type scoreKey struct{ user, questionnaire string }
	scored := make(map[scoreKey]bool, len(in.Scores))
	for _, s := range in.Scores {
		scored[scoreKey{s.UserID, s.QuestionnaireKey}] = true
	}
	submittedUsers := make(map[string]bool)
	missing := 0
	seenPair := make(map[scoreKey]bool)
	for i := range in.Responses {
		r := &in.Responses[i]
		if !r.IsSubmitted() {
			continue
		}
		submittedUsers[r.UserID] = true
		k := scoreKey{r.UserID, r.QuestionnaireKey}
		if seenPair[k] {
			continue
		}
		seenPair[k] = true
		if !scored[k] {
			missing++
		}
	}
	res.Metadata.SubmittedUserCount = len(submittedUsers)
	res.Metadata.ScoreCount = len(in.Scores)
	if missing > 0 {
		fail(model.ValidityMissingScores,
			fmt.Sprintf("%d submitted questionnaire(s) have no corresponding score", missing))
	}

	// 3. Schema violations are surfaced, never auto-corrected here.
	if in.LegacyScoreCount > 0 {
		fail(model.ValiditySchemaViolation,
			fmt.Sprintf("%d response(s) still carry the retired answerScore field", in.LegacyScoreCount))
	}

	// 4. Severity completeness over content-bearing answers. Numeric answers
	// carry no severity semantics and stay out of the denominator.
	byID := make(map[string]*model.Question, len(in.Questions))
	for i := range in.Questions {
		byID[in.Questions[i].ID] = &in.Questions[i]
	}
	covered, total := 0, 0
	for i := range in.Responses {
		r := &in.Responses[i]
		for ai := range r.Answers {
			a := &r.Answers[ai]
			if !a.HasContent() {
				continue
			}
			q, known := byID[a.QuestionID]
			if !known || q.AnswerType == model.AnswerTypeNumeric {
				continue
			}
			total++
			if _, ok, _ := scoring.ResolveAnswer(q, a); ok {
				covered++
			}
		}
	}
	coverage := 1.0
	if total > 0 {
		coverage = float64(covered) / float64(total)
	}
	res.Metadata.SeverityCoverage = coverage
	switch {
	case total == 0:
		// Nothing to cover; checks 1 and 2 catch empty projects.
	case coverage < 0.5:
		fail(model.ValidityPartialData,
			fmt.Sprintf("only %d of %d answers carry a resolved severity; at least half are required", covered, total))
	case coverage < 1:
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d of %d answers still lack a resolved severity", total-covered, total))
	}

	// 5. Scoring-version currency: stale scores warn, recompute is the remedy.
	stale := 0
	for _, s := range in.Scores {
		if s.ScoringModelVersion != in.CurrentVersion {
			stale++
		}
	}
	res.Metadata.StaleScoreCount = stale
	if stale > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d score(s) carry an outdated scoring model version; recompute to refresh", stale))
	}

	return res
}
