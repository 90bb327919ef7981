package scoring

import (
	"sort"
	"time"

	"ethoscore/internal/model"
)

// Contributor is one (user, role) pair that submitted at least one response.
// Draft-only respondents never appear here.
type Contributor struct {
	UserID string
	Role   string
}

// AggregateProject merges Score records across every role that actually
// submitted. Each role's figure is the mean of its users' combined views,
// and each principle's project risk is the mean of the role figures that
// scored that principle, so cross-role combination is explicitly an average
// of averages, never a re-sum of raw answers. Roles that never submitted do
// not appear and do not zero-weight any mean. Returns nil when there are no
// contributors.
func AggregateProject(projectID string, scores []model.Score, contributors []Contributor, at time.Time) *model.ProjectScore {
	if len(contributors) == 0 {
		return nil
	}

	// Stable score order regardless of store ordering.
	ordered := make([]model.Score, len(scores))
	copy(ordered, scores)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].UserID != ordered[j].UserID {
			return ordered[i].UserID < ordered[j].UserID
		}
		return ordered[i].QuestionnaireKey < ordered[j].QuestionnaireKey
	})
	grouped := make(map[Contributor][]model.Score)
	for _, s := range ordered {
		k := Contributor{UserID: s.UserID, Role: s.Role}
		grouped[k] = append(grouped[k], s)
	}

	usersByRole := make(map[string][]string)
	seen := make(map[Contributor]bool)
	for _, c := range contributors {
		if seen[c] {
			continue
		}
		seen[c] = true
		usersByRole[c.Role] = append(usersByRole[c.Role], c.UserID)
	}
	roles := make([]string, 0, len(usersByRole))
	for role := range usersByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var roleScores []model.RoleScore
	for _, role := range roles {
		users := usersByRole[role]
		sort.Strings(users)

		var (
			sumByPrinciple      = make(map[model.Principle]float64)
			usersByPrinciple    = make(map[model.Principle]int)
			answeredByPrinciple = make(map[model.Principle]int)
			overallSum          float64
			contributing        int
		)
		for _, user := range users {
			combined := Combine(grouped[Contributor{UserID: user, Role: role}])
			if combined == nil {
				// Submitted but never scored; the validation gate reports
				// the gap, aggregation just skips it.
				continue
			}
			contributing++
			overallSum += combined.Totals.OverallERC
			for p, ps := range combined.ByPrinciple {
				if ps.AnsweredCount == 0 {
					continue
				}
				sumByPrinciple[p] += ps.SumERC
				usersByPrinciple[p]++
				answeredByPrinciple[p] += ps.AnsweredCount
			}
		}
		if contributing == 0 {
			continue
		}

		byPrinciple := make(map[model.Principle]model.RolePrincipleScore, 7)
		for _, p := range model.Principles() {
			n := usersByPrinciple[p]
			if n == 0 {
				byPrinciple[p] = model.RolePrincipleScore{}
				continue
			}
			byPrinciple[p] = model.RolePrincipleScore{
				MeanERC:       round2(sumByPrinciple[p] / float64(n)),
				AnsweredCount: answeredByPrinciple[p],
				UserCount:     n,
			}
		}
		roleScores = append(roleScores, model.RoleScore{
			Role:        role,
			UserCount:   contributing,
			ByPrinciple: byPrinciple,
			OverallERC:  round2(overallSum / float64(contributing)),
		})
	}
	if len(roleScores) == 0 {
		return nil
	}

	byPrinciple := make(map[model.Principle]model.ProjectPrincipleScore, 7)
	var overallSum float64
	overallCount := 0
	for _, p := range model.Principles() {
		var sum float64
		n, answered := 0, 0
		for _, rs := range roleScores {
			ps := rs.ByPrinciple[p]
			if ps.AnsweredCount == 0 {
				continue
			}
			sum += ps.MeanERC
			n++
			answered += ps.AnsweredCount
		}
		if n == 0 {
			byPrinciple[p] = model.ProjectPrincipleScore{}
			continue
		}
		risk := round2(sum / float64(n))
		byPrinciple[p] = model.ProjectPrincipleScore{
			RiskERC:           risk,
			ContributingRoles: n,
			AnsweredCount:     answered,
		}
		overallSum += risk
		overallCount++
	}

	var overall float64
	if overallCount > 0 {
		overall = round2(overallSum / float64(overallCount))
	}
	return &model.ProjectScore{
		ProjectID:   projectID,
		ByPrinciple: byPrinciple,
		OverallERC:  overall,
		Roles:       roleScores,
		ComputedAt:  at,
	}
}
