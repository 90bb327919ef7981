package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"ethoscore/internal/cache"
	"ethoscore/internal/metrics"
	"ethoscore/internal/model"
	"ethoscore/internal/repository"
	"ethoscore/internal/scoring"
)

// ErrRecomputeInFlight means another recompute currently holds the project's
// guard. Callers retry after it finishes or expires.
var ErrRecomputeInFlight = errors.New("a recompute for this project is already in flight")

// RecomputeService regenerates a project's Scores when they are missing,
// stale, or a caller forces it. The swap is staged: the new generation is
// upserted key by key and orphaned keys are pruned afterwards, so a crash
// mid-run leaves the previous scores in place rather than none.
type RecomputeService struct {
	responseRepo  repository.ResponseRepository
	scoreRepo     repository.ScoreRepository
	scoreSvc      *ScoreService
	validationSvc *ValidationService
	guard         cache.RecomputeGuard
}

// NewRecomputeService creates a new recompute service
func NewRecomputeService(
	responseRepo repository.ResponseRepository,
	scoreRepo repository.ScoreRepository,
	scoreSvc *ScoreService,
	validationSvc *ValidationService,
	guard cache.RecomputeGuard,
) *RecomputeService {
	return &RecomputeService{
		responseRepo:  responseRepo,
		scoreRepo:     scoreRepo,
		scoreSvc:      scoreSvc,
		validationSvc: validationSvc,
		guard:         guard,
	}
}

type scoreKey struct {
	userID           string
	questionnaireKey string
}

// Recompute checks the project's stored Scores against the current scoring
// model and regenerates them when needed. Only the given project is touched.
func (s *RecomputeService) Recompute(ctx context.Context, projectID string, force bool) (*model.RecomputeResult, error) {
	acquired, err := s.guard.Acquire(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire recompute guard: %w", err)
	}
	if !acquired {
		return nil, ErrRecomputeInFlight
	}
	defer s.guard.Release(ctx, projectID)

	old, err := s.scoreRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored scores: %w", err)
	}

	reasons := []string{}
	if force {
		reasons = append(reasons, "forced by caller")
	}
	if len(old) == 0 {
		reasons = append(reasons, "no stored scores")
	}
	stale := 0
	for _, sc := range old {
		if sc.ScoringModelVersion != scoring.ModelVersion {
			stale++
		}
	}
	if stale > 0 {
		reasons = append(reasons, fmt.Sprintf("%d score(s) on an outdated scoring model version", stale))
	}

	result := &model.RecomputeResult{
		ProjectID: projectID,
		Reasons:   reasons,
		OldCount:  len(old),
	}
	if len(reasons) == 0 {
		result.NewCount = len(old)
		result.VersionsCorrect = true
		metrics.RecordRecomputeRun("skipped")
		return result, nil
	}

	responses, err := s.responseRepo.GetByProject(ctx, projectID)
	if err != nil {
		metrics.RecordRecomputeRun("failed")
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	live := map[scoreKey]bool{}
	for _, key := range scoreKeys(responses) {
		live[key] = true
		if _, err := s.scoreSvc.ComputeScore(ctx, projectID, key.userID, key.questionnaireKey); err != nil {
			metrics.RecordRecomputeRun("failed")
			return nil, fmt.Errorf("recompute failed for user %s questionnaire %s: %w",
				key.userID, key.questionnaireKey, err)
		}
	}

	// Prune scores whose (user, questionnaire) key no longer has responses
	for _, sc := range old {
		if !live[scoreKey{sc.UserID, sc.QuestionnaireKey}] {
			if err := s.scoreRepo.DeleteByKey(ctx, projectID, sc.UserID, sc.QuestionnaireKey); err != nil {
				metrics.RecordRecomputeRun("failed")
				return nil, fmt.Errorf("failed to prune stale score: %w", err)
			}
		}
	}

	current, err := s.scoreRepo.GetByProject(ctx, projectID)
	if err != nil {
		metrics.RecordRecomputeRun("failed")
		return nil, fmt.Errorf("failed to reload scores: %w", err)
	}
	result.Recomputed = true
	result.NewCount = len(current)

	// Re-run the gate so the fresh verdict confirms the new generation's
	// version tags.
	verdict, err := s.validationSvc.ValidateForReporting(ctx, projectID)
	if err != nil {
		metrics.RecordRecomputeRun("failed")
		return nil, err
	}
	result.VersionsCorrect = verdict.Metadata.StaleScoreCount == 0

	slog.Info("project scores recomputed",
		"projectId", projectID,
		"oldCount", result.OldCount,
		"newCount", result.NewCount,
		"reasons", result.Reasons,
		"versionsCorrect", result.VersionsCorrect)
	metrics.RecordRecomputeRun("recomputed")
	return result, nil
}

// scoreKeys lists the distinct (user, questionnaire) combinations with
// responses, sorted for a deterministic recompute order.
func scoreKeys(responses []model.Response) []scoreKey {
	seen := map[scoreKey]bool{}
	keys := []scoreKey{}
	for _, r := range responses {
		k := scoreKey{r.UserID, r.QuestionnaireKey}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].userID != keys[j].userID {
			return keys[i].userID < keys[j].userID
		}
		return keys[i].questionnaireKey < keys[j].questionnaireKey
	})
	return keys
}
