package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ethoscore/internal/metrics"
	"ethoscore/internal/model"
	"ethoscore/internal/repository"
	"ethoscore/internal/scoring"
)

// ScoreService computes and stores per-questionnaire risk scores
type ScoreService struct {
	responseRepo repository.ResponseRepository
	scoreRepo    repository.ScoreRepository
	catalogSvc   *CatalogService
}

// NewScoreService creates a new score service
func NewScoreService(
	responseRepo repository.ResponseRepository,
	scoreRepo repository.ScoreRepository,
	catalogSvc *CatalogService,
) *ScoreService {
	return &ScoreService{
		responseRepo: responseRepo,
		scoreRepo:    scoreRepo,
		catalogSvc:   catalogSvc,
	}
}

// Score documents carry a natural-key id so the replace-by-key upsert never
// alters an existing document's _id.
func scoreID(projectID, userID, questionnaireKey string) string {
	return fmt.Sprintf("%s:%s:%s", projectID, userID, questionnaireKey)
}

// ComputeScore rebuilds the Score for one (project, user, questionnaire) from
// the stored responses and upserts it. Returns nil when no responses match.
func (s *ScoreService) ComputeScore(ctx context.Context, projectID, userID, questionnaireKey string) (*model.Score, error) {
	start := time.Now()

	responses, err := s.responseRepo.GetByKey(ctx, projectID, userID, questionnaireKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	if len(responses) == 0 {
		return nil, nil
	}

	questions, err := s.catalogSvc.GetQuestionnaire(ctx, questionnaireKey)
	if err != nil {
		return nil, err
	}

	score := scoring.Aggregate(responses, questions)
	if score == nil {
		return nil, nil
	}
	score.ID = scoreID(projectID, userID, questionnaireKey)
	score.ComputedAt = time.Now()

	if len(score.Warnings) > 0 {
		slog.Warn("score computed with resolver warnings",
			"projectId", projectID,
			"userId", userID,
			"questionnaireKey", questionnaireKey,
			"warnings", len(score.Warnings))
	}

	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}

	metrics.RecordScoreComputed()
	metrics.RecordScoreComputeDuration(float64(time.Since(start).Milliseconds()))
	return score, nil
}

// GetScores returns every stored Score for a project
func (s *ScoreService) GetScores(ctx context.Context, projectID string) ([]model.Score, error) {
	return s.scoreRepo.GetByProject(ctx, projectID)
}

// GetCombined synthesizes a user's cross-questionnaire view from their stored
// Scores. Returns nil when the user has no Scores in the project.
func (s *ScoreService) GetCombined(ctx context.Context, projectID, userID string) (*model.CombinedView, error) {
	scores, err := s.scoreRepo.GetByUser(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	return scoring.Combine(scores), nil
}

// ComputeProjectScore rolls the project's stored Scores up across roles.
// Only users with at least one submitted response contribute. Returns nil
// when nothing has been submitted or no contributor has a Score.
func (s *ScoreService) ComputeProjectScore(ctx context.Context, projectID string) (*model.ProjectScore, error) {
	responses, err := s.responseRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	contributors := []scoring.Contributor{}
	for _, r := range responses {
		if r.IsSubmitted() {
			contributors = append(contributors, scoring.Contributor{UserID: r.UserID, Role: r.Role})
		}
	}

	scores, err := s.scoreRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	return scoring.AggregateProject(projectID, scores, contributors, time.Now()), nil
}
