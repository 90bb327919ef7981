package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ethoscore/internal/metrics"
	"ethoscore/internal/model"
	"ethoscore/internal/repository"
	"ethoscore/internal/scoring"
	"ethoscore/internal/validation"
)

// ValidationService assembles the reporting gate's input for a project and
// runs it. Verdicts are computed fresh per request, never cached.
type ValidationService struct {
	assignmentRepo repository.AssignmentRepository
	responseRepo   repository.ResponseRepository
	scoreRepo      repository.ScoreRepository
	catalogSvc     *CatalogService
	minAssignments int
}

// NewValidationService creates a new validation service
func NewValidationService(
	assignmentRepo repository.AssignmentRepository,
	responseRepo repository.ResponseRepository,
	scoreRepo repository.ScoreRepository,
	catalogSvc *CatalogService,
	minAssignments int,
) *ValidationService {
	return &ValidationService{
		assignmentRepo: assignmentRepo,
		responseRepo:   responseRepo,
		scoreRepo:      scoreRepo,
		catalogSvc:     catalogSvc,
		minAssignments: minAssignments,
	}
}

// ValidateForReporting runs the full gate for one project
func (s *ValidationService) ValidateForReporting(ctx context.Context, projectID string) (*model.ValidationResult, error) {
	assignments, err := s.assignmentRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	responses, err := s.responseRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	scores, err := s.scoreRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	questions, err := s.referencedQuestions(ctx, responses)
	if err != nil {
		return nil, err
	}

	legacy, err := s.responseRepo.CountLegacyAnswerScores(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count legacy answer scores: %w", err)
	}

	result := validation.Evaluate(validation.Input{
		ProjectID:        projectID,
		Assignments:      assignments,
		Responses:        responses,
		Scores:           scores,
		Questions:        questions,
		LegacyScoreCount: int(legacy),
		MinAssignments:   s.minAssignments,
		CurrentVersion:   scoring.ModelVersion,
	}, time.Now())

	metrics.RecordValidationVerdict(string(result.ValidityStatus))
	return result, nil
}

// referencedQuestions loads the catalog rows for every questionnaire the
// project's responses touch, in stable key order.
func (s *ValidationService) referencedQuestions(ctx context.Context, responses []model.Response) ([]model.Question, error) {
	seen := map[string]bool{}
	keys := []string{}
	for _, r := range responses {
		if !seen[r.QuestionnaireKey] {
			seen[r.QuestionnaireKey] = true
			keys = append(keys, r.QuestionnaireKey)
		}
	}
	sort.Strings(keys)

	var questions []model.Question
	for _, key := range keys {
		qs, err := s.catalogSvc.GetQuestionnaire(ctx, key)
		if err != nil {
			return nil, err
		}
		questions = append(questions, qs...)
	}
	return questions, nil
}
