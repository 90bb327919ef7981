package service

import (
	"context"
	"errors"
	"fmt"

	"ethoscore/internal/model"
	"ethoscore/internal/repository"
)

var (
	// ErrResponseNotFound means the response id does not exist in the project.
	ErrResponseNotFound = errors.New("response not found")
	// ErrAnswerNotFound means the response has no answer for the question id.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrSeverityNotApplicable means the target answer resolves its severity
	// from the option catalog, not from a reviewer.
	ErrSeverityNotApplicable = errors.New("severity overrides apply to open text answers only")
)

// ResponseService handles reviewer-side mutations of stored responses
type ResponseService struct {
	responseRepo repository.ResponseRepository
	questionRepo repository.QuestionRepository
}

// NewResponseService creates a new response service
func NewResponseService(responseRepo repository.ResponseRepository, questionRepo repository.QuestionRepository) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		questionRepo: questionRepo,
	}
}

// SetAnswerSeverity records a reviewer-assigned severity for an open text
// answer. Stored Scores are not touched; a recompute picks the value up.
func (s *ResponseService) SetAnswerSeverity(ctx context.Context, projectID, responseID, questionID string, severity float64) error {
	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return fmt.Errorf("failed to load response: %w", err)
	}
	if response == nil || response.ProjectID != projectID {
		return ErrResponseNotFound
	}
	if _, ok := response.AnswerFor(questionID); !ok {
		return ErrAnswerNotFound
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("failed to load question: %w", err)
	}
	// A question missing from the catalog cannot be type-checked; the write
	// is allowed and the aggregator warns about the unknown question instead.
	if question != nil && question.AnswerType != model.AnswerTypeOpenText {
		return ErrSeverityNotApplicable
	}

	return s.responseRepo.SetAnswerSeverity(ctx, responseID, questionID, severity)
}
