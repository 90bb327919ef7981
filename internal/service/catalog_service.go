package service

import (
	"context"
	"fmt"

	"ethoscore/internal/cache"
	"ethoscore/internal/metrics"
	"ethoscore/internal/model"
	"ethoscore/internal/repository"
)

// CatalogService serves questionnaire catalogs with a redis read-through cache
type CatalogService struct {
	questionRepo repository.QuestionRepository
	catalogCache cache.CatalogCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(questionRepo repository.QuestionRepository, catalogCache cache.CatalogCache) *CatalogService {
	return &CatalogService{
		questionRepo: questionRepo,
		catalogCache: catalogCache,
	}
}

// GetQuestionnaire returns the ordered question list for one questionnaire key
func (s *CatalogService) GetQuestionnaire(ctx context.Context, questionnaireKey string) ([]model.Question, error) {
	cached, err := s.catalogCache.GetQuestions(ctx, questionnaireKey)
	if err == nil && cached != nil {
		metrics.RecordCatalogCacheHit()
		return cached, nil
	}

	// Cache miss or redis unavailable: fall through to the store
	metrics.RecordCatalogCacheMiss()
	questions, err := s.questionRepo.GetByQuestionnaire(ctx, questionnaireKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load questionnaire %s: %w", questionnaireKey, err)
	}

	if len(questions) > 0 {
		// Best effort - a failed cache write must not fail the read
		_ = s.catalogCache.SetQuestions(ctx, questionnaireKey, questions)
	}
	return questions, nil
}

// UpsertQuestion stores a catalog question and invalidates the cached questionnaire
func (s *CatalogService) UpsertQuestion(ctx context.Context, question *model.Question) error {
	if err := s.questionRepo.Upsert(ctx, question); err != nil {
		return fmt.Errorf("failed to store question: %w", err)
	}
	return s.catalogCache.DeleteQuestions(ctx, question.QuestionnaireKey)
}
