package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ethoscore/internal/model"
)

// CatalogCache handles Redis read-through caching of questionnaire question
// lists. The catalog changes rarely; entries expire on TTL and are dropped
// eagerly when seeding rewrites a questionnaire.
type CatalogCache interface {
	SetQuestions(ctx context.Context, questionnaireKey string, questions []model.Question) error
	GetQuestions(ctx context.Context, questionnaireKey string) ([]model.Question, error)
	DeleteQuestions(ctx context.Context, questionnaireKey string) error
}

type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a new catalog cache
func NewCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	return &catalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *catalogCache) key(questionnaireKey string) string {
	return fmt.Sprintf("catalog:%s:questions", questionnaireKey)
}

func (c *catalogCache) SetQuestions(ctx context.Context, questionnaireKey string, questions []model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(questionnaireKey), data, c.ttl).Err()
}

func (c *catalogCache) GetQuestions(ctx context.Context, questionnaireKey string) ([]model.Question, error) {
	data, err := c.client.Get(ctx, c.key(questionnaireKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *catalogCache) DeleteQuestions(ctx context.Context, questionnaireKey string) error {
	return c.client.Del(ctx, c.key(questionnaireKey)).Err()
}
