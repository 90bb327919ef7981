package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"

	"ethoscore/internal/cache"
	"ethoscore/internal/config"
	"ethoscore/internal/model"
	"ethoscore/internal/repository"
)

//go:embed catalog.yaml
var catalogYAML []byte

type seedCatalog struct {
	Questionnaires []seedQuestionnaire `yaml:"questionnaires"`
}

type seedQuestionnaire struct {
	Key       string         `yaml:"key"`
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	ID         string       `yaml:"id"`
	Principle  string       `yaml:"principle"`
	Text       string       `yaml:"text"`
	AnswerType string       `yaml:"answerType"`
	Importance int          `yaml:"importance"`
	Options    []seedOption `yaml:"options"`
}

type seedOption struct {
	Key      string  `yaml:"key"`
	Label    string  `yaml:"label"`
	Severity float64 `yaml:"severity"`
}

// Demo project assessed by three experts, exactly one of them the
// ethical expert.
const demoProject = "proj-demo"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	questionRepo := repository.NewQuestionRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	var catalog seedCatalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		log.Fatalf("Failed to parse embedded catalog: %v", err)
	}

	now := time.Now()

	questionCount := 0
	questionnaireKeys := make([]string, 0, len(catalog.Questionnaires))
	for _, qn := range catalog.Questionnaires {
		questionnaireKeys = append(questionnaireKeys, qn.Key)
		for i, sq := range qn.Questions {
			question := &model.Question{
				ID:               sq.ID,
				QuestionnaireKey: qn.Key,
				Principle:        sq.Principle,
				Text:             sq.Text,
				AnswerType:       model.AnswerType(sq.AnswerType),
				Importance:       sq.Importance,
				Options:          make([]model.Option, 0, len(sq.Options)),
				Order:            i + 1,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			for _, opt := range sq.Options {
				question.Options = append(question.Options, model.Option{
					Key:      opt.Key,
					Label:    opt.Label,
					Severity: opt.Severity,
				})
			}
			if err := questionRepo.Upsert(ctx, question); err != nil {
				log.Fatalf("Failed to upsert question %s: %v", sq.ID, err)
			}
			questionCount++
		}
	}

	assignments := demoAssignments(now)
	for i := range assignments {
		if err := assignmentRepo.Upsert(ctx, &assignments[i]); err != nil {
			log.Fatalf("Failed to upsert assignment %s: %v", assignments[i].ID, err)
		}
	}

	responses := demoResponses(now)
	for i := range responses {
		if err := responseRepo.Upsert(ctx, &responses[i]); err != nil {
			log.Fatalf("Failed to upsert response %s: %v", responses[i].ID, err)
		}
	}

	// Drop cached copies of the reseeded questionnaires. Best effort: when
	// redis is unreachable the entries age out on TTL instead.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unreachable, skipping catalog cache invalidation: %v", err)
	} else {
		catalogCache := cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL())
		for _, key := range questionnaireKeys {
			if err := catalogCache.DeleteQuestions(ctx, key); err != nil {
				log.Printf("Warning: failed to invalidate cached questionnaire %s: %v", key, err)
			}
		}
	}

	fmt.Printf("Seeded %d questions across %d questionnaires, %d assignments and %d responses for project '%s'\n",
		questionCount, len(questionnaireKeys), len(assignments), len(responses), demoProject)
}

func demoAssignments(now time.Time) []model.Assignment {
	return []model.Assignment{
		{
			ID:        demoProject + ":u-alice",
			ProjectID: demoProject,
			UserID:    "u-alice",
			Role:      model.RoleEthicalExpert,
			CreatedAt: now,
		},
		{
			ID:        demoProject + ":u-bob",
			ProjectID: demoProject,
			UserID:    "u-bob",
			Role:      "technical-expert",
			CreatedAt: now,
		},
		{
			ID:        demoProject + ":u-carol",
			ProjectID: demoProject,
			UserID:    "u-carol",
			Role:      "legal-expert",
			CreatedAt: now,
		},
	}
}

func demoResponses(now time.Time) []model.Response {
	return []model.Response{
		{
			ID:                   demoProject + ":u-alice:general",
			ProjectID:            demoProject,
			UserID:               "u-alice",
			Role:                 model.RoleEthicalExpert,
			QuestionnaireKey:     "general",
			QuestionnaireVersion: 1,
			Status:               model.ResponseStatusSubmitted,
			Answers: []model.Answer{
				{QuestionID: "gen-01", SelectedOption: "partial-override", AnsweredAt: &now},
				{QuestionID: "gen-02", SelectedOption: "always", AnsweredAt: &now},
				{QuestionID: "gen-03", SelectedOptions: []string{"age", "gender"}, Importance: intPtr(4), AnsweredAt: &now},
				{
					QuestionID: "gen-04",
					Text:       "Faster case handling for most applicants, but appeal friction for edge cases.",
					Severity:   floatPtr(0.4),
					AnsweredAt: &now,
				},
				{QuestionID: "gen-05", SelectedOption: "informal-owner", AnsweredAt: &now},
			},
			CreatedAt:   now,
			UpdatedAt:   now,
			SubmittedAt: &now,
		},
		{
			ID:                   demoProject + ":u-bob:technical-deep-dive",
			ProjectID:            demoProject,
			UserID:               "u-bob",
			Role:                 "technical-expert",
			QuestionnaireKey:     "technical-deep-dive",
			QuestionnaireVersion: 1,
			Status:               model.ResponseStatusSubmitted,
			Answers: []model.Answer{
				{QuestionID: "tech-01", SelectedOption: "periodic", AnsweredAt: &now},
				{QuestionID: "tech-02", SelectedOption: "retention-bounded", AnsweredAt: &now},
				{QuestionID: "tech-03", NumericValue: floatPtr(2.5), AnsweredAt: &now},
				{QuestionID: "tech-04", SelectedOption: "partial-trace", AnsweredAt: &now},
			},
			CreatedAt:   now,
			UpdatedAt:   now,
			SubmittedAt: &now,
		},
		{
			ID:                   demoProject + ":u-carol:general",
			ProjectID:            demoProject,
			UserID:               "u-carol",
			Role:                 "legal-expert",
			QuestionnaireKey:     "general",
			QuestionnaireVersion: 1,
			Status:               model.ResponseStatusDraft,
			Answers: []model.Answer{
				{QuestionID: "gen-01", SelectedOption: "no-override", AnsweredAt: &now},
				{QuestionID: "gen-02", SelectedOption: "sometimes", AnsweredAt: &now},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
