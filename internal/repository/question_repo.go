package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ethoscore/internal/model"
)

// QuestionRepository handles MongoDB operations for the question catalog.
// The catalog is read-only for the scoring pipeline; Upsert exists for
// seeding and catalog maintenance.
type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByQuestionnaire(ctx context.Context, questionnaireKey string) ([]model.Question, error)
	Upsert(ctx context.Context, question *model.Question) error
}

type questionRepository struct {
	collection *mongo.Collection
}

// NewQuestionRepository creates a new question catalog repository
func NewQuestionRepository(db *mongo.Database) QuestionRepository {
	return &questionRepository{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) GetByQuestionnaire(ctx context.Context, questionnaireKey string) ([]model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"questionnaireKey": questionnaireKey}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Upsert(ctx context.Context, question *model.Question) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question, opts)
	return err
}
