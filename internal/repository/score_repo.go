package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ethoscore/internal/model"
)

// ScoreRepository handles MongoDB operations for derived Score records.
// Exactly one Score exists per (project, user, questionnaire): writes go
// through Upsert keyed on that triple, never through inserts.
type ScoreRepository interface {
	GetByKey(ctx context.Context, projectID, userID, questionnaireKey string) (*model.Score, error)
	GetByUser(ctx context.Context, projectID, userID string) ([]model.Score, error)
	GetByProject(ctx context.Context, projectID string) ([]model.Score, error)
	Upsert(ctx context.Context, score *model.Score) error
	DeleteByKey(ctx context.Context, projectID, userID, questionnaireKey string) error
}

type scoreRepository struct {
	collection *mongo.Collection
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *mongo.Database) ScoreRepository {
	return &scoreRepository{
		collection: db.Collection("scores"),
	}
}

func (r *scoreRepository) GetByKey(ctx context.Context, projectID, userID, questionnaireKey string) (*model.Score, error) {
	var score model.Score
	err := r.collection.FindOne(ctx, keyFilter(projectID, userID, questionnaireKey)).Decode(&score)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepository) GetByUser(ctx context.Context, projectID, userID string) ([]model.Score, error) {
	opts := options.Find().SetSort(bson.D{{Key: "questionnaireKey", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID, "userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.Score
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepository) GetByProject(ctx context.Context, projectID string) ([]model.Score, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.Score
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepository) Upsert(ctx context.Context, score *model.Score) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx,
		keyFilter(score.ProjectID, score.UserID, score.QuestionnaireKey), score, opts)
	return err
}

func (r *scoreRepository) DeleteByKey(ctx context.Context, projectID, userID, questionnaireKey string) error {
	_, err := r.collection.DeleteOne(ctx, keyFilter(projectID, userID, questionnaireKey))
	return err
}

func keyFilter(projectID, userID, questionnaireKey string) bson.M {
	return bson.M{
		"projectId":        projectID,
		"userId":           userID,
		"questionnaireKey": questionnaireKey,
	}
}
