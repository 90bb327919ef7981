package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ethoscore/internal/model"
)

// ResponseRepository handles MongoDB operations for expert responses
type ResponseRepository interface {
	GetByID(ctx context.Context, id string) (*model.Response, error)
	GetByProject(ctx context.Context, projectID string) ([]model.Response, error)
	GetByKey(ctx context.Context, projectID, userID, questionnaireKey string) ([]model.Response, error)
	Upsert(ctx context.Context, response *model.Response) error
	SetAnswerSeverity(ctx context.Context, responseID, questionID string, severity float64) error

	// CountLegacyAnswerScores counts responses still carrying the retired
	// answerScore field. The scoring path never reads or fixes these; the
	// validation gate surfaces them as schema violations.
	CountLegacyAnswerScores(ctx context.Context, projectID string) (int64, error)
}

type responseRepository struct {
	collection *mongo.Collection
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db *mongo.Database) ResponseRepository {
	return &responseRepository{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*model.Response, error) {
	var response model.Response
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) GetByProject(ctx context.Context, projectID string) ([]model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) GetByKey(ctx context.Context, projectID, userID, questionnaireKey string) ([]model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"projectId":        projectID,
		"userId":           userID,
		"questionnaireKey": questionnaireKey,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) Upsert(ctx context.Context, response *model.Response) error {
	response.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{
		"projectId":        response.ProjectID,
		"userId":           response.UserID,
		"role":             response.Role,
		"questionnaireKey": response.QuestionnaireKey,
	}, response, opts)
	return err
}

func (r *responseRepository) SetAnswerSeverity(ctx context.Context, responseID, questionID string, severity float64) error {
	update := bson.M{"$set": bson.M{
		"answers.$[a].severity": severity,
		"updatedAt":             time.Now(),
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"a.questionId": questionID}},
	})
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": responseID}, update, opts)
	return err
}

func (r *responseRepository) CountLegacyAnswerScores(ctx context.Context, projectID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"projectId":           projectID,
		"answers.answerScore": bson.M{"$exists": true},
	})
}
