package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ethoscore/internal/model"
)

// AssignmentRepository reads expert assignments. Assignments are managed by
// the surrounding platform; the engine only needs them for evaluator
// cardinality checks. Upsert exists for seeding.
type AssignmentRepository interface {
	GetByProject(ctx context.Context, projectID string) ([]model.Assignment, error)
	Upsert(ctx context.Context, assignment *model.Assignment) error
}

type assignmentRepository struct {
	collection *mongo.Collection
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *mongo.Database) AssignmentRepository {
	return &assignmentRepository{
		collection: db.Collection("assignments"),
	}
}

func (r *assignmentRepository) GetByProject(ctx context.Context, projectID string) ([]model.Assignment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []model.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Upsert replaces by (project, user). A user holds one role per project, so
// reseeding with a changed role replaces the assignment instead of adding one.
func (r *assignmentRepository) Upsert(ctx context.Context, assignment *model.Assignment) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{
		"projectId": assignment.ProjectID,
		"userId":    assignment.UserID,
	}, assignment, opts)
	return err
}
