package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethoscore/internal/model"
)

func assignment(projectID, userID, role string) model.Assignment {
	return model.Assignment{
		ID:        projectID + ":" + userID + ":" + role,
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
}

func newValidationFixture() (*fakeAssignmentRepo, *fakeResponseRepo, *fakeScoreRepo, *fakeQuestionRepo, *ValidationService) {
	assignmentRepo := &fakeAssignmentRepo{assignments: []model.Assignment{
		assignment("proj-1", "alice", "technical-expert"),
		assignment("proj-1", "bob", "legal-expert"),
		assignment("proj-1", "carol", model.RoleEthicalExpert),
	}}
	responseRepo := &fakeResponseRepo{responses: []model.Response{
		submittedResponse("resp-1", "proj-1", "alice", "technical-expert", "general",
			choiceAnswer("q1", "no")),
	}}
	scoreRepo := &fakeScoreRepo{scores: []model.Score{
		storedScore("proj-1", "alice", "technical-expert", "general",
			breakdownEntry("q1", model.PrincipleTransparency, 3, 1.0)),
	}}
	questionRepo := &fakeQuestionRepo{questions: []model.Question{
		catalogQuestion("q1", "general", "TRANSPARENCY", 3),
	}}
	catalogSvc := NewCatalogService(questionRepo, newFakeCatalogCache())
	svc := NewValidationService(assignmentRepo, responseRepo, scoreRepo, catalogSvc, 3)
	return assignmentRepo, responseRepo, scoreRepo, questionRepo, svc
}

func TestValidateForReporting(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy project passes the gate", func(t *testing.T) {
		_, _, _, _, svc := newValidationFixture()

		result, err := svc.ValidateForReporting(ctx, "proj-1")
		require.NoError(t, err)

		assert.True(t, result.IsValid())
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 3, result.Metadata.AssignmentCount)
		assert.Equal(t, 1, result.Metadata.EthicalExpertCount)
		assert.Equal(t, 1, result.Metadata.ScoreCount)
		assert.InDelta(t, 1.0, result.Metadata.SeverityCoverage, 1e-9)
		assert.False(t, result.CheckedAt.IsZero())
	})

	t.Run("legacy answerScore count flows into the verdict", func(t *testing.T) {
		_, responseRepo, _, _, svc := newValidationFixture()
		responseRepo.legacyCount = 2

		result, err := svc.ValidateForReporting(ctx, "proj-1")
		require.NoError(t, err)

		assert.Equal(t, model.ValiditySchemaViolation, result.ValidityStatus)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "2 response(s)")
	})

	t.Run("catalog rows are loaded per referenced questionnaire", func(t *testing.T) {
		_, responseRepo, _, questionRepo, svc := newValidationFixture()
		responseRepo.responses = append(responseRepo.responses,
			submittedResponse("resp-2", "proj-1", "alice", "technical-expert", "technical-deep-dive",
				choiceAnswer("q2", "unknown-option")))
		questionRepo.questions = append(questionRepo.questions,
			catalogQuestion("q2", "technical-deep-dive", "TECHNICAL_ROBUSTNESS", 2))

		result, err := svc.ValidateForReporting(ctx, "proj-1")
		require.NoError(t, err)

		// The second questionnaire's answer cannot resolve a severity, so
		// coverage drops to one of two.
		assert.InDelta(t, 0.5, result.Metadata.SeverityCoverage, 1e-9)
	})

	t.Run("repo failures abort the run", func(t *testing.T) {
		assignmentRepo, _, _, _, svc := newValidationFixture()
		assignmentRepo.err = context.DeadlineExceeded

		_, err := svc.ValidateForReporting(ctx, "proj-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
