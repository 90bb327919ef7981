package service

import (
	"context"
	"sort"

	"ethoscore/internal/model"
)

// In-memory stand-ins for the mongo repositories and redis helpers. Each
// records enough call state for the tests to assert on.

type fakeQuestionRepo struct {
	questions []model.Question
	err       error
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.questions {
		if f.questions[i].ID == id {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuestionRepo) GetByQuestionnaire(_ context.Context, questionnaireKey string) ([]model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	for _, q := range f.questions {
		if q.QuestionnaireKey == questionnaireKey {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeQuestionRepo) Upsert(_ context.Context, question *model.Question) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.questions {
		if f.questions[i].ID == question.ID {
			f.questions[i] = *question
			return nil
		}
	}
	f.questions = append(f.questions, *question)
	return nil
}

type fakeResponseRepo struct {
	responses   []model.Response
	legacyCount int64
	err         error
}

func (f *fakeResponseRepo) GetByID(_ context.Context, id string) (*model.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.responses {
		if f.responses[i].ID == id {
			r := f.responses[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeResponseRepo) GetByProject(_ context.Context, projectID string) ([]model.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Response
	for _, r := range f.responses {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) GetByKey(_ context.Context, projectID, userID, questionnaireKey string) ([]model.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Response
	for _, r := range f.responses {
		if r.ProjectID == projectID && r.UserID == userID && r.QuestionnaireKey == questionnaireKey {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) Upsert(_ context.Context, response *model.Response) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.responses {
		r := &f.responses[i]
		if r.ProjectID == response.ProjectID && r.UserID == response.UserID &&
			r.Role == response.Role && r.QuestionnaireKey == response.QuestionnaireKey {
			f.responses[i] = *response
			return nil
		}
	}
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeResponseRepo) SetAnswerSeverity(_ context.Context, responseID, questionID string, severity float64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.responses {
		if f.responses[i].ID != responseID {
			continue
		}
		for j := range f.responses[i].Answers {
			if f.responses[i].Answers[j].QuestionID == questionID {
				s := severity
				f.responses[i].Answers[j].Severity = &s
				return nil
			}
		}
	}
	return nil
}

func (f *fakeResponseRepo) CountLegacyAnswerScores(_ context.Context, _ string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.legacyCount, nil
}

type fakeScoreRepo struct {
	scores  []model.Score
	upserts int
	deletes int
	err     error
}

func (f *fakeScoreRepo) GetByKey(_ context.Context, projectID, userID, questionnaireKey string) (*model.Score, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.scores {
		s := f.scores[i]
		if s.ProjectID == projectID && s.UserID == userID && s.QuestionnaireKey == questionnaireKey {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeScoreRepo) GetByUser(_ context.Context, projectID, userID string) ([]model.Score, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Score
	for _, s := range f.scores {
		if s.ProjectID == projectID && s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].QuestionnaireKey < out[j].QuestionnaireKey })
	return out, nil
}

func (f *fakeScoreRepo) GetByProject(_ context.Context, projectID string) ([]model.Score, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Score
	for _, s := range f.scores {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].QuestionnaireKey < out[j].QuestionnaireKey
	})
	return out, nil
}

func (f *fakeScoreRepo) Upsert(_ context.Context, score *model.Score) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	for i := range f.scores {
		s := f.scores[i]
		if s.ProjectID == score.ProjectID && s.UserID == score.UserID && s.QuestionnaireKey == score.QuestionnaireKey {
			f.scores[i] = *score
			return nil
		}
	}
	f.scores = append(f.scores, *score)
	return nil
}

func (f *fakeScoreRepo) DeleteByKey(_ context.Context, projectID, userID, questionnaireKey string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.scores {
		s := f.scores[i]
		if s.ProjectID == projectID && s.UserID == userID && s.QuestionnaireKey == questionnaireKey {
			f.scores = append(f.scores[:i], f.scores[i+1:]...)
			f.deletes++
			return nil
		}
	}
	return nil
}

type fakeAssignmentRepo struct {
	assignments []model.Assignment
	err         error
}

func (f *fakeAssignmentRepo) GetByProject(_ context.Context, projectID string) ([]model.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Upsert(_ context.Context, assignment *model.Assignment) error {
	if f.err != nil {
		return f.err
	}
	f.assignments = append(f.assignments, *assignment)
	return nil
}

type fakeCatalogCache struct {
	entries map[string][]model.Question
	hits    int
	misses  int
	sets    int
	deletes int
	getErr  error
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{entries: map[string][]model.Question{}}
}

func (f *fakeCatalogCache) SetQuestions(_ context.Context, questionnaireKey string, questions []model.Question) error {
	f.sets++
	f.entries[questionnaireKey] = questions
	return nil
}

func (f *fakeCatalogCache) GetQuestions(_ context.Context, questionnaireKey string) ([]model.Question, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	qs, ok := f.entries[questionnaireKey]
	if !ok {
		f.misses++
		return nil, nil
	}
	f.hits++
	return qs, nil
}

func (f *fakeCatalogCache) DeleteQuestions(_ context.Context, questionnaireKey string) error {
	f.deletes++
	delete(f.entries, questionnaireKey)
	return nil
}

type fakeRecomputeGuard struct {
	held       map[string]bool
	acquireErr error
	releases   int
}

func newFakeRecomputeGuard() *fakeRecomputeGuard {
	return &fakeRecomputeGuard{held: map[string]bool{}}
}

func (f *fakeRecomputeGuard) Acquire(_ context.Context, projectID string) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.held[projectID] {
		return false, nil
	}
	f.held[projectID] = true
	return true, nil
}

func (f *fakeRecomputeGuard) Release(_ context.Context, projectID string) error {
	f.releases++
	delete(f.held, projectID)
	return nil
}
