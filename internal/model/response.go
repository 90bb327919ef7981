package model

import "time"

// ResponseStatus is the response lifecycle state
type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "draft"
	ResponseStatusSubmitted ResponseStatus = "submitted"
	ResponseStatusLocked    ResponseStatus = "locked" // frozen post-submit, counts as submitted
)

// Answer holds one respondent's raw selection for a single question.
// Severity is only set for open_text answers, by a human reviewer; until
// assigned, the answer is excluded from scoring rather than defaulted.
type Answer struct {
	QuestionID      string     `json:"questionId" bson:"questionId"`
	SelectedOption  string     `json:"selectedOption,omitempty" bson:"selectedOption,omitempty"`
	SelectedOptions []string   `json:"selectedOptions,omitempty" bson:"selectedOptions,omitempty"`
	Text            string     `json:"text,omitempty" bson:"text,omitempty"`
	NumericValue    *float64   `json:"numericValue,omitempty" bson:"numericValue,omitempty"`
	Severity        *float64   `json:"severity,omitempty" bson:"severity,omitempty"`     // reviewer-assigned, 0-1
	Importance      *int       `json:"importance,omitempty" bson:"importance,omitempty"` // per-answer override, 1-4
	AnsweredAt      *time.Time `json:"answeredAt,omitempty" bson:"answeredAt,omitempty"`
}

// HasContent reports whether the respondent actually answered.
func (a *Answer) HasContent() bool {
	return a.SelectedOption != "" || len(a.SelectedOptions) > 0 || a.Text != "" || a.NumericValue != nil
}

// Response is one expert's answer set for a questionnaire. Exactly one
// exists per (project, user, role, questionnaire).
type Response struct {
	ID                   string         `json:"id" bson:"_id,omitempty"`
	ProjectID            string         `json:"projectId" bson:"projectId"`
	UserID               string         `json:"userId" bson:"userId"`
	Role                 string         `json:"role" bson:"role"`
	QuestionnaireKey     string         `json:"questionnaireKey" bson:"questionnaireKey"`
	QuestionnaireVersion int            `json:"questionnaireVersion" bson:"questionnaireVersion"`
	Status               ResponseStatus `json:"status" bson:"status"`
	Answers              []Answer       `json:"answers" bson:"answers"`
	CreatedAt            time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt" bson:"updatedAt"`
	SubmittedAt          *time.Time     `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

// IsSubmitted reports whether the response is past draft (locked included).
func (r *Response) IsSubmitted() bool {
	return r.Status == ResponseStatusSubmitted || r.Status == ResponseStatusLocked
}

// AnswerFor returns the answer to the given question, if present.
func (r *Response) AnswerFor(questionID string) (*Answer, bool) {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i], true
		}
	}
	return nil, false
}
