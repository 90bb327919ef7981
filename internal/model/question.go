package model

import "time"

// AnswerType defines how an answer to a question is scored
type AnswerType string

const (
	AnswerTypeSingleChoice AnswerType = "single_choice" // one option key, severity from the option
	AnswerTypeMultiChoice  AnswerType = "multi_choice"  // several option keys, severity = mean of options
	AnswerTypeOpenText     AnswerType = "open_text"     // severity assigned by a human reviewer
	AnswerTypeNumeric      AnswerType = "numeric"       // captured but excluded from quantitative scoring
)

// IsChoice reports whether answers of this type resolve severity from the option list.
func (t AnswerType) IsChoice() bool {
	return t == AnswerTypeSingleChoice || t == AnswerTypeMultiChoice
}

// Option is one selectable answer with its risk severity
type Option struct {
	Key      string  `json:"key" bson:"key"`
	Label    string  `json:"label,omitempty" bson:"label,omitempty"`
	Severity float64 `json:"severity" bson:"severity"` // 0 = safe, 1 = maximally risky
}

// Question is a catalog entry. The catalog is maintained externally and
// treated as immutable once answers reference it.
type Question struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	QuestionnaireKey string     `json:"questionnaireKey" bson:"questionnaireKey"`
	Principle        string     `json:"principle" bson:"principle"` // raw label, normalized at scoring time
	Text             string     `json:"text" bson:"text"`
	AnswerType       AnswerType `json:"answerType" bson:"answerType"`
	Importance       int        `json:"importance" bson:"importance"` // 1-4
	Options          []Option   `json:"options,omitempty" bson:"options,omitempty"`
	Order            int        `json:"order" bson:"order"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// OptionSeverity looks up the severity mapped to an option key.
func (q *Question) OptionSeverity(key string) (float64, bool) {
	for _, opt := range q.Options {
		if opt.Key == key {
			return opt.Severity, true
		}
	}
	return 0, false
}
