package quiz

import "time"

// CategoryComprehensive is the machine name of the synthetic category that
// spans every subject. It owns no questions of its own.
const CategoryComprehensive = "comprehensive"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"name_display"`
}

func (c Category) IsComprehensive() bool { return c.Name == CategoryComprehensive }

// Question is the canonical bank entry: an ordered option list with exactly
// one correct option, identified by index.
type Question struct {
	ID           int64    `json:"id"`
	CategoryID   int64    `json:"category_id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	ImageKey     string   `json:"image_key,omitempty"`
}

// SampledQuestion is the per-session view of a Question: options copied into
// presentation order, with the correct option carried by text. Once built it
// is never re-shuffled, so re-rendering a question shows a stable order.
type SampledQuestion struct {
	QuestionID  int64    `json:"question_id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"` // presentation order
	CorrectText string   `json:"correct_text"`
	ImageKey    string   `json:"image_key,omitempty"`
}

type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StateSubmitted  SessionState = "submitted"
)

// Session is one student attempt at a sampled question set. Selections are
// positions into each question's presentation-order option list; nil means
// unanswered. Sessions are ephemeral and never persisted themselves.
type Session struct {
	Questions  []SampledQuestion
	Selections []*int
	State      SessionState
}

// Result is the persisted outcome of a submitted session. Immutable once
// written.
type Result struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	CategoryID     int64     `json:"category_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	Passed         bool      `json:"passed"`
	CreatedAt      time.Time `json:"created_at"`
}

// AnswerRecord is written alongside a Result, one per question in the
// submitted session. SelectedIndex is a presentation-order position and is
// nil for an unanswered question.
type AnswerRecord struct {
	QuestionID    int64 `json:"question_id"`
	SelectedIndex *int  `json:"selected_index"`
	Correct       bool  `json:"correct"`
}

// Outcome is the aggregate the Scorer produces before identity and category
// context are attached.
type Outcome struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Passed         bool    `json:"passed"`
}

// Stats is the public pass-rate summary the home page shows.
type Stats struct {
	Passed        int `json:"passed"`
	TotalAttempts int `json:"total"`
	PassRate      int `json:"percentage"`
}
